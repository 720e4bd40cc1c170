package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/quotewise/factfinder/constants"
	"github.com/quotewise/factfinder/internal/common"
	"github.com/quotewise/factfinder/internal/export"
	"github.com/quotewise/factfinder/internal/pipeline"
	"github.com/quotewise/factfinder/internal/repository"
)

// Extractor is the pipeline surface the handlers depend on.
type Extractor interface {
	Run(ctx context.Context, typ constants.InsuranceType, images [][]byte) (*pipeline.Result, error)
}

// Service wires the upload/review/export HTTP API.
type Service struct {
	repo      repository.ExtractionRepository
	extractor Extractor
	exporter  *export.Service
	pingDB    func(ctx context.Context) error
	cfg       common.ServerConfig
	logger    *slog.Logger
}

func NewService(
	repo repository.ExtractionRepository,
	extractor Extractor,
	exporter *export.Service,
	pingDB func(ctx context.Context) error,
	cfg common.ServerConfig,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		extractor: extractor,
		exporter:  exporter,
		pingDB:    pingDB,
		cfg:       cfg,
		logger:    logger,
	}
}

// Router builds the chi router for the service.
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/extractions", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Get("/{id}", s.handleGet)
		r.Put("/{id}", s.handleUpdate)
		r.Post("/{id}/status", s.handleStatus)
		r.Get("/{id}/export", s.handleExport)
	})
	return r
}

func (s *Service) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		s.logger.Info("http.request",
			"req_id", middleware.GetReqID(req.Context()),
			"method", req.Method,
			"path", req.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, req *http.Request) {
	if s.pingDB != nil {
		if err := s.pingDB(req.Context()); err != nil {
			common.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "db unavailable"})
			return
		}
	}
	common.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
