package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/quotewise/factfinder/constants"
	"github.com/quotewise/factfinder/internal/common"
	"github.com/quotewise/factfinder/internal/extraction"
	"github.com/quotewise/factfinder/internal/pdf"
)

// handleCreate accepts a multipart fact finder upload, extracts the page
// images, runs the pipeline and stores the complete result. The pipeline
// itself never fails the request once pages were read: a run where every
// batch failed still completes with all-default data.
func (s *Service) handleCreate(w http.ResponseWriter, req *http.Request) {
	req.Body = http.MaxBytesReader(w, req.Body, s.cfg.MaxUploadBytes)
	if err := req.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		common.WriteError(w, s.logger, common.InvalidInputf("parse multipart form: %v", err))
		return
	}

	typ, ok := constants.ParseInsuranceType(req.FormValue("insurance_type"))
	if !ok {
		common.WriteError(w, s.logger,
			common.InvalidInputf("insurance_type %q", req.FormValue("insurance_type")))
		return
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		common.WriteError(w, s.logger, common.InvalidInputf("missing file field: %v", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		common.WriteError(w, s.logger, fmt.Errorf("read upload: %w", err))
		return
	}

	doc, err := pdf.ReadPages(data, s.logger)
	if err != nil {
		common.WriteError(w, s.logger, err)
		return
	}

	rec, err := s.repo.Create(req.Context(), typ, header.Filename, doc.PageCount)
	if err != nil {
		common.WriteError(w, s.logger, err)
		return
	}
	if err := s.repo.SetStatus(req.Context(), rec.ID, constants.StatusProcessing); err != nil {
		common.WriteError(w, s.logger, err)
		return
	}

	result, err := s.extractor.Run(req.Context(), typ, doc.Images)
	if err != nil {
		_ = s.repo.MarkFailed(req.Context(), rec.ID, err.Error())
		common.WriteError(w, s.logger, err)
		return
	}

	blob, err := json.Marshal(result.Data())
	if err != nil {
		_ = s.repo.MarkFailed(req.Context(), rec.ID, err.Error())
		common.WriteError(w, s.logger, fmt.Errorf("marshal result: %w", err))
		return
	}
	if err := s.repo.SaveResult(req.Context(), rec.ID, blob); err != nil {
		common.WriteError(w, s.logger, err)
		return
	}

	rec, err = s.repo.Get(req.Context(), rec.ID)
	if err != nil {
		common.WriteError(w, s.logger, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, rec)
}

func (s *Service) handleGet(w http.ResponseWriter, req *http.Request) {
	id, err := uuid.Parse(chi.URLParam(req, "id"))
	if err != nil {
		common.WriteError(w, s.logger, common.InvalidInputf("invalid id: %v", err))
		return
	}
	rec, err := s.repo.Get(req.Context(), id)
	if err != nil {
		common.WriteError(w, s.logger, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, rec)
}

func (s *Service) handleList(w http.ResponseWriter, req *http.Request) {
	var typ constants.InsuranceType
	if raw := req.URL.Query().Get("insurance_type"); raw != "" {
		parsed, ok := constants.ParseInsuranceType(raw)
		if !ok {
			common.WriteError(w, s.logger, common.InvalidInputf("insurance_type %q", raw))
			return
		}
		typ = parsed
	}
	recs, err := s.repo.List(req.Context(), typ)
	if err != nil {
		common.WriteError(w, s.logger, err)
		return
	}
	// Summaries only: drop the data blobs from the listing.
	for _, r := range recs {
		r.ExtractedData = nil
	}
	common.WriteJSON(w, http.StatusOK, map[string]any{"extractions": recs})
}

// handleUpdate stores agent-edited data. The body must decode into the
// record's typed result so edits cannot corrupt the field shape.
func (s *Service) handleUpdate(w http.ResponseWriter, req *http.Request) {
	id, err := uuid.Parse(chi.URLParam(req, "id"))
	if err != nil {
		common.WriteError(w, s.logger, common.InvalidInputf("invalid id: %v", err))
		return
	}
	rec, err := s.repo.Get(req.Context(), id)
	if err != nil {
		common.WriteError(w, s.logger, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, s.cfg.MaxUploadBytes))
	if err != nil {
		common.WriteError(w, s.logger, common.InvalidInputf("read body: %v", err))
		return
	}

	normalized, err := normalizeEdit(rec.InsuranceType, body)
	if err != nil {
		common.WriteError(w, s.logger, err)
		return
	}
	if err := s.repo.SaveEdited(req.Context(), id, normalized); err != nil {
		common.WriteError(w, s.logger, err)
		return
	}

	rec, err = s.repo.Get(req.Context(), id)
	if err != nil {
		common.WriteError(w, s.logger, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, rec)
}

// normalizeEdit round-trips the submitted blob through the typed result,
// rejecting payloads that do not fit the record's shape.
func normalizeEdit(typ constants.InsuranceType, body []byte) (json.RawMessage, error) {
	var (
		data any
		err  error
	)
	switch typ {
	case constants.InsuranceHome:
		var d extraction.HomeData
		err = json.Unmarshal(body, &d)
		data = &d
	case constants.InsuranceAuto:
		var d extraction.AutoData
		err = json.Unmarshal(body, &d)
		data = &d
	default:
		var d extraction.LegacyData
		err = json.Unmarshal(body, &d)
		data = &d
	}
	if err != nil {
		return nil, common.InvalidInputf("edited data does not match %s shape: %v", typ, err)
	}
	out, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal edited data: %w", err)
	}
	return out, nil
}

func (s *Service) handleStatus(w http.ResponseWriter, req *http.Request) {
	id, err := uuid.Parse(chi.URLParam(req, "id"))
	if err != nil {
		common.WriteError(w, s.logger, common.InvalidInputf("invalid id: %v", err))
		return
	}
	var body struct {
		Status constants.ExtractionStatus `json:"status"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		common.WriteError(w, s.logger, common.InvalidInputf("decode body: %v", err))
		return
	}
	if !body.Status.Valid() {
		common.WriteError(w, s.logger, common.InvalidInputf("status %q", body.Status))
		return
	}
	if err := s.repo.SetStatus(req.Context(), id, body.Status); err != nil {
		common.WriteError(w, s.logger, err)
		return
	}
	rec, err := s.repo.Get(req.Context(), id)
	if err != nil {
		common.WriteError(w, s.logger, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, rec)
}

func (s *Service) handleExport(w http.ResponseWriter, req *http.Request) {
	id, err := uuid.Parse(chi.URLParam(req, "id"))
	if err != nil {
		common.WriteError(w, s.logger, common.InvalidInputf("invalid id: %v", err))
		return
	}
	rec, err := s.repo.Get(req.Context(), id)
	if err != nil {
		common.WriteError(w, s.logger, err)
		return
	}
	if len(rec.ExtractedData) == 0 {
		common.WriteError(w, s.logger,
			common.InvalidInputf("extraction %s has no data to export", id))
		return
	}

	book, err := s.exporter.ExportReviewXLSX(rec)
	if err != nil {
		common.WriteError(w, s.logger, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "factfinder-"+id.String()+".xlsx"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(book)
}
