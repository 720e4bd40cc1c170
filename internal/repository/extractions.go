package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quotewise/factfinder/constants"
	"github.com/quotewise/factfinder/internal/common"
)

// Extraction is one persisted extraction record. ExtractedData holds the
// complete-result JSON blob; its optional top-level keys identify the
// insurance type (property+safety → home, vehicles+additionalDrivers → auto).
type Extraction struct {
	ID             uuid.UUID                  `json:"id"`
	InsuranceType  constants.InsuranceType    `json:"insurance_type"`
	Status         constants.ExtractionStatus `json:"status"`
	SourceFilename string                     `json:"source_filename"`
	PageCount      int                        `json:"page_count"`
	ExtractedData  json.RawMessage            `json:"extracted_data,omitempty"`
	ErrorMessage   string                     `json:"error_message,omitempty"`
	CreatedAt      time.Time                  `json:"created_at"`
	UpdatedAt      time.Time                  `json:"updated_at"`
}

// ExtractionRepository persists extraction records.
type ExtractionRepository interface {
	Create(ctx context.Context, insuranceType constants.InsuranceType, sourceFilename string, pageCount int) (*Extraction, error)
	Get(ctx context.Context, id uuid.UUID) (*Extraction, error)
	List(ctx context.Context, insuranceType constants.InsuranceType) ([]*Extraction, error)
	SetStatus(ctx context.Context, id uuid.UUID, status constants.ExtractionStatus) error
	SaveResult(ctx context.Context, id uuid.UUID, data json.RawMessage) error
	SaveEdited(ctx context.Context, id uuid.UUID, data json.RawMessage) error
	MarkFailed(ctx context.Context, id uuid.UUID, message string) error
}

type extractionRepo struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewExtractionRepository(pool *pgxpool.Pool, log *slog.Logger) ExtractionRepository {
	if log == nil {
		log = slog.Default()
	}
	return &extractionRepo{pool: pool, log: log}
}

const extractionColumns = `id, insurance_type, status, source_filename, page_count,
	extracted_data, COALESCE(error_message, ''), created_at, updated_at`

func scanExtraction(row pgx.Row) (*Extraction, error) {
	var e Extraction
	err := row.Scan(&e.ID, &e.InsuranceType, &e.Status, &e.SourceFilename,
		&e.PageCount, &e.ExtractedData, &e.ErrorMessage, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *extractionRepo) Create(ctx context.Context, insuranceType constants.InsuranceType, sourceFilename string, pageCount int) (*Extraction, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO extractions (id, insurance_type, status, source_filename, page_count)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+extractionColumns,
		uuid.New(), insuranceType, constants.StatusPending, sourceFilename, pageCount)
	e, err := scanExtraction(row)
	if err != nil {
		r.log.Error("extraction create failed", "err", err)
		return nil, fmt.Errorf("create extraction: %w", err)
	}
	r.log.Info("extraction created", "id", e.ID, "insurance_type", insuranceType, "pages", pageCount)
	return e, nil
}

func (r *extractionRepo) Get(ctx context.Context, id uuid.UUID) (*Extraction, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+extractionColumns+` FROM extractions WHERE id = $1`, id)
	e, err := scanExtraction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("extraction %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get extraction: %w", err)
	}
	return e, nil
}

func (r *extractionRepo) List(ctx context.Context, insuranceType constants.InsuranceType) ([]*Extraction, error) {
	query := `SELECT ` + extractionColumns + ` FROM extractions`
	args := []any{}
	if insuranceType != "" {
		query += ` WHERE insurance_type = $1`
		args = append(args, insuranceType)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list extractions: %w", err)
	}
	defer rows.Close()

	var out []*Extraction
	for rows.Next() {
		e, err := scanExtraction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan extraction: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *extractionRepo) SetStatus(ctx context.Context, id uuid.UUID, status constants.ExtractionStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE extractions SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		r.log.Error("extraction status update failed", "id", id, "status", status, "err", err)
		return fmt.Errorf("set status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("extraction %s: %w", id, common.ErrNotFound)
	}
	r.log.Info("extraction status updated", "id", id, "status", status)
	return nil
}

func (r *extractionRepo) SaveResult(ctx context.Context, id uuid.UUID, data json.RawMessage) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE extractions
		SET extracted_data = $2, status = $3, updated_at = now()
		WHERE id = $1`, id, data, constants.StatusCompleted)
	if err != nil {
		r.log.Error("extraction result save failed", "id", id, "err", err)
		return fmt.Errorf("save result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("extraction %s: %w", id, common.ErrNotFound)
	}
	r.log.Info("extraction result saved", "id", id, "bytes", len(data))
	return nil
}

// SaveEdited stores agent-reviewed data without touching status; the record
// stays completed until the quote step moves it to quoted.
func (r *extractionRepo) SaveEdited(ctx context.Context, id uuid.UUID, data json.RawMessage) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE extractions SET extracted_data = $2, updated_at = now()
		WHERE id = $1 AND status IN ($3, $4)`,
		id, data, constants.StatusCompleted, constants.StatusQuoted)
	if err != nil {
		r.log.Error("extraction edit save failed", "id", id, "err", err)
		return fmt.Errorf("save edited: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("extraction %s not editable: %w", id, common.ErrNotFound)
	}
	return nil
}

func (r *extractionRepo) MarkFailed(ctx context.Context, id uuid.UUID, message string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE extractions SET status = $2, error_message = $3, updated_at = now()
		WHERE id = $1`, id, constants.StatusFailed, message)
	if err != nil {
		r.log.Error("extraction failure mark failed", "id", id, "err", err)
		return fmt.Errorf("mark failed: %w", err)
	}
	r.log.Warn("extraction marked failed", "id", id, "error", message)
	return nil
}
