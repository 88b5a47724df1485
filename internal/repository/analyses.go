package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yourusername/resumeiq-api/internal/model"
)

// ErrNotFound is returned when an analysis does not exist or belongs to
// another owner.
var ErrNotFound = errors.New("analysis not found")

// AnalysisStore persists analysis history.
type AnalysisStore interface {
	Create(ctx context.Context, a *model.Analysis) (*model.Analysis, error)
	FindByID(ctx context.Context, id uuid.UUID, ownerID string) (*model.Analysis, error)
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]model.Analysis, error)
	Delete(ctx context.Context, id uuid.UUID, ownerID string) error
}

type AnalysisRepo struct {
	pool *pgxpool.Pool
}

func NewAnalysisRepo(pool *pgxpool.Pool) *AnalysisRepo {
	return &AnalysisRepo{pool: pool}
}

const analysisColumns = `id, owner_id, source, file_name, file_size, job_description, report, created_at`

// Create inserts a new analysis
func (r *AnalysisRepo) Create(ctx context.Context, a *model.Analysis) (*model.Analysis, error) {
	report, err := json.Marshal(a.Report)
	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO resume_analyses (owner_id, source, file_name, file_size, job_description, report)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+analysisColumns,
		a.OwnerID, a.Source, a.FileName, a.FileSize, a.JobDescription, report,
	)

	created, err := scanAnalysis(row)
	if err != nil {
		return nil, fmt.Errorf("creating analysis: %w", err)
	}
	return created, nil
}

// FindByID returns a single analysis owned by ownerID
func (r *AnalysisRepo) FindByID(ctx context.Context, id uuid.UUID, ownerID string) (*model.Analysis, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+analysisColumns+`
		FROM resume_analyses
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID)

	a, err := scanAnalysis(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding analysis: %w", err)
	}
	return a, nil
}

// ListByOwner returns the owner's analyses, newest first
func (r *AnalysisRepo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]model.Analysis, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+analysisColumns+`
		FROM resume_analyses
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	defer rows.Close()

	var out []model.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning analysis row: %w", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}

	return out, nil
}

// Delete removes an analysis
func (r *AnalysisRepo) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM resume_analyses WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting analysis: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAnalysis(row pgx.Row) (*model.Analysis, error) {
	var (
		a      model.Analysis
		report []byte
	)
	err := row.Scan(
		&a.ID, &a.OwnerID, &a.Source, &a.FileName, &a.FileSize,
		&a.JobDescription, &report, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(report, &a.Report); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	return &a, nil
}
