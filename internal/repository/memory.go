package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/resumeiq-api/internal/model"
)

// MemoryAnalysisRepo keeps analysis history in process memory. It backs
// development runs without a database and is safe for concurrent use.
type MemoryAnalysisRepo struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]model.Analysis
	now  func() time.Time
}

func NewMemoryAnalysisRepo() *MemoryAnalysisRepo {
	return &MemoryAnalysisRepo{
		byID: make(map[uuid.UUID]model.Analysis),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryAnalysisRepo) Create(ctx context.Context, a *model.Analysis) (*model.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	created := *a
	created.ID = uuid.New()
	created.CreatedAt = r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[created.ID] = created
	return &created, nil
}

func (r *MemoryAnalysisRepo) FindByID(ctx context.Context, id uuid.UUID, ownerID string) (*model.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok || a.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r *MemoryAnalysisRepo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]model.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	var out []model.Analysis
	for _, a := range r.byID {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() > out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryAnalysisRepo) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok || a.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
