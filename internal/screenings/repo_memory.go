package screenings

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores screenings in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu    sync.RWMutex
	byID  map[string]Screening
	order []string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Screening)}
}

// CreateBatch stores the screenings.
func (r *MemoryRepo) CreateBatch(ctx context.Context, items []Screening) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range items {
		if _, exists := r.byID[s.ID]; !exists {
			r.order = append(r.order, s.ID)
		}
		r.byID[s.ID] = s
	}
	return nil
}

// GetByID returns a screening by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Screening, error) {
	if err := ctx.Err(); err != nil {
		return Screening{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	if !ok {
		return Screening{}, ErrNotFound
	}
	return s, nil
}

// List returns screenings ordered by creation time descending.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Screening, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	all := make([]Screening, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, r.byID[id])
	}
	r.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].Position < all[j].Position
	})
	if offset >= len(all) {
		return []Screening{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}
