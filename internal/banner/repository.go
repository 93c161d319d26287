package banner

import (
	"context"
	"sort"
	"sync"
)

// Repository provides access to banner items.
type Repository interface {
	List(ctx context.Context, limit int) ([]Banner, error)
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	items []Banner
}

func NewInMemoryRepository(seed []Banner) *InMemoryRepository {
	r := &InMemoryRepository{items: make([]Banner, 0, len(seed))}
	r.items = append(r.items, seed...)
	return r
}

func (r *InMemoryRepository) List(_ context.Context, limit int) ([]Banner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Banner, len(r.items))
	copy(out, r.items)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
