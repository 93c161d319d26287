package brand

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("brand not found")

// Repository provides access to brand rows.
type Repository interface {
	List(ctx context.Context) ([]Brand, error)
	GetBySlug(ctx context.Context, slug string) (Brand, error)
	// Upsert inserts b or, when its slug exists, updates name and abbr.
	Upsert(ctx context.Context, b Brand) (Brand, error)
	Delete(ctx context.Context, id string) error
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	items []Brand
}

func NewInMemoryRepository(seed []Brand) *InMemoryRepository {
	r := &InMemoryRepository{items: make([]Brand, 0, len(seed))}
	r.items = append(r.items, seed...)
	return r
}

func (r *InMemoryRepository) List(_ context.Context) ([]Brand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Brand, len(r.items))
	copy(out, r.items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *InMemoryRepository) GetBySlug(_ context.Context, slug string) (Brand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.items {
		if b.Slug == slug {
			return b, nil
		}
	}
	return Brand{}, ErrNotFound
}

func (r *InMemoryRepository) Upsert(_ context.Context, b Brand) (Brand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].Slug == b.Slug {
			b.ID = r.items[i].ID
			r.items[i] = b
			return b, nil
		}
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	r.items = append(r.items, b)
	return b, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
