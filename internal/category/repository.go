package category

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("category not found")

// Repository provides access to category rows.
type Repository interface {
	List(ctx context.Context) ([]Category, error)
	GetBySlug(ctx context.Context, slug string) (Category, error)
	// Upsert inserts c or, when its slug exists, updates name and abbr.
	Upsert(ctx context.Context, c Category) (Category, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository is used by tests and local seeding.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items []Category
}

func NewInMemoryRepository(seed []Category) *InMemoryRepository {
	r := &InMemoryRepository{items: make([]Category, 0, len(seed))}
	r.items = append(r.items, seed...)
	return r
}

func (r *InMemoryRepository) List(_ context.Context) ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Category, len(r.items))
	copy(out, r.items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *InMemoryRepository) GetBySlug(_ context.Context, slug string) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.items {
		if c.Slug == slug {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

func (r *InMemoryRepository) Upsert(_ context.Context, c Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].Slug == c.Slug {
			c.ID = r.items[i].ID
			r.items[i] = c
			return c, nil
		}
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	r.items = append(r.items, c)
	return c, nil
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
