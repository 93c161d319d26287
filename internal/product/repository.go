package product

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wichananm65/beverage-shop/internal/listing"
)

var (
	ErrNotFound = errors.New("product not found")
)

// Filter narrows a product listing. Zero values do not filter.
type Filter struct {
	ActiveOnly   bool
	FeaturedOnly bool
	// Search matches name, description or code.
	Search string
	// AdminSearch matches name, code, slug or brand name.
	AdminSearch string
	CategoryID  string
	BrandID     string
	ExcludeID   string
	Volume      *listing.VolumeFilter
	Orders      []listing.Order
	Offset      int
	// Limit of 0 returns every matching row.
	Limit int
}

type Repository interface {
	List(ctx context.Context, f Filter) ([]Product, error)
	Count(ctx context.Context, f Filter) (int, error)
	GetByID(ctx context.Context, id string) (Product, error)
	GetBySlug(ctx context.Context, slug string) (Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, id string, p Product) (Product, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository mirrors the Postgres filters; it is used by tests and
// local seeding.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
	now     func() time.Time
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Product, 0, len(seed)),
		now:     time.Now,
	}
	r.storage = append(r.storage, seed...)
	return r
}

func (r *InMemoryRepository) match(p Product, f Filter) bool {
	if f.ActiveOnly && !p.IsActive {
		return false
	}
	if f.FeaturedOnly && !p.Featured {
		return false
	}
	if f.CategoryID != "" && deref(p.CategoryID) != f.CategoryID {
		return false
	}
	if f.BrandID != "" && deref(p.BrandID) != f.BrandID {
		return false
	}
	if f.ExcludeID != "" && p.ID == f.ExcludeID {
		return false
	}
	if f.Search != "" && !containsAny(f.Search, p.Name, deref(p.Description), deref(p.Code)) {
		return false
	}
	if f.AdminSearch != "" && !containsAny(f.AdminSearch, p.Name, deref(p.Code), p.Slug, BrandText(p)) {
		return false
	}
	if v := f.Volume; v != nil {
		if v.ML > 0 && (p.VolumeML == nil || *p.VolumeML != v.ML) {
			return false
		}
		if v.Text != "" && !containsAny(v.Text, deref(p.Override), deref(p.Legacy)) {
			return false
		}
	}
	return true
}

func containsAny(needle string, fields ...string) bool {
	needle = strings.ToLower(needle)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func (r *InMemoryRepository) filtered(f Filter) []Product {
	out := make([]Product, 0)
	for _, p := range r.storage {
		if r.match(p, f) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		for _, o := range f.Orders {
			c := compare(out[i], out[j], o.Column)
			if c == 0 {
				continue
			}
			if o.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return out
}

// compare orders products by one column; a missing price sorts last like
// Postgres NULLs in ascending order.
func compare(a, b Product, column string) int {
	switch column {
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "created_at":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "updated_at":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	case "featured_order":
		return a.FeaturedOrder - b.FeaturedOrder
	case "price":
		switch {
		case a.Price == nil && b.Price == nil:
			return 0
		case a.Price == nil:
			return 1
		case b.Price == nil:
			return -1
		case *a.Price < *b.Price:
			return -1
		case *a.Price > *b.Price:
			return 1
		}
	}
	return 0
}

func (r *InMemoryRepository) List(_ context.Context, f Filter) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := r.filtered(f)
	if f.Offset >= len(out) {
		return []Product{}, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *InMemoryRepository) Count(_ context.Context, f Filter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.filtered(f)), nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) GetBySlug(_ context.Context, slug string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Create(_ context.Context, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := r.now()
	p.CreatedAt, p.UpdatedAt = now, now
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) Update(_ context.Context, id string, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			p.ID = id
			p.Code = r.storage[i].Code
			p.CreatedAt = r.storage[i].CreatedAt
			p.UpdatedAt = r.now()
			r.storage[i] = p
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Reset replaces the whole in-memory storage with the provided products.
func (r *InMemoryRepository) Reset(products []Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storage = make([]Product, len(products))
	copy(r.storage, products)
}
