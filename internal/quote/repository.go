package quote

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository abstracts quote request persistence.
type Repository interface {
	Create(ctx context.Context, r Request) (Request, error)
	// List returns requests newest first, optionally filtered by status.
	// A zero limit means no limit.
	List(ctx context.Context, status string, offset, limit int) ([]Request, error)
	Count(ctx context.Context, status string) (int, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// InMemoryRepository for tests
type InMemoryRepository struct {
	mu   sync.RWMutex
	data []Request
	now  func() time.Time
}

func NewInMemoryRepository(seed []Request) *InMemoryRepository {
	return &InMemoryRepository{data: append([]Request(nil), seed...), now: time.Now}
}

func (r *InMemoryRepository) Create(_ context.Context, req Request) (Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req.ID = uuid.NewString()
	req.CreatedAt = r.now()
	r.data = append(r.data, req)
	return req, nil
}

func (r *InMemoryRepository) filtered(status string) []Request {
	out := make([]Request, 0, len(r.data))
	for _, q := range r.data {
		if status == "" || q.Status == status {
			out = append(out, q)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *InMemoryRepository) List(_ context.Context, status string, offset, limit int) ([]Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := r.filtered(status)
	if offset >= len(out) {
		return []Request{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *InMemoryRepository) Count(_ context.Context, status string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.filtered(status)), nil
}

func (r *InMemoryRepository) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.data {
		if r.data[i].ID == id {
			r.data[i].Status = status
			return nil
		}
	}
	return ErrNotFound
}
