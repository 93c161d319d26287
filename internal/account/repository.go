package account

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (Profile, error)
	GetByEmail(ctx context.Context, email string) (Profile, error)
	Create(ctx context.Context, p Profile) (Profile, error)
	UpdateProfile(ctx context.Context, id string, fullName, phone, address *string) (Profile, error)
	UpdatePassword(ctx context.Context, id, hash string) error
}

// InMemoryRepository is a simple in-memory implementation useful for tests and
// seeding local data.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Profile
}

func NewInMemoryRepository(seed []Profile) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Profile, 0, len(seed))}
	r.storage = append(r.storage, seed...)
	return r
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Profile{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(_ context.Context, email string) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if strings.EqualFold(p.Email, email) {
			return p, nil
		}
	}
	return Profile{}, ErrNotFound
}

func (r *InMemoryRepository) Create(_ context.Context, p Profile) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) UpdateProfile(_ context.Context, id string, fullName, phone, address *string) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage[i].FullName = fullName
			r.storage[i].Phone = phone
			r.storage[i].Address = address
			r.storage[i].UpdatedAt = time.Now()
			return r.storage[i], nil
		}
	}
	return Profile{}, ErrNotFound
}

func (r *InMemoryRepository) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage[i].PasswordHash = hash
			r.storage[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrNotFound
}
