package banner

import (
	"context"
	"fmt"
)

// DefaultLimit is the number of slides shown when no limit is given;
// MaxLimit caps what a client may ask for.
const (
	DefaultLimit = 10
	MaxLimit     = 20
)

// Service provides business logic for banners.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns the active slides in display order.
func (s *Service) List(ctx context.Context, limit int) ([]Banner, error) {
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	items, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	return items, nil
}
