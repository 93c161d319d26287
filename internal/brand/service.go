package brand

import "context"

// Service provides business logic for brands.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns every brand ordered by name.
func (s *Service) List(ctx context.Context) ([]Brand, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (Brand, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// Save validates b and upserts it on its slug.
func (s *Service) Save(ctx context.Context, b Brand) (Brand, error) {
	b, err := Normalize(b)
	if err != nil {
		return Brand{}, err
	}
	return s.repo.Upsert(ctx, b)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
