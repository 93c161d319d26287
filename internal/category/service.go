package category

import "context"

// Service provides business logic for categories.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns every category ordered by name.
func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (Category, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// Save validates c and upserts it on its slug.
func (s *Service) Save(ctx context.Context, c Category) (Category, error) {
	c, err := Normalize(c)
	if err != nil {
		return Category{}, err
	}
	return s.repo.Upsert(ctx, c)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
