package featured

import (
	"context"

	"github.com/wichananm65/beverage-shop/internal/banner"
	"github.com/wichananm65/beverage-shop/internal/logger"
	"github.com/wichananm65/beverage-shop/internal/product"
)

type Service struct {
	products Products
	banners  Banners
}

func NewService(p Products, b Banners) *Service {
	return &Service{products: p, banners: b}
}

// List returns up to limit featured products.
func (s *Service) List(ctx context.Context, limit int) ([]product.Card, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return s.products.Featured(ctx, limit)
}

// Home returns the banners and featured products. A banner failure only
// drops the slides.
func (s *Service) Home(ctx context.Context, limit int) (Home, error) {
	items, err := s.List(ctx, limit)
	if err != nil {
		return Home{}, err
	}
	slides, err := s.banners.List(ctx, banner.DefaultLimit)
	if err != nil {
		logger.WithCtx(ctx).Warn("list banners", "err", err)
		slides = []banner.Banner{}
	}
	return Home{Banners: slides, Featured: items}, nil
}
