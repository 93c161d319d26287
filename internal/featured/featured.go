// Package featured assembles the storefront home page.
package featured

import (
	"context"

	"github.com/wichananm65/beverage-shop/internal/banner"
	"github.com/wichananm65/beverage-shop/internal/product"
)

const DefaultLimit = 12

// Products lists featured product cards.
type Products interface {
	Featured(ctx context.Context, limit int) ([]product.Card, error)
}

// Banners lists home-page slides.
type Banners interface {
	List(ctx context.Context, limit int) ([]banner.Banner, error)
}

// Home is the home page payload.
type Home struct {
	Banners  []banner.Banner `json:"banners"`
	Featured []product.Card  `json:"featured"`
}
