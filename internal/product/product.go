package product

import (
	"time"

	"github.com/wichananm65/beverage-shop/internal/packaging"
)

// Product maps to the `products` table joined with its category and brand.
type Product struct {
	ID            string  `json:"id"`
	Code          *string `json:"code"`
	Slug          string  `json:"slug"`
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	Price         *int64  `json:"price"`
	InStock       bool    `json:"inStock"`
	IsActive      bool    `json:"isActive"`
	Featured      bool    `json:"featured"`
	FeaturedOrder int     `json:"featuredOrder"`
	Badge         *string `json:"badge"`
	// Brand is the free-text brand kept for rows created before brands existed.
	Brand    *string `json:"brand"`
	ImageURL *string `json:"imageUrl"`
	packaging.Descriptor

	CategoryID   *string `json:"categoryId"`
	CategoryName *string `json:"categoryName,omitempty"`
	CategorySlug *string `json:"categorySlug,omitempty"`
	BrandID      *string `json:"brandId"`
	BrandName    *string `json:"brandName,omitempty"`
	BrandSlug    *string `json:"brandSlug,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Input is the admin create/update payload.
type Input struct {
	Name              string  `json:"name"`
	Slug              string  `json:"slug"`
	Description       *string `json:"description"`
	Price             *int64  `json:"price"`
	CategoryID        *string `json:"categoryId"`
	BrandID           *string `json:"brandId"`
	Brand             *string `json:"brand"`
	ImageURL          *string `json:"imageUrl"`
	PackagingOverride *string `json:"packagingOverride"`
	PackageType       *string `json:"packageType"`
	PackQty           *int    `json:"packQty"`
	Unit              *string `json:"unit"`
	VolumeML          *int    `json:"volumeMl"`
	InStock           *bool   `json:"inStock"`
	Featured          *bool   `json:"featured"`
	FeaturedOrder     *int    `json:"featuredOrder"`
	IsActive          *bool   `json:"isActive"`
	Badge             *string `json:"badge"`
}

// Card is a product prepared for a storefront grid.
type Card struct {
	ID          string  `json:"id"`
	Slug        string  `json:"slug"`
	Name        string  `json:"name"`
	Code        *string `json:"code"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	InStock     bool    `json:"inStock"`
	Badge       *string `json:"badge"`
	BrandName   string  `json:"brandName"`
	PackText    string  `json:"packText"`
	PriceText   string  `json:"priceText"`
}

// Related is a compact card used under the product detail.
type Related struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Detail is the product page payload.
type Detail struct {
	Product
	Images    []string  `json:"images"`
	PackText  string    `json:"packText"`
	PriceText string    `json:"priceText"`
	BrandText string    `json:"brandText"`
	Related   []Related `json:"related"`
}
