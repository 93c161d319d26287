package product

import (
	"time"

	"github.com/wichananm65/beverage-shop/internal/packaging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	PriceOnRequest = "Liên hệ"
	BadgeSoldOut   = "Hết hàng"
	BadgeNew       = "Mới"
	// NewFor is how long after creation a product counts as new.
	NewFor = 14 * 24 * time.Hour
)

var vnd = message.NewPrinter(language.Vietnamese)

// PriceText renders a price in vi-VN grouping ("12.000đ"). A missing or zero
// price is shown as PriceOnRequest.
func PriceText(price *int64) string {
	if price == nil || *price == 0 {
		return PriceOnRequest
	}
	return vnd.Sprintf("%d", *price) + "đ"
}

// Badge picks the card badge: sold out first, then the stored badge, then
// "new" for recently created products.
func Badge(p Product, now time.Time) *string {
	if !p.InStock {
		s := BadgeSoldOut
		return &s
	}
	if p.Badge != nil && *p.Badge != "" {
		return p.Badge
	}
	if !p.CreatedAt.IsZero() && now.Sub(p.CreatedAt) <= NewFor {
		s := BadgeNew
		return &s
	}
	return nil
}

// BrandText prefers the linked brand's name over the legacy text.
func BrandText(p Product) string {
	if p.BrandName != nil && *p.BrandName != "" {
		return *p.BrandName
	}
	if p.Brand != nil {
		return *p.Brand
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FormatPackaging renders the packaging text of p.
func FormatPackaging(p Product) string {
	return packaging.Format(p.Descriptor)
}
