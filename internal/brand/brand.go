package brand

import (
	"errors"
	"strings"

	"github.com/wichananm65/beverage-shop/internal/slug"
)

var ErrMissingNameSlug = errors.New("Thiếu name/slug")

// Brand maps to the `brands` table.
type Brand struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Slug string  `json:"slug"`
	Abbr *string `json:"abbr"`
}

// Normalize applies the same rules as categories.
func Normalize(b Brand) (Brand, error) {
	b.Name = strings.TrimSpace(b.Name)
	b.Slug = strings.TrimSpace(b.Slug)
	if b.Name == "" || b.Slug == "" {
		return Brand{}, ErrMissingNameSlug
	}
	if b.Abbr != nil {
		abbr := slug.CleanAbbr(*b.Abbr)
		if abbr == "" {
			b.Abbr = nil
		} else {
			b.Abbr = &abbr
		}
	}
	return b, nil
}
