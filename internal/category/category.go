package category

import (
	"errors"
	"strings"

	"github.com/wichananm65/beverage-shop/internal/slug"
)

// ErrMissingNameSlug is returned when a category is saved without a name or slug.
var ErrMissingNameSlug = errors.New("Thiếu name/slug")

// Category maps to the `categories` table.
type Category struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Slug string  `json:"slug"`
	Abbr *string `json:"abbr"`
}

// Normalize trims name and slug and cleans the abbreviation; an empty
// abbreviation becomes null.
func Normalize(c Category) (Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Slug = strings.TrimSpace(c.Slug)
	if c.Name == "" || c.Slug == "" {
		return Category{}, ErrMissingNameSlug
	}
	if c.Abbr != nil {
		abbr := slug.CleanAbbr(*c.Abbr)
		if abbr == "" {
			c.Abbr = nil
		} else {
			c.Abbr = &abbr
		}
	}
	return c, nil
}
