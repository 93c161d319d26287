package productimage

import (
	"sort"
)

// BucketName is the storage bucket product images live in.
const BucketName = "product-images"

// Placeholder is shown when a product has no usable image.
const Placeholder = "/images/products/placeholder.png"

// Image maps to the `product_images` table.
type Image struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Path      string `json:"path"`
	PublicURL string `json:"publicUrl"`
	SortOrder int    `json:"sortOrder"`
	IsPrimary bool   `json:"isPrimary"`
	IsActive  bool   `json:"isActive"`
}

// Ordered returns the active images, primary first, then by sort order.
// Images with equal keys keep their input order.
func Ordered(images []Image) []Image {
	out := make([]Image, 0, len(images))
	for _, img := range images {
		if img.IsActive {
			out = append(out, img)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsPrimary != out[j].IsPrimary {
			return out[i].IsPrimary
		}
		return out[i].SortOrder < out[j].SortOrder
	})
	return out
}

// Pick returns the display image among images, if any is active.
func Pick(images []Image) (Image, bool) {
	ordered := Ordered(images)
	if len(ordered) == 0 {
		return Image{}, false
	}
	return ordered[0], true
}

// DisplayURL picks the display image URL, falling back to the product's
// legacy image URL and then to Placeholder.
func DisplayURL(images []Image, fallback string) string {
	if img, ok := Pick(images); ok && img.PublicURL != "" {
		return img.PublicURL
	}
	if fallback != "" {
		return fallback
	}
	return Placeholder
}

// Gallery returns the URLs of the ordered active images, or the fallback
// when there are none.
func Gallery(images []Image, fallback string) []string {
	ordered := Ordered(images)
	urls := make([]string, 0, len(ordered))
	for _, img := range ordered {
		if img.PublicURL != "" {
			urls = append(urls, img.PublicURL)
		}
	}
	if len(urls) == 0 && fallback != "" {
		urls = append(urls, fallback)
	}
	return urls
}
