package productimage

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/wichananm65/beverage-shop/internal/dberr"
)

var (
	ErrNotFound = errors.New("image not found")
)

type Repository interface {
	ListByProduct(ctx context.Context, productID string) ([]Image, error)
	// ListForProducts returns the images of several products keyed by product id.
	ListForProducts(ctx context.Context, productIDs []string) (map[string][]Image, error)
	Get(ctx context.Context, id string) (Image, error)
	Insert(ctx context.Context, img Image) (Image, error)
	// ClearPrimary unsets the primary flag on every image of the product.
	ClearPrimary(ctx context.Context, productID string) error
	// MarkPrimary sets the primary flag on one image of the product.
	MarkPrimary(ctx context.Context, productID, imageID string) error
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository keeps images in memory. Like the database it refuses
// a second primary image for the same product.
type InMemoryRepository struct {
	mu     sync.RWMutex
	images []Image
}

func NewInMemoryRepository(seed []Image) *InMemoryRepository {
	r := &InMemoryRepository{images: make([]Image, 0, len(seed))}
	r.images = append(r.images, seed...)
	return r
}

func (r *InMemoryRepository) ListByProduct(_ context.Context, productID string) ([]Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Image, 0)
	for _, img := range r.images {
		if img.ProductID == productID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListForProducts(ctx context.Context, productIDs []string) (map[string][]Image, error) {
	out := make(map[string][]Image, len(productIDs))
	for _, id := range productIDs {
		imgs, _ := r.ListByProduct(ctx, id)
		if len(imgs) > 0 {
			out[id] = imgs
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Get(_ context.Context, id string) (Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, img := range r.images {
		if img.ID == id {
			return img, nil
		}
	}
	return Image{}, ErrNotFound
}

func (r *InMemoryRepository) Insert(_ context.Context, img Image) (Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if img.ID == "" {
		img.ID = uuid.NewString()
	}
	if img.IsPrimary && r.hasPrimaryLocked(img.ProductID, "") {
		return Image{}, errOnePrimary
	}
	r.images = append(r.images, img)
	return img, nil
}

func (r *InMemoryRepository) ClearPrimary(_ context.Context, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.images {
		if r.images[i].ProductID == productID {
			r.images[i].IsPrimary = false
		}
	}
	return nil
}

func (r *InMemoryRepository) MarkPrimary(_ context.Context, productID, imageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.images {
		if r.images[i].ID != imageID || r.images[i].ProductID != productID {
			continue
		}
		if r.hasPrimaryLocked(r.images[i].ProductID, imageID) {
			return errOnePrimary
		}
		r.images[i].IsPrimary = true
		return nil
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.images {
		if r.images[i].ID == id {
			r.images = append(r.images[:i], r.images[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) hasPrimaryLocked(productID, exceptID string) bool {
	for _, img := range r.images {
		if img.ProductID == productID && img.IsPrimary && img.ID != exceptID {
			return true
		}
	}
	return false
}

var errOnePrimary = &dberr.Error{
	Code:       "23505",
	Message:    `duplicate key value violates unique constraint "product_images_one_primary_idx"`,
	Constraint: "product_images_one_primary_idx",
}
