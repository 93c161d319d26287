package productimage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/wichananm65/beverage-shop/internal/storage"
)

// FileCleanupError reports an image whose row was deleted but whose file
// could not be removed from storage.
type FileCleanupError struct {
	Path string
	Err  error
}

func (e *FileCleanupError) Error() string {
	return "Đã xoá DB, nhưng xoá file lỗi: " + e.Err.Error()
}

func (e *FileCleanupError) Unwrap() error { return e.Err }

type Service struct {
	repo   Repository
	bucket storage.Bucket
	newID  func() string
}

func NewService(repo Repository, bucket storage.Bucket) *Service {
	return &Service{repo: repo, bucket: bucket, newID: uuid.NewString}
}

func (s *Service) List(ctx context.Context, productID string) ([]Image, error) {
	return s.repo.ListByProduct(ctx, productID)
}

// ListForProducts returns the images of several products keyed by id.
func (s *Service) ListForProducts(ctx context.Context, productIDs []string) (map[string][]Image, error) {
	return s.repo.ListForProducts(ctx, productIDs)
}

// ObjectPath builds the storage path for a new upload of filename.
func (s *Service) ObjectPath(productID, filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		ext = "jpg"
	}
	return productID + "/" + s.newID() + "." + ext
}

// Upload stores the file and records it. The first image of a product
// becomes its primary image.
func (s *Service) Upload(ctx context.Context, productID, filename, contentType string, r io.Reader) (Image, error) {
	path := s.ObjectPath(productID, filename)
	if err := s.bucket.Put(ctx, path, r, contentType, false); err != nil {
		return Image{}, fmt.Errorf("upload %s: %w", path, err)
	}

	existing, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return Image{}, err
	}
	hasPrimary := false
	for _, img := range existing {
		if img.IsPrimary {
			hasPrimary = true
			break
		}
	}

	return s.repo.Insert(ctx, Image{
		ProductID: productID,
		Path:      path,
		PublicURL: s.bucket.URL(path),
		SortOrder: 0,
		IsPrimary: !hasPrimary,
		IsActive:  true,
	})
}

// SetPrimary moves the primary flag to imageID in two steps: clear every
// image of the product, then flag the target. An image of another product
// is ErrNotFound and changes nothing. If the first step fails nothing
// changes. If the second fails the product is left without a primary image
// and readers fall back to sort order until a retry.
func (s *Service) SetPrimary(ctx context.Context, productID, imageID string) error {
	img, err := s.repo.Get(ctx, imageID)
	if err != nil {
		return err
	}
	if img.ProductID != productID {
		return ErrNotFound
	}
	if err := s.repo.ClearPrimary(ctx, productID); err != nil {
		return err
	}
	return s.repo.MarkPrimary(ctx, productID, imageID)
}

// Delete removes the row first and the stored file second. A failed row
// delete leaves the file alone; a failed file delete returns
// *FileCleanupError.
func (s *Service) Delete(ctx context.Context, id string) (Image, error) {
	img, err := s.repo.Get(ctx, id)
	if err != nil {
		return Image{}, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return Image{}, err
	}
	if err := s.bucket.Delete(ctx, img.Path); err != nil {
		return img, &FileCleanupError{Path: img.Path, Err: err}
	}
	return img, nil
}
