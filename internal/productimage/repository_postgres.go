package productimage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	imageColumns = `id, product_id, path, public_url, sort_order, is_primary, is_active`

	listImagesQuery = `
		SELECT ` + imageColumns + `
		FROM product_images
		WHERE product_id = $1
		ORDER BY is_primary DESC, sort_order ASC, created_at ASC
	`
	listImagesForProductsQuery = `
		SELECT ` + imageColumns + `
		FROM product_images
		WHERE product_id = ANY($1) AND is_active = true
		ORDER BY is_primary DESC, sort_order ASC, created_at ASC
	`
	getImageQuery = `
		SELECT ` + imageColumns + `
		FROM product_images
		WHERE id = $1
	`
	insertImageQuery = `
		INSERT INTO product_images (product_id, path, public_url, sort_order, is_primary, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	clearPrimaryQuery = `UPDATE product_images SET is_primary = false WHERE product_id = $1`
	markPrimaryQuery  = `UPDATE product_images SET is_primary = true WHERE id = $1 AND product_id = $2`
	deleteImageQuery  = `DELETE FROM product_images WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByProduct(ctx context.Context, productID string) ([]Image, error) {
	return r.list(ctx, listImagesQuery, productID)
}

func (r *PostgresRepository) ListForProducts(ctx context.Context, productIDs []string) (map[string][]Image, error) {
	out := make(map[string][]Image, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	images, err := r.list(ctx, listImagesForProductsQuery, pq.Array(productIDs))
	if err != nil {
		return nil, err
	}
	for _, img := range images {
		out[img.ProductID] = append(out[img.ProductID], img)
	}
	return out, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]Image, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Image, 0)
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (Image, error) {
	img, err := scanImage(r.db.QueryRowContext(ctx, getImageQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Image{}, ErrNotFound
	}
	return img, err
}

func (r *PostgresRepository) Insert(ctx context.Context, img Image) (Image, error) {
	err := r.db.QueryRowContext(ctx, insertImageQuery,
		img.ProductID, img.Path, img.PublicURL, img.SortOrder, img.IsPrimary, img.IsActive,
	).Scan(&img.ID)
	if err != nil {
		return Image{}, err
	}
	return img, nil
}

func (r *PostgresRepository) ClearPrimary(ctx context.Context, productID string) error {
	_, err := r.db.ExecContext(ctx, clearPrimaryQuery, productID)
	return err
}

func (r *PostgresRepository) MarkPrimary(ctx context.Context, productID, imageID string) error {
	res, err := r.db.ExecContext(ctx, markPrimaryQuery, imageID, productID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteImageQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanImage(row rowScanner) (Image, error) {
	var (
		img       Image
		publicURL sql.NullString
	)
	if err := row.Scan(&img.ID, &img.ProductID, &img.Path, &publicURL, &img.SortOrder, &img.IsPrimary, &img.IsActive); err != nil {
		return Image{}, err
	}
	img.PublicURL = publicURL.String
	return img, nil
}
