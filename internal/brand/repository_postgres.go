package brand

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

const (
	listBrandsQuery  = `SELECT id, name, slug, abbr FROM brands ORDER BY name`
	getBrandQuery    = `SELECT id, name, slug, abbr FROM brands WHERE slug = $1`
	upsertBrandQuery = `
		INSERT INTO brands (name, slug, abbr)
		VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, abbr = EXCLUDED.abbr
		RETURNING id
	`
	deleteBrandQuery = `DELETE FROM brands WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]Brand, error) {
	rows, err := r.db.QueryContext(ctx, listBrandsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Brand, 0)
	for rows.Next() {
		var (
			b    Brand
			abbr sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.Name, &b.Slug, &abbr); err != nil {
			return nil, err
		}
		if abbr.Valid {
			b.Abbr = &abbr.String
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (Brand, error) {
	var (
		b    Brand
		abbr sql.NullString
	)
	err := r.db.QueryRowContext(ctx, getBrandQuery, slug).Scan(&b.ID, &b.Name, &b.Slug, &abbr)
	if errors.Is(err, sql.ErrNoRows) {
		return Brand{}, ErrNotFound
	}
	if err != nil {
		return Brand{}, err
	}
	if abbr.Valid {
		b.Abbr = &abbr.String
	}
	return b, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, b Brand) (Brand, error) {
	var abbr sql.NullString
	if b.Abbr != nil {
		abbr = sql.NullString{String: *b.Abbr, Valid: true}
	}
	if err := r.db.QueryRowContext(ctx, upsertBrandQuery, b.Name, b.Slug, abbr).Scan(&b.ID); err != nil {
		return Brand{}, err
	}
	return b, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteBrandQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
