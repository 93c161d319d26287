package category

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
	listCategoriesQuery = `SELECT id, name, slug, abbr FROM categories ORDER BY name`
	getCategoryQuery    = `SELECT id, name, slug, abbr FROM categories WHERE slug = $1`
	upsertCategoryQuery = `
		INSERT INTO categories (name, slug, abbr)
		VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, abbr = EXCLUDED.abbr
		RETURNING id
	`
	deleteCategoryQuery = `DELETE FROM categories WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, listCategoriesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var (
			c    Category
			abbr sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &abbr); err != nil {
			return nil, err
		}
		if abbr.Valid {
			c.Abbr = &abbr.String
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (Category, error) {
	var (
		c    Category
		abbr sql.NullString
	)
	err := r.db.QueryRowContext(ctx, getCategoryQuery, slug).Scan(&c.ID, &c.Name, &c.Slug, &abbr)
	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, ErrNotFound
	}
	if err != nil {
		return Category{}, err
	}
	if abbr.Valid {
		c.Abbr = &abbr.String
	}
	return c, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, c Category) (Category, error) {
	var abbr sql.NullString
	if c.Abbr != nil {
		abbr = sql.NullString{String: *c.Abbr, Valid: true}
	}
	if err := r.db.QueryRowContext(ctx, upsertCategoryQuery, c.Name, c.Slug, abbr).Scan(&c.ID); err != nil {
		return Category{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteCategoryQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
