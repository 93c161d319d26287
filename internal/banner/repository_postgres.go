package banner

import (
	"context"
	"database/sql"
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

const listBannersQuery = `
	SELECT id, image_url, link, alt, sort_order
	FROM banners
	WHERE is_active
	ORDER BY sort_order, id
	LIMIT $1
`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns active banners ordered by sort order then id.
func (r *PostgresRepository) List(ctx context.Context, limit int) ([]Banner, error) {
	rows, err := r.db.QueryContext(ctx, listBannersQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Banner, 0)
	for rows.Next() {
		var (
			b    Banner
			link sql.NullString
			alt  sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.ImageURL, &link, &alt, &b.SortOrder); err != nil {
			return nil, err
		}
		if link.Valid {
			b.Link = &link.String
		}
		if alt.Valid {
			b.Alt = &alt.String
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
