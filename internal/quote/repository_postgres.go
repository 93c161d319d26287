package quote

import (
	"context"
	"database/sql"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertQuoteQuery = `
		INSERT INTO quote_requests (full_name, phone, address, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	listQuotesQuery = `
		SELECT id, full_name, phone, address, message, status, created_at
		FROM quote_requests
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
	`
	countQuotesQuery       = `SELECT count(*) FROM quote_requests WHERE ($1 = '' OR status = $1)`
	updateQuoteStatusQuery = `UPDATE quote_requests SET status = $2 WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, req Request) (Request, error) {
	err := r.db.QueryRowContext(ctx, insertQuoteQuery, req.FullName, req.Phone, req.Address, req.Message, req.Status).
		Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return Request{}, err
	}
	return req, nil
}

func (r *PostgresRepository) List(ctx context.Context, status string, offset, limit int) ([]Request, error) {
	q := listQuotesQuery
	args := []any{status}
	if limit > 0 {
		args = append(args, limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Request, 0)
	for rows.Next() {
		var (
			req              Request
			address, message sql.NullString
		)
		if err := rows.Scan(&req.ID, &req.FullName, &req.Phone, &address, &message, &req.Status, &req.CreatedAt); err != nil {
			return nil, err
		}
		if address.Valid {
			req.Address = &address.String
		}
		if message.Valid {
			req.Message = &message.String
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Count(ctx context.Context, status string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countQuotesQuery, status).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx, updateQuoteStatusQuery, id, status)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
