package account

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	profileColumns         = `id, email, password_hash, full_name, phone, address, is_admin, created_at, updated_at`
	getProfileByIDQuery    = `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	getProfileByEmailQuery = `SELECT ` + profileColumns + ` FROM profiles WHERE lower(email) = lower($1)`
	insertProfileQuery     = `
		INSERT INTO profiles (email, password_hash, full_name, phone, address, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + profileColumns
	updateProfileQuery = `
		UPDATE profiles SET full_name = $1, phone = $2, address = $3, updated_at = now()
		WHERE id = $4
		RETURNING ` + profileColumns
	updatePasswordQuery = `UPDATE profiles SET password_hash = $1, updated_at = now() WHERE id = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Profile, error) {
	return r.one(r.db.QueryRowContext(ctx, getProfileByIDQuery, id))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (Profile, error) {
	return r.one(r.db.QueryRowContext(ctx, getProfileByEmailQuery, strings.TrimSpace(email)))
}

func (r *PostgresRepository) Create(ctx context.Context, p Profile) (Profile, error) {
	return r.one(r.db.QueryRowContext(ctx, insertProfileQuery, p.Email, p.PasswordHash, p.FullName, p.Phone, p.Address, p.IsAdmin))
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, id string, fullName, phone, address *string) (Profile, error) {
	return r.one(r.db.QueryRowContext(ctx, updateProfileQuery, fullName, phone, address, id))
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	res, err := r.db.ExecContext(ctx, updatePasswordQuery, hash, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) one(row *sql.Row) (Profile, error) {
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return p, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(scanner rowScanner) (Profile, error) {
	var (
		p                        Profile
		fullName, phone, address sql.NullString
	)
	if err := scanner.Scan(&p.ID, &p.Email, &p.PasswordHash, &fullName, &phone, &address, &p.IsAdmin, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Profile{}, err
	}
	if fullName.Valid {
		p.FullName = &fullName.String
	}
	if phone.Valid {
		p.Phone = &phone.String
	}
	if address.Valid {
		p.Address = &address.String
	}
	return p, nil
}
