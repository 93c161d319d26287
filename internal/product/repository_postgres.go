package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/wichananm65/beverage-shop/internal/listing"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	selectProductColumns = `
		SELECT p.id, p.code, p.slug, p.name, p.description, p.price,
		       p.in_stock, p.is_active, p.featured, p.featured_order, p.badge,
		       p.brand, p.packaging, p.image_url,
		       p.packaging_override, p.package_type, p.pack_qty, p.unit, p.volume_ml,
		       p.category_id, c.name, c.slug, p.brand_id, b.name, b.slug,
		       p.created_at, p.updated_at
	`
	fromProducts = `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN brands b ON b.id = p.brand_id
	`
	insertProductQuery = `
		INSERT INTO products (slug, name, description, price, in_stock, is_active, featured, featured_order,
			badge, brand, packaging, image_url, packaging_override, package_type, pack_qty, unit, volume_ml,
			category_id, brand_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		RETURNING id
	`
	updateProductQuery = `
		UPDATE products
		SET slug = $1, name = $2, description = $3, price = $4, in_stock = $5, is_active = $6,
			featured = $7, featured_order = $8, badge = $9, brand = $10, packaging = $11, image_url = $12,
			packaging_override = $13, package_type = $14, pack_qty = $15, unit = $16, volume_ml = $17,
			category_id = $18, brand_id = $19
		WHERE id = $20
	`
	deleteProductQuery = `DELETE FROM products WHERE id = $1`
)

// orderColumns whitelists the columns a listing may sort on.
var orderColumns = map[string]string{
	"name":           "p.name",
	"created_at":     "p.created_at",
	"updated_at":     "p.updated_at",
	"featured_order": "p.featured_order",
	"price":          "p.price",
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// where renders f as a WHERE clause with positional arguments.
func where(f Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.ActiveOnly {
		conds = append(conds, "p.is_active")
	}
	if f.FeaturedOnly {
		conds = append(conds, "p.featured")
	}
	if f.CategoryID != "" {
		conds = append(conds, "p.category_id = "+arg(f.CategoryID))
	}
	if f.BrandID != "" {
		conds = append(conds, "p.brand_id = "+arg(f.BrandID))
	}
	if f.ExcludeID != "" {
		conds = append(conds, "p.id <> "+arg(f.ExcludeID))
	}
	if f.Search != "" {
		n := arg("%" + f.Search + "%")
		conds = append(conds, fmt.Sprintf("(p.name ILIKE %[1]s OR p.description ILIKE %[1]s OR p.code ILIKE %[1]s)", n))
	}
	if f.AdminSearch != "" {
		n := arg("%" + f.AdminSearch + "%")
		conds = append(conds, fmt.Sprintf("(p.name ILIKE %[1]s OR p.code ILIKE %[1]s OR p.slug ILIKE %[1]s OR coalesce(b.name, p.brand) ILIKE %[1]s)", n))
	}
	if v := f.Volume; v != nil {
		if v.ML > 0 {
			conds = append(conds, "p.volume_ml = "+arg(v.ML))
		}
		if v.Text != "" {
			n := arg("%" + v.Text + "%")
			conds = append(conds, fmt.Sprintf("(p.packaging_override ILIKE %[1]s OR p.packaging ILIKE %[1]s)", n))
		}
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func orderBy(orders []listing.Order) string {
	terms := make([]string, 0, len(orders))
	for _, o := range orders {
		col, ok := orderColumns[o.Column]
		if !ok {
			continue
		}
		if o.Desc {
			col += " DESC"
		}
		terms = append(terms, col)
	}
	if len(terms) == 0 {
		return " ORDER BY p.name"
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]Product, error) {
	cond, args := where(f)
	q := selectProductColumns + fromProducts + cond + orderBy(f.Orders)
	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Count(ctx context.Context, f Filter) (int, error) {
	cond, args := where(f)
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT count(*)"+fromProducts+cond, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresRepository) getOne(ctx context.Context, column, value string) (Product, error) {
	row := r.db.QueryRowContext(ctx, selectProductColumns+fromProducts+" WHERE p."+column+" = $1", value)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Product, error) {
	return r.getOne(ctx, "id", id)
}

func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (Product, error) {
	return r.getOne(ctx, "slug", slug)
}

func writeArgs(p Product) []any {
	return []any{
		p.Slug, p.Name, p.Description, p.Price, p.InStock, p.IsActive, p.Featured, p.FeaturedOrder,
		p.Badge, p.Brand, p.Legacy, p.ImageURL, p.Override, p.PackageType, p.PackQty, p.Unit, p.VolumeML,
		p.CategoryID, p.BrandID,
	}
}

// Create inserts p and reads it back so the trigger-assigned code and
// timestamps are returned.
func (r *PostgresRepository) Create(ctx context.Context, p Product) (Product, error) {
	var id string
	if err := r.db.QueryRowContext(ctx, insertProductQuery, writeArgs(p)...).Scan(&id); err != nil {
		return Product{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresRepository) Update(ctx context.Context, id string, p Product) (Product, error) {
	res, err := r.db.ExecContext(ctx, updateProductQuery, append(writeArgs(p), id)...)
	if err != nil {
		return Product{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Product{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteProductQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(scanner rowScanner) (Product, error) {
	p := Product{}
	var (
		code, description, badge, brand, legacy, imageURL sql.NullString
		override, packageType, unit                       sql.NullString
		categoryID, categoryName, categorySlug            sql.NullString
		brandID, brandName, brandSlug                     sql.NullString
		price, packQty, volumeML                          sql.NullInt64
	)

	if err := scanner.Scan(
		&p.ID, &code, &p.Slug, &p.Name, &description, &price,
		&p.InStock, &p.IsActive, &p.Featured, &p.FeaturedOrder, &badge,
		&brand, &legacy, &imageURL,
		&override, &packageType, &packQty, &unit, &volumeML,
		&categoryID, &categoryName, &categorySlug, &brandID, &brandName, &brandSlug,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return Product{}, err
	}

	p.Code = nullString(code)
	p.Description = nullString(description)
	p.Badge = nullString(badge)
	p.Brand = nullString(brand)
	p.Legacy = nullString(legacy)
	p.ImageURL = nullString(imageURL)
	p.Override = nullString(override)
	p.PackageType = nullString(packageType)
	p.Unit = nullString(unit)
	p.CategoryID = nullString(categoryID)
	p.CategoryName = nullString(categoryName)
	p.CategorySlug = nullString(categorySlug)
	p.BrandID = nullString(brandID)
	p.BrandName = nullString(brandName)
	p.BrandSlug = nullString(brandSlug)
	if price.Valid {
		p.Price = &price.Int64
	}
	p.PackQty = nullInt(packQty)
	p.VolumeML = nullInt(volumeML)

	return p, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
