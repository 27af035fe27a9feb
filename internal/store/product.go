// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"spicehouse/internal/models"
	"spicehouse/internal/slug"
)

// slugAttempts bounds how often Save re-assigns a slug after losing a
// race on the unique index to a concurrent insert.
const slugAttempts = 3

// ProductStore handles all product-related database operations.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore creates a new ProductStore with the given database connection.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

// ProductFilter narrows a product listing.
type ProductFilter struct {
	Category     models.Category // empty = all categories
	ExcludeNames []string        // product names hidden from the listing
	Limit        int             // 0 = no limit
}

const productColumns = `id, name, slug, category, description, price, image_url, is_active, created_at, updated_at`

// scanProduct scans a row into a Product struct.
func scanProduct(scanner interface{ Scan(...any) error }) (*models.Product, error) {
	var (
		p        models.Product
		slugCol  sql.NullString
		category string
	)
	err := scanner.Scan(
		&p.ID, &p.Name, &slugCol, &category, &p.Description,
		&p.Price, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Slug = slugCol.String
	p.Category = models.Category(category)
	return &p, nil
}

func (s *ProductStore) queryProducts(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// ListActive returns active products ordered by name, applying the filter.
func (s *ProductStore) ListActive(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	var (
		where = []string{"is_active = TRUE"}
		args  []any
	)
	if f.Category != "" {
		args = append(args, string(f.Category))
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if len(f.ExcludeNames) > 0 {
		args = append(args, f.ExcludeNames)
		where = append(where, fmt.Sprintf("name <> ALL($%d::text[])", len(args)))
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY name, id`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	items, err := s.queryProducts(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	return items, nil
}

// Featured returns the first limit active products by name.
func (s *ProductStore) Featured(ctx context.Context, limit int) ([]models.Product, error) {
	return s.ListActive(ctx, ProductFilter{Limit: limit})
}

// Related returns up to limit other active products in the same category.
func (s *ProductStore) Related(ctx context.Context, p *models.Product, limit int) ([]models.Product, error) {
	items, err := s.queryProducts(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE is_active = TRUE AND category = $1 AND id <> $2
		ORDER BY name, id
		LIMIT $3
	`, string(p.Category), p.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("list related products: %w", err)
	}
	return items, nil
}

// FindBySlug retrieves an active product by its slug. Returns nil if not found.
func (s *ProductStore) FindBySlug(ctx context.Context, slugParam string) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE slug = $1 AND is_active = TRUE`, slugParam)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by slug: %w", err)
	}
	return p, nil
}

// FindByID retrieves a product by ID regardless of its active flag.
// Returns nil if not found.
func (s *ProductStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return p, nil
}

// FindByIDs returns the products with the given IDs keyed by ID. Unknown
// IDs are absent from the map.
func (s *ProductStore) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Product, error) {
	result := make(map[uuid.UUID]*models.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}

	items, err := s.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ANY($1::uuid[])`, keys)
	if err != nil {
		return nil, fmt.Errorf("find products by ids: %w", err)
	}
	for i := range items {
		result[items[i].ID] = &items[i]
	}
	return result, nil
}

// SlugExists reports whether a product other than excludeID owns slugParam.
func (s *ProductStore) SlugExists(ctx context.Context, slugParam string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE slug = $1 AND id <> $2)`,
		slugParam, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check product slug: %w", err)
	}
	return exists, nil
}

// Save inserts a new product (ID == uuid.Nil) or updates an existing one.
// A product without a slug gets one assigned from its name; an existing
// slug is kept as-is. On return p holds the stored values.
func (s *ProductStore) Save(ctx context.Context, p *models.Product) error {
	if p.Category == "" {
		p.Category = models.CategoryOther
	}
	if !p.Category.Valid() {
		return fmt.Errorf("save product: invalid category %q", p.Category)
	}

	assigned := p.Slug == ""
	for attempt := 1; ; attempt++ {
		if assigned {
			sl, err := slug.Assign(ctx, p.Name, p.ID, s)
			if err != nil {
				return fmt.Errorf("save product: %w", err)
			}
			p.Slug = sl
		}

		err := s.write(ctx, p)
		if err == nil {
			return nil
		}
		if assigned && attempt < slugAttempts && isSlugConflict(err) {
			continue
		}
		if assigned {
			p.Slug = ""
		}
		return fmt.Errorf("save product: %w", err)
	}
}

// write performs the INSERT or UPDATE for Save.
func (s *ProductStore) write(ctx context.Context, p *models.Product) error {
	if p.ID == uuid.Nil {
		row := s.db.QueryRowContext(ctx, `
			INSERT INTO products (name, slug, category, description, price, image_url, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+productColumns,
			p.Name, nullString(p.Slug), string(p.Category), p.Description,
			p.Price, p.ImageURL, p.IsActive,
		)
		created, err := scanProduct(row)
		if err != nil {
			return err
		}
		*p = *created
		return nil
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE products SET
			name = $1, slug = $2, category = $3, description = $4,
			price = $5, image_url = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING `+productColumns,
		p.Name, nullString(p.Slug), string(p.Category), p.Description,
		p.Price, p.ImageURL, p.IsActive, p.ID,
	)
	updated, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return fmt.Errorf("product %s not found", p.ID)
	}
	if err != nil {
		return err
	}
	*p = *updated
	return nil
}

// ClearSlug removes a product's slug so the next Save assigns a new one.
func (s *ProductStore) ClearSlug(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `UPDATE products SET slug = NULL, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("clear product slug: %w", err)
	}
	return nil
}

// Delete removes a product by ID. Products referenced by order items
// cannot be deleted.
func (s *ProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// isSlugConflict reports whether err is a unique violation on products.slug.
func isSlugConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "products_slug_key"
}

// nullString maps "" to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
