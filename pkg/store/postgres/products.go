package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/openhunt/openhunt/pkg/model"
)

// ListProducts lists products newest first according to the shared
// filter. No matches returns an empty slice.
func (s *Store) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	sql, args := s.compileProductQuery(filter)

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return collectProducts(rows)
}

// validProductID reports whether id can possibly match a uuid primary
// key. Malformed ids are not-found by contract, so callers skip the
// round-trip; the id::text comparisons below keep the same behavior for
// anything that slips through.
func validProductID(id string) bool {
	return uuid.Validate(id) == nil
}

// GetProduct fetches one product by id. The id is compared as text, so
// a malformed uuid is simply not found rather than a cast error.
func (s *Store) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	if !validProductID(id) {
		return nil, nil
	}
	sql := "SELECT " + productColumns("") + " FROM products WHERE id::text = $1"

	p, err := scanProduct(s.pool.QueryRow(ctx, sql, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

// CreateProduct inserts a submission with status forced to pending and
// upserts the maker's developer row as part of the same logical
// operation: the name is always overwritten, the website only when the
// new value is present.
func (s *Store) CreateProduct(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	sql := `INSERT INTO products
		(name, slogan, description, website, logo_url, category, tags,
		 maker_name, maker_email, maker_website, language, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 'pending')
		RETURNING ` + productColumns("")

	p, err := scanProduct(s.pool.QueryRow(ctx, sql,
		req.Name, req.Slogan, req.Description, req.Website, req.LogoURL,
		req.Category, tags, req.MakerName, req.MakerEmail, req.MakerWebsite,
		req.Language,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	if err := s.upsertDeveloper(ctx, req.MakerEmail, req.MakerName, req.MakerWebsite); err != nil {
		return nil, fmt.Errorf("failed to upsert developer for %s: %w", req.MakerEmail, err)
	}

	return &p, nil
}

// UpdateProduct updates only the supplied fields and bumps updated_at.
// Not found is (nil, nil). The caller short-circuits empty partials to
// a plain fetch before reaching here.
func (s *Store) UpdateProduct(ctx context.Context, id string, req model.UpdateProductRequest) (*model.Product, error) {
	if !validProductID(id) {
		return nil, nil
	}

	var sets []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if req.Name != nil {
		sets = append(sets, "name = "+arg(*req.Name))
	}
	if req.Slogan != nil {
		sets = append(sets, "slogan = "+arg(*req.Slogan))
	}
	if req.Description != nil {
		sets = append(sets, "description = "+arg(*req.Description))
	}
	if req.Website != nil {
		sets = append(sets, "website = "+arg(*req.Website))
	}
	if req.LogoURL != nil {
		sets = append(sets, "logo_url = "+arg(*req.LogoURL))
	}
	if req.Category != nil {
		sets = append(sets, "category = "+arg(*req.Category))
	}
	if req.Tags != nil {
		tags := *req.Tags
		if tags == nil {
			tags = []string{}
		}
		sets = append(sets, "tags = "+arg(tags))
	}
	if req.Language != nil {
		sets = append(sets, "language = "+arg(*req.Language))
	}
	if req.Status != nil {
		// ParseStatus is total, so arbitrary input normalizes to a
		// valid enum token instead of violating the column constraint.
		sets = append(sets, "status = "+arg(model.ParseStatus(*req.Status).String())+"::product_status")
	}
	sets = append(sets, "updated_at = now()")

	sql := "UPDATE products SET " + strings.Join(sets, ", ") +
		" WHERE id::text = " + arg(id) +
		" RETURNING " + productColumns("")

	p, err := scanProduct(s.pool.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &p, nil
}

// DeleteProduct removes a product and reports whether a row was
// deleted. Deleting a missing row is not an error.
func (s *Store) DeleteProduct(ctx context.Context, id string) (bool, error) {
	if !validProductID(id) {
		return false, nil
	}
	ct, err := s.pool.Exec(ctx, "DELETE FROM products WHERE id::text = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

// ListFavoriteProducts lists the user's favorited products, newest
// favorite first, optionally filtered by language. Only approved
// products are shown (widened in dev mode).
func (s *Store) ListFavoriteProducts(ctx context.Context, userID, language string, limit int) ([]model.Product, error) {
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	var b strings.Builder
	b.WriteString("SELECT " + productColumns("p") + " FROM products p")
	b.WriteString(" JOIN product_favorites f ON f.product_id = p.id")
	b.WriteString(" WHERE f.user_id = " + arg(userID))
	if language != "" {
		b.WriteString(" AND p.language = " + arg(language))
	}
	b.WriteString(" AND " + s.statusCond("p", "approved", arg))
	b.WriteString(" ORDER BY f.created_at DESC LIMIT " + arg(limit))

	rows, err := s.pool.Query(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorite products: %w", err)
	}
	return collectProducts(rows)
}
