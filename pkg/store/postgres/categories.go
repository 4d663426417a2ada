package postgres

import (
	"context"
	"fmt"

	"github.com/openhunt/openhunt/pkg/model"
)

// ListCategories returns all categories ordered by id.
func (s *Store) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, name_en, name_zh, icon, color FROM categories ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpsertCategories inserts or updates each category keyed by id and
// returns how many rows were written. The batch is applied row by row
// without a wrapping transaction, so a mid-batch failure leaves earlier
// rows applied; acceptable for admin convenience data.
func (s *Store) UpsertCategories(ctx context.Context, batch []model.CategoryInput) (int, error) {
	const sql = `INSERT INTO categories (id, name_en, name_zh, icon, color)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name_en = EXCLUDED.name_en,
			name_zh = EXCLUDED.name_zh,
			icon = EXCLUDED.icon,
			color = EXCLUDED.color`

	written := 0
	for _, c := range batch {
		if _, err := s.pool.Exec(ctx, sql, c.ID, c.NameEN, c.NameZH, c.Icon, c.Color); err != nil {
			return written, fmt.Errorf("failed to upsert category %s: %w", c.ID, err)
		}
		written++
	}
	return written, nil
}

// TopCategories ranks categories by the number of approved products
// (pending included in dev mode), count descending with id ascending as
// tie-break.
func (s *Store) TopCategories(ctx context.Context, limit int) ([]model.CategoryWithCount, error) {
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	sql := `SELECT c.id, c.name_en, c.name_zh, c.icon, c.color, COUNT(p.id) AS product_count
		FROM categories c
		LEFT JOIN products p ON p.category = c.id AND ` + s.statusCond("p", "approved", arg) + `
		GROUP BY c.id, c.name_en, c.name_zh, c.icon, c.color
		ORDER BY product_count DESC, c.id ASC
		LIMIT ` + arg(limit)

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to rank categories: %w", err)
	}
	defer rows.Close()

	ranked := []model.CategoryWithCount{}
	for rows.Next() {
		var c model.CategoryWithCount
		var nameZH *string
		if err := rows.Scan(&c.ID, &c.NameEN, &nameZH, &c.Icon, &c.Color, &c.ProductCount); err != nil {
			return nil, err
		}
		c.NameZH = model.CategoryName(c.NameEN, nameZH)
		ranked = append(ranked, c)
	}
	return ranked, rows.Err()
}
