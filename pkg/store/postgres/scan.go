package postgres

import (
	"github.com/jackc/pgx/v5"

	"github.com/openhunt/openhunt/pkg/model"
)

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanProduct maps one product row onto the API model. Status strings
// parse through the total ParseStatus mapping and a NULL tags array
// normalizes to an empty slice, never nil.
func scanProduct(row rowScanner) (model.Product, error) {
	var p model.Product
	var status string
	var tags []string

	err := row.Scan(
		&p.ID, &p.Name, &p.Slogan, &p.Description, &p.Website, &p.LogoURL,
		&p.Category, &tags, &p.MakerName, &p.MakerEmail, &p.MakerWebsite,
		&p.Language, &status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return model.Product{}, err
	}

	p.Status = model.ParseStatus(status)
	if tags == nil {
		tags = []string{}
	}
	p.Tags = tags
	return p, nil
}

// collectProducts drains rows into a slice; no matches yields an empty
// slice.
func collectProducts(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// scanCategory maps a category row, substituting the English name when
// the localized name is absent.
func scanCategory(row rowScanner) (model.Category, error) {
	var c model.Category
	var nameZH *string

	if err := row.Scan(&c.ID, &c.NameEN, &nameZH, &c.Icon, &c.Color); err != nil {
		return model.Category{}, err
	}
	c.NameZH = model.CategoryName(c.NameEN, nameZH)
	return c, nil
}
