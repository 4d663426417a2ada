package postgres

import (
	"fmt"
	"strings"

	"github.com/openhunt/openhunt/pkg/model"
)

// productColumns lists the product projection in scan order. The uuid
// primary key and the status enum are cast to text so callers only ever
// see opaque strings.
func productColumns(prefix string) string {
	cols := []string{
		"id::text", "name", "slogan", "description", "website", "logo_url",
		"category", "tags", "maker_name", "maker_email", "maker_website",
		"language", "status::text", "created_at", "updated_at",
	}
	if prefix == "" {
		return strings.Join(cols, ", ")
	}
	prefixed := make([]string, len(cols))
	for i, c := range cols {
		prefixed[i] = prefix + "." + c
	}
	return strings.Join(prefixed, ", ")
}

// compileProductQuery builds the product listing statement from the
// shared filter. Clauses are ANDed in a fixed order: category,
// language, status, tags, search. The first clause uses WHERE,
// subsequent ones AND. Results are always newest first; LIMIT and
// OFFSET are appended only when the caller provided them, unclamped.
func (s *Store) compileProductQuery(f model.ProductFilter) (string, []interface{}) {
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	var conds []string

	if f.Category != "" {
		conds = append(conds, "category = "+arg(f.Category))
	}
	if f.Language != "" {
		conds = append(conds, "language = "+arg(f.Language))
	}
	if f.Status != "" {
		conds = append(conds, s.statusCond("", f.Status, arg))
	}
	if tag := f.FirstTag(); tag != "" {
		conds = append(conds, "tags @> "+arg([]string{tag}))
	}
	if f.Search != "" {
		pattern := arg("%" + f.Search + "%")
		conds = append(conds, fmt.Sprintf(
			"(name ILIKE %[1]s OR slogan ILIKE %[1]s OR description ILIKE %[1]s OR maker_name ILIKE %[1]s OR maker_email ILIKE %[1]s)",
			pattern))
	}

	var b strings.Builder
	b.WriteString("SELECT " + productColumns("") + " FROM products")
	for i, cond := range conds {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		b.WriteString(cond)
	}
	b.WriteString(" ORDER BY created_at DESC")

	if f.Limit != nil {
		b.WriteString(" LIMIT " + arg(*f.Limit))
	}
	if f.Offset != nil {
		b.WriteString(" OFFSET " + arg(*f.Offset))
	}

	return b.String(), args
}

// statusCond compiles a status filter. In dev mode an "approved"
// filter widens to also include pending rows, so seeded data stays
// visible behind strict status filters.
func (s *Store) statusCond(prefix, status string, arg func(interface{}) string) string {
	col := "status::text"
	if prefix != "" {
		col = prefix + ".status::text"
	}
	if s.wide && strings.EqualFold(status, "approved") {
		return col + " IN (" + arg("approved") + ", " + arg("pending") + ")"
	}
	return col + " = " + arg(status)
}
