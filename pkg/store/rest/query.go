package rest

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/openhunt/openhunt/pkg/model"
)

// compileProductQuery maps the shared filter onto query-string
// operators: eq. for scalar matches, cs.{} for tag containment, and an
// or-group of ilike patterns for search. Search covers
// name/slogan/description only; the relational path additionally
// matches the maker fields, an accepted difference between backends.
// Ordering is always newest first.
func (c *Client) compileProductQuery(f model.ProductFilter) url.Values {
	q := url.Values{}
	q.Set("select", "*")

	if f.Category != "" {
		q.Set("category", "eq."+f.Category)
	}
	if f.Language != "" {
		q.Set("language", "eq."+f.Language)
	}
	if f.Status != "" {
		q.Set("status", c.statusFilter(f.Status))
	}
	if tag := f.FirstTag(); tag != "" {
		q.Set("tags", "cs.{"+tag+"}")
	}
	if f.Search != "" {
		q.Set("or", fmt.Sprintf("(name.ilike.%%%[1]s%%,slogan.ilike.%%%[1]s%%,description.ilike.%%%[1]s%%)", f.Search))
	}

	q.Set("order", "created_at.desc")

	if f.Limit != nil {
		q.Set("limit", strconv.Itoa(*f.Limit))
	}
	if f.Offset != nil {
		q.Set("offset", strconv.Itoa(*f.Offset))
	}
	return q
}

// statusFilter widens an approved filter to in.(approved,pending) in
// dev mode, mirroring the relational compiler.
func (c *Client) statusFilter(status string) string {
	if c.wide && strings.EqualFold(status, "approved") {
		return "in.(approved,pending)"
	}
	return "eq." + status
}
