package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/openhunt/openhunt/pkg/model"
)

// ListProducts lists products through the query-string compiler.
func (c *Client) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	var rows []productRow
	if err := getJSON(ctx, c, "products", c.compileProductQuery(filter), &rows); err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// ListFavoriteProducts has no REST implementation and always returns
// empty. Documented limitation, not a silent defect.
func (c *Client) ListFavoriteProducts(ctx context.Context, userID, language string, limit int) ([]model.Product, error) {
	return []model.Product{}, nil
}

// GetProduct fetches one product by id; not found is (nil, nil). A
// malformed uuid is not found rather than a filter parse error from
// the service.
func (c *Client) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	if uuid.Validate(id) != nil {
		return nil, nil
	}
	q := url.Values{}
	q.Set("select", "*")
	q.Set("id", "eq."+id)
	q.Set("limit", "1")

	var rows []productRow
	if err := getJSON(ctx, c, "products", q, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	p := rows[0].toModel()
	return &p, nil
}

// CreateProduct inserts a submission with status forced to pending.
// Unlike the relational path there is no explicit developer upsert; the
// backing service maintains developer rows through its own triggers.
func (c *Client) CreateProduct(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	payload := map[string]interface{}{
		"name":          req.Name,
		"slogan":        req.Slogan,
		"description":   req.Description,
		"website":       req.Website,
		"logo_url":      req.LogoURL,
		"category":      req.Category,
		"tags":          tags,
		"maker_name":    req.MakerName,
		"maker_email":   req.MakerEmail,
		"maker_website": req.MakerWebsite,
		"language":      req.Language,
		"status":        model.StatusPending.String(),
	}

	q := url.Values{}
	q.Set("select", "*")
	data, _, err := c.do(ctx, http.MethodPost, "products", q, []map[string]interface{}{payload}, "return=representation")
	if err != nil {
		return nil, err
	}
	return firstProduct(data)
}

// UpdateProduct patches only the fields present in the partial update
// and bumps updated_at. Not found is (nil, nil).
func (c *Client) UpdateProduct(ctx context.Context, id string, req model.UpdateProductRequest) (*model.Product, error) {
	if uuid.Validate(id) != nil {
		return nil, nil
	}

	payload := map[string]interface{}{}
	if req.Name != nil {
		payload["name"] = *req.Name
	}
	if req.Slogan != nil {
		payload["slogan"] = *req.Slogan
	}
	if req.Description != nil {
		payload["description"] = *req.Description
	}
	if req.Website != nil {
		payload["website"] = *req.Website
	}
	if req.LogoURL != nil {
		payload["logo_url"] = *req.LogoURL
	}
	if req.Category != nil {
		payload["category"] = *req.Category
	}
	if req.Tags != nil {
		tags := *req.Tags
		if tags == nil {
			tags = []string{}
		}
		payload["tags"] = tags
	}
	if req.Language != nil {
		payload["language"] = *req.Language
	}
	if req.Status != nil {
		payload["status"] = model.ParseStatus(*req.Status).String()
	}
	payload["updated_at"] = c.now().UTC()

	q := url.Values{}
	q.Set("select", "*")
	q.Set("id", "eq."+id)
	data, _, err := c.do(ctx, http.MethodPatch, "products", q, payload, "return=representation")
	if err != nil {
		return nil, err
	}
	return firstProduct(data)
}

// DeleteProduct deletes by id and reports whether a row was removed,
// based on the returned representation.
func (c *Client) DeleteProduct(ctx context.Context, id string) (bool, error) {
	if uuid.Validate(id) != nil {
		return false, nil
	}
	q := url.Values{}
	q.Set("id", "eq."+id)
	data, _, err := c.do(ctx, http.MethodDelete, "products", q, nil, "return=representation")
	if err != nil {
		return false, err
	}

	var rows []productRow
	if err := decodeRows(data, "products", &rows); err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// CountProducts asks the service for an exact count and parses it from
// the Content-Range header instead of transferring rows.
func (c *Client) CountProducts(ctx context.Context) (int64, error) {
	q := url.Values{}
	q.Set("select", "id")
	q.Set("limit", "1")

	_, header, err := c.do(ctx, http.MethodGet, "products", q, nil, "count=exact")
	if err != nil {
		return 0, err
	}

	contentRange := header.Get("Content-Range")
	_, total, found := strings.Cut(contentRange, "/")
	if !found {
		return 0, fmt.Errorf("rest: missing count in Content-Range %q", contentRange)
	}
	count, err := strconv.ParseInt(total, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("rest: bad count in Content-Range %q", contentRange)
	}
	return count, nil
}

func firstProduct(data []byte) (*model.Product, error) {
	var rows []productRow
	if err := decodeRows(data, "products", &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	p := rows[0].toModel()
	return &p, nil
}
