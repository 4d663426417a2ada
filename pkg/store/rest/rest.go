// Package rest is the storage backend for a REST-fronted
// database-as-a-service (PostgREST dialect). It compiles the shared
// product filter into query-string operators and maps the JSON row
// shapes onto the canonical API entities.
//
// Known gaps against the relational backend, preserved deliberately:
// favorite listings and developer search return empty, engagement
// mutations hard-error, and full-text search only covers
// name/slogan/description rather than the maker fields.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrEngagementUnsupported is returned for follow/like/favorite
// mutations, which need a direct database connection.
var ErrEngagementUnsupported = errors.New("engagement writes unsupported: no database configured")

// Client is the REST backend.
type Client struct {
	baseURL string
	key     string
	wide    bool
	http    *http.Client
	now     func() time.Time
}

// New builds a REST backend for the given endpoint and service key.
func New(baseURL, key string, widenApproved bool) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		wide:    widenApproved,
		http:    &http.Client{Timeout: 15 * time.Second},
		now:     time.Now,
	}
}

// WithHTTPClient swaps the underlying HTTP client, used by tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// WithClock overrides the wall clock used for calendar-month windows.
func (c *Client) WithClock(now func() time.Time) *Client {
	c.now = now
	return c
}

// Close implements the backend interface; the HTTP client holds no
// resources worth releasing.
func (c *Client) Close() {}

// do performs one REST request against a table endpoint and returns the
// response body and headers. Non-2xx responses become errors carrying
// the status line and the free-text body, which is all the degradation
// classifier has to go on for this path.
func (c *Client) do(ctx context.Context, method, table string, query url.Values, body interface{}, prefer string) ([]byte, http.Header, error) {
	endpoint := c.baseURL + "/rest/v1/" + table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("rest request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, fmt.Errorf("rest: %s /%s: %s: %s",
			method, table, resp.Status, strings.TrimSpace(string(data)))
	}
	return data, resp.Header, nil
}

// getJSON performs a GET and decodes the row array.
func getJSON(ctx context.Context, c *Client, table string, query url.Values, dest interface{}) error {
	data, _, err := c.do(ctx, http.MethodGet, table, query, nil, "")
	if err != nil {
		return err
	}
	return decodeRows(data, table, dest)
}

func decodeRows(data []byte, table string, dest interface{}) error {
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode %s rows: %w", table, err)
	}
	return nil
}
