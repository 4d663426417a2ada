package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhunt/openhunt/pkg/config"
	"github.com/openhunt/openhunt/pkg/model"
	"github.com/openhunt/openhunt/pkg/store"
)

// stubBackend lets each test dial in data or a failure for every read
// and write path.
type stubBackend struct {
	products  []model.Product
	product   *model.Product
	readErr   error
	writeErr  error
	lastLimit int
}

func (b *stubBackend) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if filter.Limit != nil {
		b.lastLimit = *filter.Limit
	}
	return b.products, b.readErr
}

func (b *stubBackend) ListFavoriteProducts(ctx context.Context, userID, language string, limit int) ([]model.Product, error) {
	b.lastLimit = limit
	return b.products, b.readErr
}

func (b *stubBackend) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	return b.product, b.readErr
}

func (b *stubBackend) CreateProduct(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
	if b.writeErr != nil {
		return nil, b.writeErr
	}
	return &model.Product{Name: req.Name, Status: model.StatusPending}, nil
}

func (b *stubBackend) UpdateProduct(ctx context.Context, id string, req model.UpdateProductRequest) (*model.Product, error) {
	if b.writeErr != nil {
		return nil, b.writeErr
	}
	return b.product, nil
}

func (b *stubBackend) DeleteProduct(ctx context.Context, id string) (bool, error) {
	return b.product != nil, b.writeErr
}

func (b *stubBackend) ListCategories(ctx context.Context) ([]model.Category, error) {
	return []model.Category{}, b.readErr
}

func (b *stubBackend) UpsertCategories(ctx context.Context, batch []model.CategoryInput) (int, error) {
	return len(batch), b.writeErr
}

func (b *stubBackend) TopCategories(ctx context.Context, limit int) ([]model.CategoryWithCount, error) {
	b.lastLimit = limit
	return []model.CategoryWithCount{}, b.readErr
}

func (b *stubBackend) SearchDevelopers(ctx context.Context, query string, limit int) ([]model.Developer, error) {
	return []model.Developer{}, b.readErr
}

func (b *stubBackend) TopDevelopers(ctx context.Context, limit int) ([]model.DeveloperWithFollowers, error) {
	return []model.DeveloperWithFollowers{}, b.readErr
}

func (b *stubBackend) RecentDevelopers(ctx context.Context, limit int) ([]model.DeveloperWithFollowers, error) {
	return []model.DeveloperWithFollowers{}, b.readErr
}

func (b *stubBackend) DeveloperPopularityLastMonth(ctx context.Context, limit int) ([]model.DeveloperPopularity, error) {
	return []model.DeveloperPopularity{}, b.readErr
}

func (b *stubBackend) FollowDeveloper(ctx context.Context, email, userID string) error {
	return b.writeErr
}

func (b *stubBackend) UnfollowDeveloper(ctx context.Context, email, userID string) error {
	return b.writeErr
}

func (b *stubBackend) LikeProduct(ctx context.Context, productID, userID string) error {
	return b.writeErr
}

func (b *stubBackend) UnlikeProduct(ctx context.Context, productID, userID string) error {
	return b.writeErr
}

func (b *stubBackend) FavoriteProduct(ctx context.Context, productID, userID string) error {
	return b.writeErr
}

func (b *stubBackend) UnfavoriteProduct(ctx context.Context, productID, userID string) error {
	return b.writeErr
}

func (b *stubBackend) CountProducts(ctx context.Context) (int64, error) {
	return int64(len(b.products)), b.readErr
}

func (b *stubBackend) Close() {}

func newTestServer(backend store.Backend, cfg config.Config) *httptest.Server {
	st := store.NewWithBackend(backend, nil)
	return httptest.NewServer(New(st, cfg, nil).Router())
}

func decodeBody(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(&stubBackend{}, config.Config{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListProducts_OK(t *testing.T) {
	backend := &stubBackend{products: []model.Product{{ID: "p1", Name: "Inklet"}}}
	srv := newTestServer(backend, config.Config{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/products/?limit=500")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data    []model.Product `json:"data"`
		Message string          `json:"message"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Data, 1)
	assert.Empty(t, body.Message)
	assert.Equal(t, 100, backend.lastLimit, "page size is clamped before the store")
}

func TestListProducts_DegradesWhenUnavailable(t *testing.T) {
	backend := &stubBackend{readErr: errors.New("dial tcp: connect: connection refused")}
	srv := newTestServer(backend, config.Config{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/products/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data    []model.Product `json:"data"`
		Message string          `json:"message"`
	}
	decodeBody(t, resp, &body)
	assert.NotNil(t, body.Data)
	assert.Empty(t, body.Data)
	assert.Equal(t, messages["en"]["backend_unavailable"], body.Message)
}

func TestListProducts_DegradedMessageLocalized(t *testing.T) {
	backend := &stubBackend{readErr: errors.New("connection refused")}
	srv := newTestServer(backend, config.Config{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/products/?lang=zh")
	require.NoError(t, err)

	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, messages["zh"]["backend_unavailable"], body.Message)
}

func TestListProducts_HardErrorIs500(t *testing.T) {
	backend := &stubBackend{readErr: errors.New("scan failed on row 3")}
	srv := newTestServer(backend, config.Config{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/products/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestGetProduct_NotFound(t *testing.T) {
	srv := newTestServer(&stubBackend{}, config.Config{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/products/unknown")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateProduct_Validation(t *testing.T) {
	srv := newTestServer(&stubBackend{}, config.Config{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/products/", "application/json",
		strings.NewReader(`{"slogan":"no name or maker"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateProduct_Created(t *testing.T) {
	srv := newTestServer(&stubBackend{}, config.Config{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/products/", "application/json",
		strings.NewReader(`{"name":"Inklet","maker_email":"io@inklet.example.com"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var p model.Product
	decodeBody(t, resp, &p)
	assert.Equal(t, model.StatusPending, p.Status)
}

func TestCountProducts_Degraded(t *testing.T) {
	backend := &stubBackend{readErr: errors.New("connection refused")}
	srv := newTestServer(backend, config.Config{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/products/count")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Count   int64  `json:"count"`
		Message string `json:"message"`
	}
	decodeBody(t, resp, &body)
	assert.Zero(t, body.Count)
	assert.NotEmpty(t, body.Message)
}

func TestFavorites_RequiresUserID(t *testing.T) {
	srv := newTestServer(&stubBackend{}, config.Config{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/favorites")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEngagement_RequiresUserHeader(t *testing.T) {
	srv := newTestServer(&stubBackend{}, config.Config{})
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/products/p1/like", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEngagement_WriteFailureIsHardError(t *testing.T) {
	// Write failures never take the degraded soft path, even when the
	// error would classify as unavailable.
	backend := &stubBackend{writeErr: errors.New("engagement writes unsupported: no database configured")}
	srv := newTestServer(backend, config.Config{})
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/products/p1/like", nil)
	req.Header.Set("X-User-ID", "u1")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestEngagement_OK(t *testing.T) {
	srv := newTestServer(&stubBackend{}, config.Config{})
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/developers/io@inklet.example.com/follow", nil)
	req.Header.Set("X-User-ID", "u1")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]bool
	decodeBody(t, resp, &body)
	assert.True(t, body["ok"])
}

func TestDevSeed_TokenGuard(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		header   string
		expected int
	}{
		{
			name:     "disabled without configured token",
			token:    "",
			header:   "Bearer anything",
			expected: http.StatusForbidden,
		},
		{
			name:     "wrong token",
			token:    "seed-token",
			header:   "Bearer nope",
			expected: http.StatusForbidden,
		},
		{
			name:     "missing header",
			token:    "seed-token",
			header:   "",
			expected: http.StatusForbidden,
		},
		{
			name:     "correct token",
			token:    "seed-token",
			header:   "Bearer seed-token",
			expected: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&stubBackend{}, config.Config{DevSeedToken: tt.token})
			defer srv.Close()

			req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/dev/seed", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.expected, resp.StatusCode)
		})
	}
}

func TestNormalizeLang(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"zh", "zh"},
		{"zh-CN", "zh"},
		{"ZH-TW", "zh"},
		{"en", "en"},
		{"en-US,en;q=0.9", "en"},
		{"", "en"},
		{"fr", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeLang(tt.input))
		})
	}
}
