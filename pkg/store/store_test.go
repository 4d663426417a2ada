package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhunt/openhunt/pkg/config"
	"github.com/openhunt/openhunt/pkg/model"
)

// fakeBackend records the arguments of the last call so tests can
// assert what the facade actually forwarded.
type fakeBackend struct {
	lastMethod string
	lastLimit  int
	lastQuery  string
	lastCreate model.CreateProductRequest
	lastBatch  []model.CategoryInput
}

func (f *fakeBackend) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	f.lastMethod = "ListProducts"
	return []model.Product{}, nil
}

func (f *fakeBackend) ListFavoriteProducts(ctx context.Context, userID, language string, limit int) ([]model.Product, error) {
	f.lastMethod, f.lastLimit = "ListFavoriteProducts", limit
	return []model.Product{}, nil
}

func (f *fakeBackend) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	f.lastMethod = "GetProduct"
	return &model.Product{ID: id}, nil
}

func (f *fakeBackend) CreateProduct(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
	f.lastMethod, f.lastCreate = "CreateProduct", req
	return &model.Product{Name: req.Name}, nil
}

func (f *fakeBackend) UpdateProduct(ctx context.Context, id string, req model.UpdateProductRequest) (*model.Product, error) {
	f.lastMethod = "UpdateProduct"
	return &model.Product{ID: id}, nil
}

func (f *fakeBackend) DeleteProduct(ctx context.Context, id string) (bool, error) {
	f.lastMethod = "DeleteProduct"
	return true, nil
}

func (f *fakeBackend) ListCategories(ctx context.Context) ([]model.Category, error) {
	f.lastMethod = "ListCategories"
	return []model.Category{}, nil
}

func (f *fakeBackend) UpsertCategories(ctx context.Context, batch []model.CategoryInput) (int, error) {
	f.lastMethod, f.lastBatch = "UpsertCategories", batch
	return len(batch), nil
}

func (f *fakeBackend) TopCategories(ctx context.Context, limit int) ([]model.CategoryWithCount, error) {
	f.lastMethod, f.lastLimit = "TopCategories", limit
	return []model.CategoryWithCount{}, nil
}

func (f *fakeBackend) SearchDevelopers(ctx context.Context, query string, limit int) ([]model.Developer, error) {
	f.lastMethod, f.lastQuery, f.lastLimit = "SearchDevelopers", query, limit
	return []model.Developer{}, nil
}

func (f *fakeBackend) TopDevelopers(ctx context.Context, limit int) ([]model.DeveloperWithFollowers, error) {
	f.lastMethod, f.lastLimit = "TopDevelopers", limit
	return []model.DeveloperWithFollowers{}, nil
}

func (f *fakeBackend) RecentDevelopers(ctx context.Context, limit int) ([]model.DeveloperWithFollowers, error) {
	f.lastMethod, f.lastLimit = "RecentDevelopers", limit
	return []model.DeveloperWithFollowers{}, nil
}

func (f *fakeBackend) DeveloperPopularityLastMonth(ctx context.Context, limit int) ([]model.DeveloperPopularity, error) {
	f.lastMethod, f.lastLimit = "DeveloperPopularityLastMonth", limit
	return []model.DeveloperPopularity{}, nil
}

func (f *fakeBackend) FollowDeveloper(ctx context.Context, email, userID string) error   { return nil }
func (f *fakeBackend) UnfollowDeveloper(ctx context.Context, email, userID string) error { return nil }
func (f *fakeBackend) LikeProduct(ctx context.Context, productID, userID string) error   { return nil }
func (f *fakeBackend) UnlikeProduct(ctx context.Context, productID, userID string) error { return nil }
func (f *fakeBackend) FavoriteProduct(ctx context.Context, productID, userID string) error {
	return nil
}
func (f *fakeBackend) UnfavoriteProduct(ctx context.Context, productID, userID string) error {
	return nil
}

func (f *fakeBackend) CountProducts(ctx context.Context) (int64, error) { return 0, nil }
func (f *fakeBackend) Close()                                           {}

func TestOpen_MissingConfiguration(t *testing.T) {
	_, err := Open(context.Background(), config.Config{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing configuration")
	assert.True(t, Unavailable(err), "missing configuration must classify as unavailable")
}

func TestListFavoriteProducts_ClampsLimit(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		expected int
	}{
		{name: "zero clamps to one", limit: 0, expected: 1},
		{name: "negative clamps to one", limit: -5, expected: 1},
		{name: "in range passes through", limit: 42, expected: 42},
		{name: "huge clamps to ceiling", limit: 10000, expected: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{}
			st := NewWithBackend(backend, nil)

			_, err := st.ListFavoriteProducts(context.Background(), "u1", "", tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, backend.lastLimit)
		})
	}
}

func TestAggregateLimits_ClampInto50(t *testing.T) {
	backend := &fakeBackend{}
	st := NewWithBackend(backend, nil)
	ctx := context.Background()

	calls := []struct {
		name string
		call func(limit int) error
	}{
		{"TopCategories", func(l int) error { _, err := st.TopCategories(ctx, l); return err }},
		{"TopDevelopers", func(l int) error { _, err := st.TopDevelopers(ctx, l); return err }},
		{"RecentDevelopers", func(l int) error { _, err := st.RecentDevelopers(ctx, l); return err }},
		{"DeveloperPopularityLastMonth", func(l int) error {
			_, err := st.DeveloperPopularityLastMonth(ctx, l)
			return err
		}},
	}

	for _, c := range calls {
		t.Run(c.name, func(t *testing.T) {
			require.NoError(t, c.call(0))
			assert.Equal(t, 1, backend.lastLimit, "floor")

			require.NoError(t, c.call(500))
			assert.Equal(t, 50, backend.lastLimit, "ceiling")

			require.NoError(t, c.call(25))
			assert.Equal(t, 25, backend.lastLimit, "pass-through")
		})
	}
}

func TestUpdateProduct_EmptyPartialFetchesInstead(t *testing.T) {
	backend := &fakeBackend{}
	st := NewWithBackend(backend, nil)

	p, err := st.UpdateProduct(context.Background(), "p1", model.UpdateProductRequest{})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "GetProduct", backend.lastMethod)
}

func TestUpdateProduct_PresentFieldGoesThrough(t *testing.T) {
	backend := &fakeBackend{}
	st := NewWithBackend(backend, nil)
	status := "approved"

	_, err := st.UpdateProduct(context.Background(), "p1", model.UpdateProductRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "UpdateProduct", backend.lastMethod)
}

func TestCreateProduct_SanitizesBeforeBackend(t *testing.T) {
	backend := &fakeBackend{}
	st := NewWithBackend(backend, nil)

	_, err := st.CreateProduct(context.Background(), model.CreateProductRequest{
		Name:       "Ink\x00let",
		MakerEmail: "io@inklet.example.com",
		Tags:       []string{"ai\x00"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Inklet", backend.lastCreate.Name)
	assert.Equal(t, []string{"ai"}, backend.lastCreate.Tags)
}

func TestUpsertCategories_EmptyBatchSkipsBackend(t *testing.T) {
	backend := &fakeBackend{}
	st := NewWithBackend(backend, nil)

	written, err := st.UpsertCategories(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, written)
	assert.Empty(t, backend.lastMethod, "backend must not be called for an empty batch")
}

func TestSearchDevelopers_SanitizesAndClamps(t *testing.T) {
	backend := &fakeBackend{}
	st := NewWithBackend(backend, nil)

	_, err := st.SearchDevelopers(context.Background(), "io\x00@", 9999)
	require.NoError(t, err)
	assert.Equal(t, "io@", backend.lastQuery)
	assert.Equal(t, 50, backend.lastLimit)
}
