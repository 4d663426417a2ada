package rest

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestLastMonthWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	from, to := lastMonthWindow(now)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), to)
	assert.Equal(t, "2024-02-01T00:00:00Z", from.Format(timeLayout))
}

func TestTopCategories_ClientSideRanking(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/v1/categories":
			io.WriteString(w, `[
				{"id":"design","name_en":"Design"},
				{"id":"devtools","name_en":"Developer Tools"},
				{"id":"writing","name_en":"Writing"}
			]`)
		case "/rest/v1/products":
			assert.Equal(t, "category", r.URL.Query().Get("select"))
			assert.Equal(t, "eq.approved", r.URL.Query().Get("status"))
			io.WriteString(w, `[
				{"category":"devtools"},
				{"category":"devtools"},
				{"category":"writing"}
			]`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	defer srv.Close()

	ranked, err := c.TopCategories(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.Equal(t, "devtools", ranked[0].ID)
	assert.Equal(t, 2, ranked[0].ProductCount)
	assert.Equal(t, "writing", ranked[1].ID)
	assert.Equal(t, 1, ranked[1].ProductCount)
}

func TestTopCategories_TieBreaksOnID(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/v1/categories":
			io.WriteString(w, `[
				{"id":"writing","name_en":"Writing"},
				{"id":"design","name_en":"Design"}
			]`)
		case "/rest/v1/products":
			io.WriteString(w, `[]`)
		}
	})
	defer srv.Close()

	ranked, err := c.TopCategories(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "design", ranked[0].ID)
	assert.Equal(t, "writing", ranked[1].ID)
}

func TestTopDevelopers_CountsFollows(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/v1/developers":
			io.WriteString(w, `[
				{"email":"a@example.com","name":"Ada"},
				{"email":"b@example.com","name":"Bo"}
			]`)
		case "/rest/v1/developer_follows":
			io.WriteString(w, `[
				{"developer_email":"b@example.com"},
				{"developer_email":"b@example.com"},
				{"developer_email":"a@example.com"}
			]`)
		}
	})
	defer srv.Close()

	developers, err := c.TopDevelopers(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, developers, 2)

	assert.Equal(t, "b@example.com", developers[0].Email)
	assert.Equal(t, 2, developers[0].Followers)
	assert.Equal(t, 1, developers[1].Followers)
}

func TestDeveloperPopularityLastMonth_ClientSide(t *testing.T) {
	clock := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/v1/products":
			io.WriteString(w, `[
				{"id":"p1","maker_email":"a@example.com"},
				{"id":"p2","maker_email":"b@example.com"}
			]`)
		case "/rest/v1/product_likes":
			created := r.URL.Query()["created_at"]
			assert.Contains(t, created, "gte.2024-02-01T00:00:00Z")
			assert.Contains(t, created, "lt.2024-03-01T00:00:00Z")
			io.WriteString(w, `[{"product_id":"p1"},{"product_id":"p1"},{"product_id":"p2"}]`)
		case "/rest/v1/product_favorites":
			io.WriteString(w, `[{"product_id":"p2"}]`)
		case "/rest/v1/developers":
			io.WriteString(w, `[
				{"email":"a@example.com","name":"Ada"},
				{"email":"b@example.com","name":"Bo"}
			]`)
		}
	})
	defer srv.Close()

	ranked, err := c.WithClock(func() time.Time { return clock }).
		DeveloperPopularityLastMonth(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	// Both score 2; favorites break the tie in Bo's favor.
	assert.Equal(t, "b@example.com", ranked[0].Email)
	assert.Equal(t, 1, ranked[0].Likes)
	assert.Equal(t, 1, ranked[0].Favorites)
	assert.Equal(t, 2, ranked[0].Score)

	assert.Equal(t, "a@example.com", ranked[1].Email)
	assert.Equal(t, 2, ranked[1].Likes)
	assert.Equal(t, 0, ranked[1].Favorites)
}

func TestUpsertCategories_MergeRequest(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "id", r.URL.Query().Get("on_conflict"))
		assert.Equal(t, "resolution=merge-duplicates,return=representation", r.Header.Get("Prefer"))
		io.WriteString(w, `[{"id":"devtools","name_en":"Developer Tools"}]`)
	})
	defer srv.Close()

	written, err := c.UpsertCategories(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, written)
}
