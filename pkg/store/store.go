// Package store exposes one coherent CRUD and aggregation API for the
// product directory, regardless of which storage backend is configured.
// Exactly one backend is active per process: a direct PostgreSQL
// connection when DATABASE_URL is set, otherwise a REST-fronted
// database service. There is no call-time fallback between the two.
//
// Cross-backend rules that must behave identically on both paths live
// here: null-byte sanitization, limit clamping, the empty-partial
// update short-circuit, and the empty-batch upsert no-op. Everything
// backend-specific (query compilation, row mapping) lives in the
// backend packages.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openhunt/openhunt/pkg/config"
	"github.com/openhunt/openhunt/pkg/model"
	"github.com/openhunt/openhunt/pkg/sanitize"
	"github.com/openhunt/openhunt/pkg/store/postgres"
	"github.com/openhunt/openhunt/pkg/store/rest"
)

// Backend is the capability interface both storage implementations
// satisfy. Inputs arrive already sanitized and clamped.
type Backend interface {
	ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	ListFavoriteProducts(ctx context.Context, userID, language string, limit int) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	CreateProduct(ctx context.Context, req model.CreateProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, req model.UpdateProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) (bool, error)

	ListCategories(ctx context.Context) ([]model.Category, error)
	UpsertCategories(ctx context.Context, batch []model.CategoryInput) (int, error)
	TopCategories(ctx context.Context, limit int) ([]model.CategoryWithCount, error)

	SearchDevelopers(ctx context.Context, query string, limit int) ([]model.Developer, error)
	TopDevelopers(ctx context.Context, limit int) ([]model.DeveloperWithFollowers, error)
	RecentDevelopers(ctx context.Context, limit int) ([]model.DeveloperWithFollowers, error)
	DeveloperPopularityLastMonth(ctx context.Context, limit int) ([]model.DeveloperPopularity, error)

	FollowDeveloper(ctx context.Context, email, userID string) error
	UnfollowDeveloper(ctx context.Context, email, userID string) error
	LikeProduct(ctx context.Context, productID, userID string) error
	UnlikeProduct(ctx context.Context, productID, userID string) error
	FavoriteProduct(ctx context.Context, productID, userID string) error
	UnfavoriteProduct(ctx context.Context, productID, userID string) error

	CountProducts(ctx context.Context) (int64, error)
	Close()
}

// Store is the data access facade handed to callers.
type Store struct {
	backend Backend
	log     *slog.Logger
}

// Open selects and constructs the backend from the configuration. The
// relational backend takes priority when both are configured; when
// neither is configured Open fails, which callers treat as fatal.
func Open(ctx context.Context, cfg config.Config, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}

	switch {
	case cfg.DatabaseURL != "":
		backend, err := postgres.Open(ctx, cfg.DatabaseURL, cfg.WidenApproved())
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres backend: %w", err)
		}
		log.Info("store: using postgres backend", "widen_approved", cfg.WidenApproved())
		return &Store{backend: backend, log: log}, nil

	case cfg.RestURL != "" && cfg.RestServiceKey != "":
		backend := rest.New(cfg.RestURL, cfg.RestServiceKey, cfg.WidenApproved())
		log.Info("store: using rest backend", "url", cfg.RestURL, "widen_approved", cfg.WidenApproved())
		return &Store{backend: backend, log: log}, nil

	default:
		return nil, fmt.Errorf("store: missing configuration: set DATABASE_URL or REST_URL + REST_SERVICE_KEY")
	}
}

// NewWithBackend wires an explicit backend, used by tests and the
// seeding command.
func NewWithBackend(backend Backend, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{backend: backend, log: log}
}

// Close releases backend resources.
func (s *Store) Close() {
	s.backend.Close()
}

// ListProducts lists products newest first. No matches is an empty
// slice, never an error. Limit and offset are passed through unclamped;
// the HTTP layer clamps before calling.
func (s *Store) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	return s.backend.ListProducts(ctx, filter)
}

// ListFavoriteProducts lists products the user favorited, newest
// favorite first, optionally filtered by language. The limit is clamped
// into [1,200]. The REST backend has no implementation and returns
// empty.
func (s *Store) ListFavoriteProducts(ctx context.Context, userID, language string, limit int) ([]model.Product, error) {
	return s.backend.ListFavoriteProducts(ctx, userID, language, clamp(limit, 1, 200))
}

// GetProduct fetches one product by id. Not found is (nil, nil).
func (s *Store) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	return s.backend.GetProduct(ctx, id)
}

// CreateProduct sanitizes the submission and inserts it with status
// forced to pending. On the relational path the maker's developer row
// is upserted as part of the same logical operation.
func (s *Store) CreateProduct(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
	sanitize.CreateProductRequest(&req)
	return s.backend.CreateProduct(ctx, req)
}

// UpdateProduct sanitizes the present fields and updates only those,
// bumping updated_at. An all-absent partial short-circuits to a plain
// fetch and does not bump updated_at.
func (s *Store) UpdateProduct(ctx context.Context, id string, req model.UpdateProductRequest) (*model.Product, error) {
	sanitize.UpdateProductRequest(&req)
	if req.Empty() {
		return s.backend.GetProduct(ctx, id)
	}
	return s.backend.UpdateProduct(ctx, id, req)
}

// DeleteProduct removes a product and reports whether a row was
// actually deleted. Deleting a missing product is not an error.
func (s *Store) DeleteProduct(ctx context.Context, id string) (bool, error) {
	return s.backend.DeleteProduct(ctx, id)
}

// ListCategories returns all categories.
func (s *Store) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.backend.ListCategories(ctx)
}

// UpsertCategories inserts or updates categories keyed by id and
// returns how many rows were written. An empty batch is a no-op.
func (s *Store) UpsertCategories(ctx context.Context, batch []model.CategoryInput) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}
	sanitize.Categories(batch)
	return s.backend.UpsertCategories(ctx, batch)
}

// TopCategories ranks categories by product count, count descending
// with id ascending as tie-break. Limit clamped into [1,50].
func (s *Store) TopCategories(ctx context.Context, limit int) ([]model.CategoryWithCount, error) {
	return s.backend.TopCategories(ctx, clamp(limit, 1, 50))
}

// SearchDevelopers matches name, email, and website case-insensitively,
// ordered by name. Limit clamped into [1,50]. REST backend returns
// empty.
func (s *Store) SearchDevelopers(ctx context.Context, query string, limit int) ([]model.Developer, error) {
	return s.backend.SearchDevelopers(ctx, sanitize.String(query), clamp(limit, 1, 50))
}

// TopDevelopers ranks developers by follower count descending, name
// ascending. Limit clamped into [1,50].
func (s *Store) TopDevelopers(ctx context.Context, limit int) ([]model.DeveloperWithFollowers, error) {
	return s.backend.TopDevelopers(ctx, clamp(limit, 1, 50))
}

// RecentDevelopers lists developers newest first, name ascending as
// tie-break. Limit clamped into [1,50].
func (s *Store) RecentDevelopers(ctx context.Context, limit int) ([]model.DeveloperWithFollowers, error) {
	return s.backend.RecentDevelopers(ctx, clamp(limit, 1, 50))
}

// DeveloperPopularityLastMonth ranks developers by likes plus favorites
// received on their products during the previous calendar month. Limit
// clamped into [1,50].
func (s *Store) DeveloperPopularityLastMonth(ctx context.Context, limit int) ([]model.DeveloperPopularity, error) {
	return s.backend.DeveloperPopularityLastMonth(ctx, clamp(limit, 1, 50))
}

// FollowDeveloper records a follow; following twice leaves one row.
func (s *Store) FollowDeveloper(ctx context.Context, email, userID string) error {
	return s.backend.FollowDeveloper(ctx, email, userID)
}

// UnfollowDeveloper removes a follow; removing a missing one succeeds.
func (s *Store) UnfollowDeveloper(ctx context.Context, email, userID string) error {
	return s.backend.UnfollowDeveloper(ctx, email, userID)
}

// LikeProduct records a like, idempotently.
func (s *Store) LikeProduct(ctx context.Context, productID, userID string) error {
	return s.backend.LikeProduct(ctx, productID, userID)
}

// UnlikeProduct removes a like if present.
func (s *Store) UnlikeProduct(ctx context.Context, productID, userID string) error {
	return s.backend.UnlikeProduct(ctx, productID, userID)
}

// FavoriteProduct records a favorite, idempotently.
func (s *Store) FavoriteProduct(ctx context.Context, productID, userID string) error {
	return s.backend.FavoriteProduct(ctx, productID, userID)
}

// UnfavoriteProduct removes a favorite if present.
func (s *Store) UnfavoriteProduct(ctx context.Context, productID, userID string) error {
	return s.backend.UnfavoriteProduct(ctx, productID, userID)
}

// CountProducts returns the total number of products, computed natively
// per backend.
func (s *Store) CountProducts(ctx context.Context) (int64, error) {
	return s.backend.CountProducts(ctx)
}

func clamp(n, min, max int) int {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
