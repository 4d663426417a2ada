package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/openhunt/openhunt/pkg/model"
	"github.com/openhunt/openhunt/pkg/seed"
	"github.com/openhunt/openhunt/pkg/store"
)

// Listing limits are clamped here, before reaching the facade; the
// facade passes list limits through unclamped.
const (
	defaultPageSize = 50
	maxPageSize     = 100
)

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := clampInt(intParam(q.Get("limit"), defaultPageSize), 1, maxPageSize)
	filter := model.ProductFilter{
		Category: q.Get("category"),
		Tags:     q.Get("tags"),
		Language: q.Get("language"),
		Status:   q.Get("status"),
		Search:   q.Get("search"),
		Limit:    &limit,
	}
	if off := q.Get("offset"); off != "" {
		offset := clampInt(intParam(off, 0), 0, 1<<30)
		filter.Offset = &offset
	}

	products, err := s.store.ListProducts(r.Context(), filter)
	s.respondList(w, r, products, []model.Product{}, err)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := s.store.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if product == nil {
		notFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Name == "" || req.MakerEmail == "" {
		badRequest(w, "name and maker_email are required")
		return
	}

	product, err := s.store.CreateProduct(r.Context(), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	product, err := s.store.UpdateProduct(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if product == nil {
		notFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.store.DeleteProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

func (s *Server) handleCountProducts(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.CountProducts(r.Context())
	if err != nil {
		if store.Unavailable(err) {
			s.log.Warn("backend unavailable, serving degraded count", "error", err)
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"count":   0,
				"message": message(lang(r), "backend_unavailable"),
			})
			return
		}
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID := q.Get("user_id")
	if userID == "" {
		badRequest(w, "user_id is required")
		return
	}
	limit := intParam(q.Get("limit"), defaultPageSize)

	products, err := s.store.ListFavoriteProducts(r.Context(), userID, q.Get("language"), limit)
	s.respondList(w, r, products, []model.Product{}, err)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.ListCategories(r.Context())
	s.respondList(w, r, categories, []model.Category{}, err)
}

func (s *Server) handleUpsertCategories(w http.ResponseWriter, r *http.Request) {
	var batch []model.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	written, err := s.store.UpsertCategories(r.Context(), batch)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"written": written})
}

func (s *Server) handleTopCategories(w http.ResponseWriter, r *http.Request) {
	ranked, err := s.store.TopCategories(r.Context(), intParam(r.URL.Query().Get("limit"), 10))
	s.respondList(w, r, ranked, []model.CategoryWithCount{}, err)
}

func (s *Server) handleSearchDevelopers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	developers, err := s.store.SearchDevelopers(r.Context(), q.Get("q"), intParam(q.Get("limit"), 20))
	s.respondList(w, r, developers, []model.Developer{}, err)
}

func (s *Server) handleTopDevelopers(w http.ResponseWriter, r *http.Request) {
	developers, err := s.store.TopDevelopers(r.Context(), intParam(r.URL.Query().Get("limit"), 10))
	s.respondList(w, r, developers, []model.DeveloperWithFollowers{}, err)
}

func (s *Server) handleRecentDevelopers(w http.ResponseWriter, r *http.Request) {
	developers, err := s.store.RecentDevelopers(r.Context(), intParam(r.URL.Query().Get("limit"), 10))
	s.respondList(w, r, developers, []model.DeveloperWithFollowers{}, err)
}

func (s *Server) handlePopularDevelopers(w http.ResponseWriter, r *http.Request) {
	ranked, err := s.store.DeveloperPopularityLastMonth(r.Context(), intParam(r.URL.Query().Get("limit"), 10))
	s.respondList(w, r, ranked, []model.DeveloperPopularity{}, err)
}

func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	s.engage(w, r, func(userID string) error {
		return s.store.FollowDeveloper(r.Context(), chi.URLParam(r, "email"), userID)
	})
}

func (s *Server) handleUnfollow(w http.ResponseWriter, r *http.Request) {
	s.engage(w, r, func(userID string) error {
		return s.store.UnfollowDeveloper(r.Context(), chi.URLParam(r, "email"), userID)
	})
}

func (s *Server) handleLike(w http.ResponseWriter, r *http.Request) {
	s.engage(w, r, func(userID string) error {
		return s.store.LikeProduct(r.Context(), chi.URLParam(r, "id"), userID)
	})
}

func (s *Server) handleUnlike(w http.ResponseWriter, r *http.Request) {
	s.engage(w, r, func(userID string) error {
		return s.store.UnlikeProduct(r.Context(), chi.URLParam(r, "id"), userID)
	})
}

func (s *Server) handleFavorite(w http.ResponseWriter, r *http.Request) {
	s.engage(w, r, func(userID string) error {
		return s.store.FavoriteProduct(r.Context(), chi.URLParam(r, "id"), userID)
	})
}

func (s *Server) handleUnfavorite(w http.ResponseWriter, r *http.Request) {
	s.engage(w, r, func(userID string) error {
		return s.store.UnfavoriteProduct(r.Context(), chi.URLParam(r, "id"), userID)
	})
}

// engage runs an engagement mutation. Write failures are always hard
// errors; the degraded soft path only exists for reads.
func (s *Server) engage(w http.ResponseWriter, r *http.Request, fn func(userID string) error) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		badRequest(w, "X-User-ID header is required")
		return
	}
	if err := fn(userID); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleDevSeed loads development data. Guarded by the dev seed token;
// disabled entirely when no token is configured.
func (s *Server) handleDevSeed(w http.ResponseWriter, r *http.Request) {
	token := s.cfg.DevSeedToken
	if token == "" || r.Header.Get("Authorization") != "Bearer "+token {
		writeJSON(w, http.StatusForbidden, map[string]string{
			"error": message(lang(r), "forbidden"),
		})
		return
	}

	cats, products, err := seed.Run(r.Context(), s.store)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"categories": cats, "products": products})
}

func intParam(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func clampInt(n, min, max int) int {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
