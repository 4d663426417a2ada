// Package server is the HTTP surface over the data access facade. It
// carries no business logic: handlers decode parameters, clamp
// pagination, call the store, and translate failures through the
// degradation policy into either a soft empty payload or a hard 500.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/openhunt/openhunt/pkg/config"
	"github.com/openhunt/openhunt/pkg/store"
)

// requestTimeout bounds every store call; a timed-out backend is
// treated the same as an unavailable one.
const requestTimeout = 10 * time.Second

// Server wires the router, the store, and configuration.
type Server struct {
	store *store.Store
	cfg   config.Config
	log   *slog.Logger
}

// New builds a Server.
func New(st *store.Store, cfg config.Config, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{store: st, cfg: cfg, log: log}
}

// Router assembles the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.handleListProducts)
			r.Post("/", s.handleCreateProduct)
			r.Get("/count", s.handleCountProducts)
			r.Get("/{id}", s.handleGetProduct)
			r.Patch("/{id}", s.handleUpdateProduct)
			r.Delete("/{id}", s.handleDeleteProduct)
			r.Post("/{id}/like", s.handleLike)
			r.Delete("/{id}/like", s.handleUnlike)
			r.Post("/{id}/favorite", s.handleFavorite)
			r.Delete("/{id}/favorite", s.handleUnfavorite)
		})

		r.Get("/favorites", s.handleListFavorites)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.handleListCategories)
			r.Post("/", s.handleUpsertCategories)
			r.Get("/top", s.handleTopCategories)
		})

		r.Route("/developers", func(r chi.Router) {
			r.Get("/search", s.handleSearchDevelopers)
			r.Get("/top", s.handleTopDevelopers)
			r.Get("/recent", s.handleRecentDevelopers)
			r.Get("/popular", s.handlePopularDevelopers)
			r.Post("/{email}/follow", s.handleFollow)
			r.Delete("/{email}/follow", s.handleUnfollow)
		})

		r.Post("/dev/seed", s.handleDevSeed)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
