package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mlindqvist/minauth/internal/auth"
	"github.com/mlindqvist/minauth/internal/config"
	"github.com/mlindqvist/minauth/internal/http/handlers"
	"github.com/mlindqvist/minauth/internal/http/respond"
	"github.com/mlindqvist/minauth/internal/logging"
	"github.com/mlindqvist/minauth/internal/middleware"
	"github.com/mlindqvist/minauth/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.UserStore, log *logging.Logger) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           newRouter(cfg, store, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return &Server{inner: httpServer}
}

func newRouter(cfg config.Config, store storage.UserStore, log *logging.Logger) http.Handler {
	hasher := auth.NewPasswordHasher(auth.DefaultCost)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	authHandler := handlers.NewAuthHandler(store, hasher, tokens)
	health := handlers.NewHealthHandler(time.Now())

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.TraceID(log))
	r.Use(middleware.RequestLogger)
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)
	r.Get("/health", health.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens))
		r.Get("/validate", authHandler.Validate)
	})

	// Unmatched paths and methods share one catch-all response.
	notFound := func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, http.StatusNotFound, "Route not found")
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
