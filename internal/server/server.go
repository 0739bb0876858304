// Package server provides the HTTP API server.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sanixdarker/gqlpath/internal/app"
	"github.com/sanixdarker/gqlpath/internal/schemacache"
	"github.com/sanixdarker/gqlpath/internal/server/handlers"
	servermw "github.com/sanixdarker/gqlpath/internal/server/middleware"
)

// Server represents the HTTP server.
type Server struct {
	app     *app.App
	server  *http.Server
	router  *chi.Mux
	limiter *servermw.RateLimiter
	schemas *schemacache.Cache
}

const (
	schemaCacheTTL  = 10 * time.Minute
	schemaCacheSize = 32
)

// New creates a new Server listening on the configured port.
func New(application *app.App) *Server {
	cfg := application.Config.Server
	s := &Server{
		app:     application,
		router:  chi.NewRouter(),
		schemas: schemacache.New(schemaCacheTTL, schemaCacheSize),
	}
	if cfg.RateLimit > 0 {
		s.limiter = servermw.NewRateLimiter(cfg.RateLimit, cfg.Burst)
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(servermw.SecurityHeaders)
	s.router.Use(servermw.Logger(s.app.Logger))
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	generate := handlers.NewGenerateHandler(s.app, s.schemas)
	runs := handlers.NewRunsHandler(s.app)

	s.router.Get("/healthz", handlers.Health)

	s.router.Route("/api", func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.limiter.Limit)
		}

		r.Post("/paths", generate.Paths)
		r.Post("/queries", generate.Queries)
		r.Post("/sdl", generate.SDL)
		r.Post("/check", generate.Check)

		r.Get("/runs", runs.List)
		r.Get("/runs/{id}", runs.Get)
		r.Get("/runs/{id}/export", runs.Export)
		r.Delete("/runs/{id}", runs.Delete)
	})
}

// Start starts the HTTP server. It returns http.ErrServerClosed after
// Shutdown.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	if s.limiter != nil {
		s.limiter.Stop()
	}
	s.schemas.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}
