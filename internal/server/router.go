package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

// Handler returns the router with middleware and routes applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	setupCommonMiddleware(r)
	s.setupRoutes(r)

	return r
}

func setupCommonMiddleware(r *chi.Mux) {
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.CleanPath)
}

func (s *Server) setupRoutes(r chi.Router) {
	r.Get("/healthz", s.handleHealth)

	// API routes are never behind basic auth.
	r.Route("/api", func(r chi.Router) {
		r.Post("/generate-brief", s.handleGenerateBrief)
		r.Post("/briefs", s.handleCreateBrief)
		r.Get("/briefs", s.handleGetBrief)
		r.Get("/briefs/{id}", s.handleGetBrief)
	})

	r.Group(func(r chi.Router) {
		if s.auth.Enabled() {
			r.Use(basicAuth(s.auth))
		}
		r.Get("/", s.handleIndex)
		r.Get("/s/{id}", s.handleShareView)
	})
}
