package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the game API and, when webDir is set, the static client.
func NewRouter(h *Handler, webDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api/games", func(r chi.Router) {
		r.Post("/", h.handleNewGame)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleState)
			r.Post("/play", h.handlePlay)
			r.Post("/bot", h.handleBotPlay)
			r.Get("/ws", h.handleStream)
		})
	})

	if webDir != "" {
		RegisterStaticRoutes(r, webDir)
	}
	return r
}
