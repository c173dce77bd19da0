package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterStaticRoutes serves dir under /web/ and redirects / there.
func RegisterStaticRoutes(r chi.Router, dir string) {
	fs := http.StripPrefix("/web/", http.FileServer(http.Dir(dir)))
	r.Handle("/web/*", fs)
	r.Get("/web", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/web/", http.StatusFound)
	})
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/web/", http.StatusFound)
	})
}
