package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ramysh/linkylink/pkg/config"
	"github.com/ramysh/linkylink/pkg/ports"
)

// NewRouter creates and configures the main console router. All views live
// under cfg.BasePath; the root redirects there, and unmatched paths fall
// back based on session presence.
func NewRouter(cfg *config.Config, gw ports.Gateway, store ports.SessionStore) http.Handler {
	h := NewHandler(cfg.BasePath, gw, store)
	mw := NewMiddleware(store, cfg.BasePath)

	r := chi.NewRouter()
	r.Use(Metrics)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		res := map[string]string{
			"message": "ok",
		}
		_ = json.NewEncoder(w).Encode(&res)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, cfg.BasePath+"/", http.StatusFound)
	})

	r.Route(cfg.BasePath, func(r chi.Router) {
		r.Use(mw.WithSession)

		// Public views, pushed away once authenticated
		r.Group(func(r chi.Router) {
			r.Use(mw.RedirectAuthenticated)
			r.Get("/login", h.LoginPage)
			r.Post("/login", h.Login)
			r.Get("/register", h.RegisterPage)
			r.Post("/register", h.Register)
		})

		// Protected views
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireUser)
			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, cfg.BasePath+"/dashboard", http.StatusFound)
			})
			r.Get("/dashboard", h.Dashboard)
			r.Post("/logout", h.Logout)
			r.Post("/links", h.CreateLink)
			r.Post("/links/{keyword}", h.UpdateLink)
			r.Post("/links/{keyword}/delete", h.DeleteLink)
		})

		// Admin-only views
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireUser, mw.RequireAdmin)
			r.Get("/admin", h.Admin)
			r.Post("/admin/users/{username}/role", h.UpdateUserRole)
			r.Post("/admin/users/{username}/delete", h.DeleteUser)
			r.Post("/admin/links/{keyword}/delete", h.AdminDeleteLink)
		})
	})

	r.NotFound(h.Fallback)

	return r
}
