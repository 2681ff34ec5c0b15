package handler

import (
	"context"
	"net/http"

	"github.com/ramysh/linkylink/pkg/core/domain"
	"github.com/ramysh/linkylink/pkg/ports"
)

type ctxKey string

const sessionKey ctxKey = "console_session"

// Middleware gates views on session state. The rules are pure and
// re-evaluated on every request; nothing is cached between navigations.
type Middleware struct {
	store    ports.SessionStore
	basePath string
}

func NewMiddleware(store ports.SessionStore, basePath string) *Middleware {
	return &Middleware{store: store, basePath: basePath}
}

// WithSession rehydrates the session (possibly nil) and stashes it in the
// request context for guards and handlers downstream.
func (m *Middleware) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.store.Load(r)
		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFrom returns the session placed by WithSession, or nil.
func SessionFrom(ctx context.Context) *domain.Session {
	sess, _ := ctx.Value(sessionKey).(*domain.Session)
	return sess
}

// RequireUser sends anonymous visitors to the login view.
func (m *Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFrom(r.Context()) == nil {
			http.Redirect(w, r, m.basePath+"/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin sends authenticated non-admins to the dashboard. Runs after
// RequireUser, so the session is known to exist.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !SessionFrom(r.Context()).IsAdmin() {
			http.Redirect(w, r, m.basePath+"/dashboard", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RedirectAuthenticated keeps signed-in users off the login and register
// views.
func (m *Middleware) RedirectAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFrom(r.Context()) != nil {
			http.Redirect(w, r, m.basePath+"/dashboard", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
