package ports

import (
	"context"
	"net/http"

	"github.com/ramysh/linkylink/pkg/core/domain"
)

// Gateway is the client surface of the remote go-links API. Every call takes
// the bearer credential explicitly; an empty credential sends no
// Authorization header. Implementations report a rejected credential via an
// error matching gateway.ErrUnauthenticated and leave navigation to the
// caller.
type Gateway interface {
	// Authentication
	Login(ctx context.Context, username, password string) (*domain.AuthResult, error)
	Register(ctx context.Context, username, password string) (*domain.AuthResult, error)

	// Link self-service
	MyLinks(ctx context.Context, credential string) ([]domain.Link, error)
	AllLinks(ctx context.Context, credential string) ([]domain.Link, error)
	CreateLink(ctx context.Context, credential, keyword, url, description string) (*domain.Link, error)
	UpdateLink(ctx context.Context, credential, keyword, url, description string) (*domain.Link, error)
	DeleteLink(ctx context.Context, credential, keyword string) error

	// Admin
	Users(ctx context.Context, credential string) ([]domain.UserAccount, error)
	UpdateUserRole(ctx context.Context, credential, username string, role domain.Role) (*domain.UserAccount, error)
	DeleteUser(ctx context.Context, credential, username string) error
	AdminLinks(ctx context.Context, credential string) ([]domain.Link, error)
	AdminDeleteLink(ctx context.Context, credential, keyword string) error
}

// SessionStore persists the browser session across reloads. Login writes
// both the credential and the user entry, Logout clears both, and Load
// rehydrates; absent or corrupt storage yields a nil session with no error.
type SessionStore interface {
	Load(r *http.Request) *domain.Session
	Login(w http.ResponseWriter, credential string, user domain.SessionUser) error
	Logout(w http.ResponseWriter)
}
