package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/ramysh/linkylink/pkg/config"
	"github.com/ramysh/linkylink/pkg/core/domain"
	"github.com/ramysh/linkylink/pkg/ports"
)

// fakeGateway serves canned data and records every call so tests can assert
// which operations ran and which were cut off before the network.
type fakeGateway struct {
	loginResult    *fakeAuth
	registerResult *fakeAuth
	mine           []domain.Link
	all            []domain.Link
	users          []domain.UserAccount
	adminLinks     []domain.Link

	mutateErr error
	calls     []string
}

type fakeAuth struct {
	result *domain.AuthResult
	err    error
}

func (g *fakeGateway) record(format string, args ...any) {
	g.calls = append(g.calls, fmt.Sprintf(format, args...))
}

func (g *fakeGateway) called(op string) bool {
	for _, call := range g.calls {
		if strings.HasPrefix(call, op) {
			return true
		}
	}
	return false
}

func (g *fakeGateway) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	g.record("Login:%s", username)
	return g.loginResult.result, g.loginResult.err
}

func (g *fakeGateway) Register(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	g.record("Register:%s", username)
	return g.registerResult.result, g.registerResult.err
}

func (g *fakeGateway) MyLinks(ctx context.Context, credential string) ([]domain.Link, error) {
	g.record("MyLinks")
	return g.mine, nil
}

func (g *fakeGateway) AllLinks(ctx context.Context, credential string) ([]domain.Link, error) {
	g.record("AllLinks")
	return g.all, nil
}

func (g *fakeGateway) CreateLink(ctx context.Context, credential, keyword, url, description string) (*domain.Link, error) {
	g.record("CreateLink:%s", keyword)
	if g.mutateErr != nil {
		return nil, g.mutateErr
	}
	return &domain.Link{Keyword: keyword, URL: url, Description: description}, nil
}

func (g *fakeGateway) UpdateLink(ctx context.Context, credential, keyword, url, description string) (*domain.Link, error) {
	g.record("UpdateLink:%s", keyword)
	if g.mutateErr != nil {
		return nil, g.mutateErr
	}
	return &domain.Link{Keyword: keyword, URL: url, Description: description}, nil
}

func (g *fakeGateway) DeleteLink(ctx context.Context, credential, keyword string) error {
	g.record("DeleteLink:%s", keyword)
	return g.mutateErr
}

func (g *fakeGateway) Users(ctx context.Context, credential string) ([]domain.UserAccount, error) {
	g.record("Users")
	return g.users, nil
}

func (g *fakeGateway) UpdateUserRole(ctx context.Context, credential, username string, role domain.Role) (*domain.UserAccount, error) {
	g.record("UpdateUserRole:%s:%s", username, role)
	if g.mutateErr != nil {
		return nil, g.mutateErr
	}
	return &domain.UserAccount{Username: username, Role: role}, nil
}

func (g *fakeGateway) DeleteUser(ctx context.Context, credential, username string) error {
	g.record("DeleteUser:%s", username)
	return g.mutateErr
}

func (g *fakeGateway) AdminLinks(ctx context.Context, credential string) ([]domain.Link, error) {
	g.record("AdminLinks")
	return g.adminLinks, nil
}

func (g *fakeGateway) AdminDeleteLink(ctx context.Context, credential, keyword string) error {
	g.record("AdminDeleteLink:%s", keyword)
	return g.mutateErr
}

// fakeStore hands back a fixed session and counts login/logout calls.
type fakeStore struct {
	sess    *domain.Session
	logins  []domain.SessionUser
	logouts int
}

func (s *fakeStore) Load(r *http.Request) *domain.Session { return s.sess }

func (s *fakeStore) Login(w http.ResponseWriter, credential string, user domain.SessionUser) error {
	s.logins = append(s.logins, user)
	return nil
}

func (s *fakeStore) Logout(w http.ResponseWriter) { s.logouts++ }

func userSession(username string, role domain.Role) *domain.Session {
	return &domain.Session{
		User:       domain.SessionUser{Username: username, Role: role},
		Credential: "tok-" + username,
	}
}

func newTestRouter(gw ports.Gateway, store ports.SessionStore) http.Handler {
	cfg := &config.Config{
		Port:          "3000",
		APIBaseURL:    "http://upstream.invalid",
		BasePath:      "/app",
		SessionSecret: "test-secret",
		AppEnv:        "test",
	}
	return NewRouter(cfg, gw, store)
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func postForm(router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func flashValue(rec *httptest.ResponseRecorder) string {
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookie && c.MaxAge >= 0 {
			v, _ := url.QueryUnescape(c.Value)
			return v
		}
	}
	return ""
}
