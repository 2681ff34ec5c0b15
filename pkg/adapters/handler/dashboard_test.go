package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramysh/linkylink/pkg/core/domain"
	"github.com/ramysh/linkylink/pkg/gateway"
)

func sampleLinks() (mine, all []domain.Link) {
	google := domain.Link{
		Keyword:       "google",
		URL:           "https://www.google.com",
		Description:   "Search",
		OwnerUsername: "alice",
		ClickCount:    3,
	}
	wiki := domain.Link{
		Keyword:       "wiki",
		URL:           "https://wikipedia.org",
		OwnerUsername: "bob",
	}
	return []domain.Link{google}, []domain.Link{google, wiki}
}

func TestDashboardRendersBothLists(t *testing.T) {
	mine, all := sampleLinks()
	gw := &fakeGateway{mine: mine, all: all}
	router := newTestRouter(gw, &fakeStore{sess: userSession("alice", domain.RoleUser)})

	rec := get(router, "/app/dashboard")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "go/google")
	assert.Contains(t, body, "go/wiki")
	assert.Contains(t, body, "Mine (1)")
	assert.Contains(t, body, "All (2)")
	// Both lists are fetched up front; showing one is a client-side toggle.
	assert.True(t, gw.called("MyLinks"))
	assert.True(t, gw.called("AllLinks"))
}

func TestDashboardOwnershipControls(t *testing.T) {
	mine, all := sampleLinks()
	gw := &fakeGateway{mine: mine, all: all}
	router := newTestRouter(gw, &fakeStore{sess: userSession("alice", domain.RoleUser)})

	body := get(router, "/app/dashboard").Body.String()

	// alice owns go/google but not go/wiki.
	assert.Contains(t, body, "/app/links/google/delete")
	assert.NotContains(t, body, "/app/links/wiki/delete")
	assert.NotContains(t, body, "?edit=wiki")
}

func TestDashboardAdminControlsEverything(t *testing.T) {
	mine, all := sampleLinks()
	gw := &fakeGateway{mine: mine, all: all}
	router := newTestRouter(gw, &fakeStore{sess: userSession("alice", domain.RoleAdmin)})

	body := get(router, "/app/dashboard").Body.String()

	assert.Contains(t, body, "/app/links/google/delete")
	assert.Contains(t, body, "/app/links/wiki/delete")
}

func TestDashboardEditPrefill(t *testing.T) {
	mine, all := sampleLinks()
	gw := &fakeGateway{mine: mine, all: all}
	router := newTestRouter(gw, &fakeStore{sess: userSession("alice", domain.RoleUser)})

	body := get(router, "/app/dashboard?edit=google").Body.String()

	assert.Contains(t, body, "Edit go/google")
	assert.Contains(t, body, `value="https://www.google.com"`)
	assert.Contains(t, body, `value="Search"`)
	assert.Contains(t, body, `action="/app/links/google"`)
}

func TestDashboardNewForm(t *testing.T) {
	gw := &fakeGateway{}
	router := newTestRouter(gw, &fakeStore{sess: userSession("alice", domain.RoleUser)})

	body := get(router, "/app/dashboard?new=1").Body.String()

	assert.Contains(t, body, "Create New Go Link")
	assert.Contains(t, body, `action="/app/links"`)
}

func TestCreateLink(t *testing.T) {
	gw := &fakeGateway{}
	router := newTestRouter(gw, &fakeStore{sess: userSession("alice", domain.RoleUser)})

	rec := postForm(router, "/app/links", url.Values{
		"keyword": {"  GoOgle  "},
		"url":     {"www.google.com"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/app/dashboard", rec.Header().Get("Location"))
	// Keyword lowercased and trimmed before the call.
	assert.Contains(t, gw.calls, "CreateLink:google")
	assert.Equal(t, "Created go/google", flashValue(rec))
}

func TestCreateLinkFormatChecks(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		wantMsg string
	}{
		{
			name:    "reserved keyword",
			form:    url.Values{"keyword": {"API"}, "url": {"https://x"}},
			wantMsg: "is a reserved keyword",
		},
		{
			name:    "bad characters",
			form:    url.Values{"keyword": {"my link"}, "url": {"https://x"}},
			wantMsg: "lowercase letters, numbers, and hyphens",
		},
		{
			name:    "missing url",
			form:    url.Values{"keyword": {"google"}},
			wantMsg: "A destination URL is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{}
			router := newTestRouter(gw, &fakeStore{sess: userSession("alice", domain.RoleUser)})

			rec := postForm(router, "/app/links", tt.form)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMsg)
			assert.False(t, gw.called("CreateLink"), "format failures must not reach the server")
		})
	}
}

func TestCreateLinkServerRejection(t *testing.T) {
	gw := &fakeGateway{mutateErr: &gateway.RequestError{
		Status:  http.StatusBadRequest,
		Message: "Keyword already exists: google",
	}}
	router := newTestRouter(gw, &fakeStore{sess: userSession("alice", domain.RoleUser)})

	rec := postForm(router, "/app/links", url.Values{
		"keyword": {"google"},
		"url":     {"https://www.google.com"},
	})

	// Re-rendered with the form still open and filled.
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Keyword already exists: google")
	assert.Contains(t, body, `value="google"`)
}

func TestUpdateLink(t *testing.T) {
	gw := &fakeGateway{}
	router := newTestRouter(gw, &fakeStore{sess: userSession("alice", domain.RoleUser)})

	rec := postForm(router, "/app/links/google", url.Values{
		"url": {"https://www.google.co.uk"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, gw.calls, "UpdateLink:google")
	assert.Equal(t, "Updated go/google", flashValue(rec))
}

func TestDeleteLink(t *testing.T) {
	gw := &fakeGateway{}
	router := newTestRouter(gw, &fakeStore{sess: userSession("alice", domain.RoleUser)})

	rec := postForm(router, "/app/links/google/delete", nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, gw.calls, "DeleteLink:google")
	assert.Equal(t, "Deleted go/google", flashValue(rec))
}

func TestStaleCredentialForcesLogout(t *testing.T) {
	gw := &fakeGateway{mutateErr: &gateway.RequestError{
		Status:  http.StatusUnauthorized,
		Message: "token expired",
	}}
	store := &fakeStore{sess: userSession("alice", domain.RoleUser)}
	router := newTestRouter(gw, store)

	rec := postForm(router, "/app/links/google/delete", nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/app/login", rec.Header().Get("Location"))
	assert.Equal(t, 1, store.logouts, "session must be cleared exactly once")
}

func TestFlashShownOnce(t *testing.T) {
	gw := &fakeGateway{}
	router := newTestRouter(gw, &fakeStore{sess: userSession("alice", domain.RoleUser)})

	req := httptest.NewRequest(http.MethodGet, "/app/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: flashCookie, Value: url.QueryEscape("Created go/google")})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Contains(t, rec.Body.String(), "Created go/google")

	// The response clears the cookie so a reload shows nothing.
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}
