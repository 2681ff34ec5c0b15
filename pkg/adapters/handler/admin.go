package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/ramysh/linkylink/pkg/core/domain"
)

func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	h.renderAdmin(w, r, "", popFlash(w, r))
}

// renderAdmin reloads both backing lists in full, same reload-after-mutation
// contract as the dashboard.
func (h *Handler) renderAdmin(w http.ResponseWriter, r *http.Request, errMsg, success string) {
	sess := SessionFrom(r.Context())

	var users []domain.UserAccount
	var links []domain.Link
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var e error
		users, e = h.gw.Users(ctx, sess.Credential)
		return e
	})
	g.Go(func() error {
		var e error
		links, e = h.gw.AdminLinks(ctx, sess.Credential)
		return e
	})
	if err := g.Wait(); err != nil {
		if h.forcedLogout(w, r, err) {
			return
		}
		if errMsg == "" {
			errMsg = err.Error()
		}
	}

	rows := make([]userRow, 0, len(users))
	for _, user := range users {
		rows = append(rows, userRow{
			UserAccount: user,
			IsSelf:      user.Username == sess.User.Username,
		})
	}

	data := adminPage{
		page:  h.page("Admin", sess),
		Users: rows,
		Links: links,
	}
	data.Error = errMsg
	data.Success = success
	h.render(w, "admin", data)
}

func (h *Handler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	username := chi.URLParam(r, "username")
	role := domain.Role(r.PostFormValue("role"))

	if !role.Valid() {
		h.renderAdmin(w, r, "Role must be USER or ADMIN", "")
		return
	}

	sess := SessionFrom(r.Context())
	if _, err := h.gw.UpdateUserRole(r.Context(), sess.Credential, username, role); err != nil {
		if h.forcedLogout(w, r, err) {
			return
		}
		h.renderAdmin(w, r, err.Error(), "")
		return
	}

	setFlash(w, fmt.Sprintf("Updated %s's role to %s", username, role))
	http.Redirect(w, r, h.basePath+"/admin", http.StatusFound)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	sess := SessionFrom(r.Context())

	// Self-deletion is rejected here, before any network call.
	if username == sess.User.Username {
		h.renderAdmin(w, r, "You can't delete yourself!", "")
		return
	}

	if err := h.gw.DeleteUser(r.Context(), sess.Credential, username); err != nil {
		if h.forcedLogout(w, r, err) {
			return
		}
		h.renderAdmin(w, r, err.Error(), "")
		return
	}

	setFlash(w, fmt.Sprintf("Deleted user %q", username))
	http.Redirect(w, r, h.basePath+"/admin", http.StatusFound)
}

func (h *Handler) AdminDeleteLink(w http.ResponseWriter, r *http.Request) {
	keyword := chi.URLParam(r, "keyword")
	sess := SessionFrom(r.Context())

	if err := h.gw.AdminDeleteLink(r.Context(), sess.Credential, keyword); err != nil {
		if h.forcedLogout(w, r, err) {
			return
		}
		h.renderAdmin(w, r, err.Error(), "")
		return
	}

	setFlash(w, fmt.Sprintf("Deleted go/%s", keyword))
	http.Redirect(w, r, h.basePath+"/admin", http.StatusFound)
}
