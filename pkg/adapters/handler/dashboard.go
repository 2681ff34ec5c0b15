package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/ramysh/linkylink/pkg/core/domain"
)

// loadLinks fetches the two lists concurrently. Both are always fetched;
// which one shows is a display-only toggle.
func (h *Handler) loadLinks(ctx context.Context, credential string) (mine, all []domain.Link, err error) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var e error
		mine, e = h.gw.MyLinks(ctx, credential)
		return e
	})
	g.Go(func() error {
		var e error
		all, e = h.gw.AllLinks(ctx, credential)
		return e
	})
	err = g.Wait()
	return mine, all, err
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	form := linkFormState{}
	if keyword := domain.NormalizeKeyword(q.Get("edit")); keyword != "" {
		form = linkFormState{Show: true, Editing: true, Keyword: keyword}
	} else if q.Get("new") != "" {
		form.Show = true
	}
	h.renderDashboard(w, r, "", popFlash(w, r), form)
}

// renderDashboard reloads both lists in full and renders the view. Mutation
// handlers funnel back through here so every action is followed by a fresh
// fetch, never a local patch.
func (h *Handler) renderDashboard(w http.ResponseWriter, r *http.Request, errMsg, success string, form linkFormState) {
	sess := SessionFrom(r.Context())

	mine, all, err := h.loadLinks(r.Context(), sess.Credential)
	if err != nil {
		if h.forcedLogout(w, r, err) {
			return
		}
		if errMsg == "" {
			errMsg = err.Error()
		}
	}

	// Prefill the edit form from the fetched copy when nothing was
	// submitted yet.
	if form.Editing && form.URL == "" {
		for _, link := range all {
			if link.Keyword == form.Keyword {
				form.URL = link.URL
				form.Description = link.Description
				break
			}
		}
	}

	data := dashboardPage{
		page:     h.page("Dashboard", sess),
		MyLinks:  h.linkRows(mine, sess),
		AllLinks: h.linkRows(all, sess),
		Form:     form,
	}
	data.Error = errMsg
	data.Success = success
	h.render(w, "dashboard", data)
}

func (h *Handler) linkRows(links []domain.Link, sess *domain.Session) []linkRow {
	rows := make([]linkRow, 0, len(links))
	for _, link := range links {
		rows = append(rows, linkRow{
			Link:    link,
			CanEdit: link.EditableBy(sess.User.Username, sess.IsAdmin()),
		})
	}
	return rows
}

func (h *Handler) CreateLink(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	keyword := domain.NormalizeKeyword(r.PostFormValue("keyword"))
	linkURL := domain.NormalizeURL(r.PostFormValue("url"))
	description := strings.TrimSpace(r.PostFormValue("description"))
	form := linkFormState{Show: true, Keyword: keyword, URL: linkURL, Description: description}

	// Format checks run before any network call; uniqueness is the
	// server's to decide.
	if err := domain.ValidateKeyword(keyword); err != nil {
		h.renderDashboard(w, r, err.Error(), "", form)
		return
	}
	if linkURL == "" {
		h.renderDashboard(w, r, "A destination URL is required", "", form)
		return
	}

	sess := SessionFrom(r.Context())
	if _, err := h.gw.CreateLink(r.Context(), sess.Credential, keyword, linkURL, description); err != nil {
		if h.forcedLogout(w, r, err) {
			return
		}
		h.renderDashboard(w, r, err.Error(), "", form)
		return
	}

	setFlash(w, fmt.Sprintf("Created go/%s", keyword))
	http.Redirect(w, r, h.basePath+"/dashboard", http.StatusFound)
}

func (h *Handler) UpdateLink(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	keyword := chi.URLParam(r, "keyword")
	linkURL := domain.NormalizeURL(r.PostFormValue("url"))
	description := strings.TrimSpace(r.PostFormValue("description"))
	form := linkFormState{Show: true, Editing: true, Keyword: keyword, URL: linkURL, Description: description}

	if linkURL == "" {
		h.renderDashboard(w, r, "A destination URL is required", "", form)
		return
	}

	sess := SessionFrom(r.Context())
	if _, err := h.gw.UpdateLink(r.Context(), sess.Credential, keyword, linkURL, description); err != nil {
		if h.forcedLogout(w, r, err) {
			return
		}
		h.renderDashboard(w, r, err.Error(), "", form)
		return
	}

	setFlash(w, fmt.Sprintf("Updated go/%s", keyword))
	http.Redirect(w, r, h.basePath+"/dashboard", http.StatusFound)
}

func (h *Handler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	keyword := chi.URLParam(r, "keyword")

	sess := SessionFrom(r.Context())
	if err := h.gw.DeleteLink(r.Context(), sess.Credential, keyword); err != nil {
		if h.forcedLogout(w, r, err) {
			return
		}
		h.renderDashboard(w, r, err.Error(), "", linkFormState{})
		return
	}

	setFlash(w, fmt.Sprintf("Deleted go/%s", keyword))
	http.Redirect(w, r, h.basePath+"/dashboard", http.StatusFound)
}
