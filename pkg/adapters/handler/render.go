package handler

import (
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/ramysh/linkylink/pkg/core/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"login", "register", "dashboard", "admin"}

// parseTemplates pairs each view with the shared layout. Panics on a broken
// template, which only happens at build time.
func parseTemplates() map[string]*template.Template {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		pages[name] = template.Must(template.ParseFS(templateFS,
			"templates/layout.html", "templates/"+name+".html"))
	}
	return pages
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl[name].ExecuteTemplate(w, "layout", data); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}

// page carries what every view needs: the nav bar state and the inline
// messages. Errors persist until the next action; Success is flash-backed
// and auto-dismissed client-side.
type page struct {
	Title    string
	BasePath string
	Session  *domain.Session
	Error    string
	Success  string
}

func (h *Handler) page(title string, sess *domain.Session) page {
	return page{Title: title, BasePath: h.basePath, Session: sess}
}

type loginPage struct {
	page
	Username string
}

type registerPage struct {
	page
	Username string
}

// linkRow decorates a link with whether the viewing user may edit it, so the
// template stays free of role logic.
type linkRow struct {
	domain.Link
	CanEdit bool
}

// linkFormState drives the create/edit card. Editing disables the keyword
// field; only url and description are submitted then.
type linkFormState struct {
	Show        bool
	Editing     bool
	Keyword     string
	URL         string
	Description string
}

type dashboardPage struct {
	page
	MyLinks  []linkRow
	AllLinks []linkRow
	Form     linkFormState
}

type userRow struct {
	domain.UserAccount
	IsSelf bool
}

type adminPage struct {
	page
	Users []userRow
	Links []domain.Link
}
