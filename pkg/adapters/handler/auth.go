package handler

import (
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/ramysh/linkylink/pkg/core/domain"
	"github.com/ramysh/linkylink/pkg/gateway"
	"github.com/ramysh/linkylink/pkg/ports"
)

// Handler renders the console views and relays user actions to the remote
// API. Session state and the gateway are injected; nothing here is global.
type Handler struct {
	basePath string
	gw       ports.Gateway
	store    ports.SessionStore
	tmpl     map[string]*template.Template
	validate *validator.Validate
}

func NewHandler(basePath string, gw ports.Gateway, store ports.SessionStore) *Handler {
	return &Handler{
		basePath: basePath,
		gw:       gw,
		store:    store,
		tmpl:     parseTemplates(),
		validate: validator.New(),
	}
}

// forcedLogout handles a credential the server rejected: clear the session
// and send the browser to the login view. Reports whether the error was a
// 401 and therefore handled. The data layer never navigates; this is the
// single place that policy lives.
func (h *Handler) forcedLogout(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, gateway.ErrUnauthenticated) {
		return false
	}
	h.store.Logout(w)
	http.Redirect(w, r, h.basePath+"/login", http.StatusFound)
	return true
}

// Fallback handles unmatched paths: dashboard when signed in, login
// otherwise.
func (h *Handler) Fallback(w http.ResponseWriter, r *http.Request) {
	if h.store.Load(r) != nil {
		http.Redirect(w, r, h.basePath+"/dashboard", http.StatusFound)
		return
	}
	http.Redirect(w, r, h.basePath+"/login", http.StatusFound)
}

type loginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type registerForm struct {
	Username string `validate:"required,min=3,max=30"`
	Password string `validate:"required,min=6"`
	Confirm  string `validate:"required"`
}

// registerMessage maps the first failed validation to the message the form
// shows. The same bounds are enforced server-side; these checks just avoid a
// pointless network call.
func registerMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "Username":
			return "Username must be 3-30 characters"
		case "Password":
			return "Password must be at least 6 characters"
		}
	}
	return "All fields are required"
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login", loginPage{page: h.page("Sign in", nil)})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	form := loginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	data := loginPage{page: h.page("Sign in", nil), Username: form.Username}

	if err := h.validate.Struct(form); err != nil {
		data.Error = "Username and password are required"
		h.render(w, "login", data)
		return
	}

	result, err := h.gw.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		// A 401 here means wrong credentials, not a stale session; show
		// the server's message instead of bouncing through forcedLogout.
		data.Error = err.Error()
		h.render(w, "login", data)
		return
	}

	h.finishAuth(w, r, result, data.page, "login", func(p page) any {
		return loginPage{page: p, Username: form.Username}
	})
}

func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "register", registerPage{page: h.page("Register", nil)})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	form := registerForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
		Confirm:  r.PostFormValue("confirm"),
	}
	data := registerPage{page: h.page("Register", nil), Username: form.Username}

	// Pre-checks run before any network call.
	if form.Password != form.Confirm {
		data.Error = "Passwords do not match"
		h.render(w, "register", data)
		return
	}
	if err := h.validate.Struct(form); err != nil {
		data.Error = registerMessage(err)
		h.render(w, "register", data)
		return
	}

	result, err := h.gw.Register(r.Context(), form.Username, form.Password)
	if err != nil {
		data.Error = err.Error()
		h.render(w, "register", data)
		return
	}

	h.finishAuth(w, r, result, data.page, "register", func(p page) any {
		return registerPage{page: p, Username: form.Username}
	})
}

// finishAuth stores the fresh session and lands on the dashboard.
func (h *Handler) finishAuth(w http.ResponseWriter, r *http.Request, result *domain.AuthResult, p page, view string, rebuild func(page) any) {
	user := domain.SessionUser{Username: result.Username, Role: result.Role}
	if err := h.store.Login(w, result.Token, user); err != nil {
		log.Printf("store session: %v", err)
		p.Error = "something went wrong"
		h.render(w, view, rebuild(p))
		return
	}
	http.Redirect(w, r, h.basePath+"/dashboard", http.StatusFound)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.store.Logout(w)
	http.Redirect(w, r, h.basePath+"/login", http.StatusFound)
}
