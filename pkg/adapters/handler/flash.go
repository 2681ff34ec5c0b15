package handler

import (
	"net/http"
	"net/url"
)

// Success messages survive exactly one redirect via a short-lived cookie,
// then auto-dismiss client-side. Errors never travel this way; they render
// inline on the failing response.
const flashCookie = "linkylink_flash"

func setFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
	})
}

func popFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	message, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return message
}
