package handler

import (
	"net/http"

	"github.com/ramysh/linkylink/pkg/adapters/handler"
	"github.com/ramysh/linkylink/pkg/adapters/session"
	"github.com/ramysh/linkylink/pkg/config"
	"github.com/ramysh/linkylink/pkg/gateway"
)

var mux http.Handler

func init() {
	cfg := config.Load()

	gw := gateway.New(cfg.APIBaseURL, &http.Client{})
	store := session.NewCookieStore(cfg.SessionSecret, cfg.AppEnv == "production")
	mux = handler.NewRouter(cfg, gw, store)
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
