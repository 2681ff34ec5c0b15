package main

import (
	"log"
	"net/http"
	"time"

	"github.com/ramysh/linkylink/pkg/adapters/handler"
	"github.com/ramysh/linkylink/pkg/adapters/session"
	"github.com/ramysh/linkylink/pkg/config"
	"github.com/ramysh/linkylink/pkg/gateway"
)

func main() {
	cfg := config.Load()

	// Initialize Gateway Client
	gw := gateway.New(cfg.APIBaseURL, &http.Client{})

	// Initialize Session Store
	store := session.NewCookieStore(cfg.SessionSecret, cfg.AppEnv == "production")

	// Initialize Router
	mux := handler.NewRouter(cfg, gw, store)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	log.Printf("Console starting on port %s (API at %s)", cfg.Port, cfg.APIBaseURL)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
