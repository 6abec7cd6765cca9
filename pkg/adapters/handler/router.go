package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/go-linkmaker/pkg/config"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/ports"
)

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, service ports.LinkService, provider ports.AuthProvider, profiles ports.ProfileStore) http.Handler {
	h := NewHTTPHandler(service, cfg.BaseURL)
	mw := NewMiddleware(cfg)
	authHandler := NewAuthHandler(cfg, provider, profiles)

	// write routes need a session only when AUTH_REQUIRED is set
	write := func(fn http.HandlerFunc) http.Handler {
		if cfg.AuthRequired {
			return mw.AuthMiddleware(fn)
		}
		return fn
	}

	mux := http.NewServeMux()

	// Public Routes
	mux.HandleFunc("GET /healthz", Health)
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /{code}", h.Redirect)
	mux.HandleFunc("GET /auth/google/login", authHandler.Login)
	mux.HandleFunc("GET /auth/google/callback", authHandler.Callback)
	mux.HandleFunc("GET /auth/logout", authHandler.Logout)

	// API
	mux.HandleFunc("GET /api/v1/me", authHandler.Me)
	mux.HandleFunc("GET /api/v1/links", h.List)
	mux.HandleFunc("GET /api/v1/links/{code}", h.Get)
	mux.HandleFunc("GET /api/v1/links/{code}/qr", h.QRCode)
	mux.HandleFunc("GET /api/v1/dashboard", h.Dashboard)
	mux.Handle("POST /api/v1/links", write(h.Shorten))
	mux.Handle("DELETE /api/v1/links/{code}", write(h.Delete))

	return Logging(mux)
}
