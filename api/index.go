package handler

import (
	"context"
	"net/http"

	"github.com/wadjakorntonsri/go-linkmaker/pkg/adapters/auth"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/adapters/handler"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/adapters/qrcode"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/adapters/repository"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/config"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/core/services"
)

var mux http.Handler

func init() {
	cfg := config.Load()
	ctx := context.Background()

	// Note: On Vercel, db.sqlite is ephemeral unless DATABASE_URL points at Turso or Redis
	repo, err := repository.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}

	service := services.NewLinkService(repo, services.Options{
		CodeLength:  cfg.CodeLength,
		MaxAttempts: cfg.MaxCodeAttempts,
		QR:          qrcode.NewClient(cfg.QRBaseURL),
	})
	service.Load(ctx)
	mux = handler.NewRouter(cfg, service, auth.NewGoogleProvider(cfg), repo)
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
