package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wadjakorntonsri/go-linkmaker/pkg/adapters/auth"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/adapters/handler"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/adapters/qrcode"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/adapters/repository"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/config"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/core/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Repository
	repo, err := repository.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	// Initialize Service
	service := services.NewLinkService(repo, services.Options{
		CodeLength:  cfg.CodeLength,
		MaxAttempts: cfg.MaxCodeAttempts,
		QR:          qrcode.NewClient(cfg.QRBaseURL),
	})
	service.Load(ctx)

	// Initialize Router
	mux := handler.NewRouter(cfg, service, auth.NewGoogleProvider(cfg), repo)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
