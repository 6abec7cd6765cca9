package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/adapters/qrcode"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/adapters/repository"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/config"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/core/services"
)

var (
	cfg     *config.Config
	repo    repository.Store
	service *services.LinkService
	qr      *qrcode.Client
)

var rootCmd = &cobra.Command{
	Use:           "linkmaker",
	Short:         "Shorten links and manage the link history from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if repo != nil {
			_ = repo.Close()
		}

		var err error
		repo, err = repository.Open(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		qr = qrcode.NewClient(cfg.QRBaseURL)
		service = services.NewLinkService(repo, services.Options{
			CodeLength:  cfg.CodeLength,
			MaxAttempts: cfg.MaxCodeAttempts,
			QR:          qr,
		})
		service.Load(cmd.Context())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if repo != nil {
			_ = repo.Close()
			repo = nil
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
