package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vbonduro/ecoleta/internal/assets/local"
	"github.com/vbonduro/ecoleta/internal/catalog"
	"github.com/vbonduro/ecoleta/internal/db"
	"github.com/vbonduro/ecoleta/internal/service"
	"github.com/vbonduro/ecoleta/internal/store"
	"github.com/vbonduro/ecoleta/internal/web"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the discovery API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(false); err != nil {
				return err
			}
			cfg, logger := a.cfg, a.logger

			database, err := db.Open(cfg.DBPath)
			if err != nil {
				logger.Error("failed to open database", "error", err)
				return err
			}
			defer func() {
				if err := database.Close(); err != nil {
					logger.Error("failed to close database", "error", err)
				}
			}()

			uploads, err := local.NewLocalAssetStore(cfg.UploadsPath)
			if err != nil {
				logger.Error("failed to initialize uploads store", "error", err)
				return err
			}

			itemStore := store.NewItemStore(database)
			if err := catalog.NewSeeder(itemStore, uploads, logger).EnsureImages(cmd.Context(), catalog.Default()); err != nil {
				logger.Error("failed to install item images", "error", err)
				return err
			}

			discovery := service.NewDiscoveryService(itemStore, store.NewPointStore(database), cfg.PublicURL, logger)
			writer := service.NewRegistrationWriter(store.NewTxManager(database), cfg.PlaceholderImage, logger)
			server := web.NewServer(discovery, writer, uploads, database, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := server.ListenAndServe(ctx, cfg.ListenAddr); err != nil {
				logger.Error("server error", "error", err)
				return err
			}
			return nil
		},
	}
}
