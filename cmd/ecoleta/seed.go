package main

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vbonduro/ecoleta/internal/assets/local"
	"github.com/vbonduro/ecoleta/internal/catalog"
	"github.com/vbonduro/ecoleta/internal/db"
	"github.com/vbonduro/ecoleta/internal/store"
)

func newSeedCmd(a *app) *cobra.Command {
	var catalogFile string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Install the item catalog and its images",
		Long: `Upsert the recyclable item catalog into the database and copy the item
images into the uploads directory. Without --catalog the built-in catalog is used.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(false); err != nil {
				return err
			}
			cfg, logger := a.cfg, a.logger

			entries := catalog.Default()
			var sources fs.FS
			if catalogFile != "" {
				data, err := os.ReadFile(catalogFile)
				if err != nil {
					return err
				}
				if entries, err = catalog.Parse(data); err != nil {
					return err
				}
				sources = os.DirFS(filepath.Dir(catalogFile))
			}

			database, err := db.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer database.Close()

			uploads, err := local.NewLocalAssetStore(cfg.UploadsPath)
			if err != nil {
				return err
			}

			seeder := catalog.NewSeeder(store.NewItemStore(database), uploads, logger)
			if err := seeder.Seed(cmd.Context(), entries, sources); err != nil {
				return err
			}
			logger.Info("catalog installed", "items", len(entries))
			return nil
		},
	}
	cmd.Flags().StringVar(&catalogFile, "catalog", "", "YAML item catalog file")
	return cmd
}
