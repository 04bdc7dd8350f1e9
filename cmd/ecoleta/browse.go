package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vbonduro/ecoleta/internal/client"
	"github.com/vbonduro/ecoleta/internal/georef"
	"github.com/vbonduro/ecoleta/internal/selection"
	"github.com/vbonduro/ecoleta/internal/tui"
)

func newBrowseCmd(a *app) *cobra.Command {
	var region, city string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Search collection points in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(true); err != nil {
				return err
			}

			// Query the terminal background before the program owns stdin.
			_ = lipgloss.HasDarkBackground()

			api := client.New(a.cfg.APIURL)
			items, err := api.ListItems(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load items: %w", err)
			}

			geo := georef.New(a.cfg.GeorefURL, a.cfg.GeorefCacheTTL)
			ctrl := selection.NewController(api, geo, a.logger)
			return tui.Run(ctrl, items, region, city)
		},
	}
	cmd.Flags().StringVar(&region, "uf", "", "initial region code")
	cmd.Flags().StringVar(&city, "city", "", "initial city")
	return cmd
}
