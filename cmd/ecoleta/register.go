package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/vbonduro/ecoleta/internal/client"
	"github.com/vbonduro/ecoleta/internal/domain"
	"github.com/vbonduro/ecoleta/internal/service"
)

func newRegisterCmd(a *app) *cobra.Command {
	var (
		p     domain.Point
		items string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a collection point through the API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(false); err != nil {
				return err
			}

			req := service.PointRequest{
				Name:      &p.Name,
				Email:     &p.Email,
				WhatsApp:  &p.WhatsApp,
				Latitude:  &p.Latitude,
				Longitude: &p.Longitude,
				City:      &p.City,
				UF:        &p.UF,
				Items:     domain.ParseItemIDs(items),
			}

			reg, err := client.New(a.cfg.APIURL).CreatePoint(cmd.Context(), req)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(reg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&p.Name, "name", "", "point name")
	f.StringVar(&p.Email, "email", "", "contact email")
	f.StringVar(&p.WhatsApp, "whatsapp", "", "contact WhatsApp number")
	f.Float64Var(&p.Latitude, "lat", 0, "latitude")
	f.Float64Var(&p.Longitude, "lng", 0, "longitude")
	f.StringVar(&p.City, "city", "", "city name")
	f.StringVar(&p.UF, "uf", "", "two-letter region code")
	f.StringVar(&items, "items", "", "comma-separated accepted item ids")
	for _, name := range []string{"name", "email", "whatsapp", "lat", "lng", "city", "uf"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
