package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vbonduro/ecoleta/internal/config"
	"github.com/vbonduro/ecoleta/internal/logging"
)

// app carries what every subcommand needs after config and logging are set up.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
	cleanup func()
}

func newRootCmd() *cobra.Command {
	a := &app{cleanup: func() {}}

	root := &cobra.Command{
		Use:          "ecoleta",
		Short:        "Recycling collection point directory",
		Long:         `ecoleta registers recycling collection points and lets people find the ones near them that accept the materials they want to discard.`,
		SilenceUsage: true,
		PersistentPostRun: func(*cobra.Command, []string) {
			a.cleanup()
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "YAML config file (environment variables take precedence)")

	root.AddCommand(
		newServeCmd(a),
		newSeedCmd(a),
		newRegisterCmd(a),
		newBrowseCmd(a),
	)
	return root
}

// setup loads configuration and initialises logging. quiet keeps log output
// off the terminal.
func (a *app) setup(quiet bool) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}

	logger, cleanup, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, Quiet: quiet})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.cleanup = cleanup
	return nil
}
