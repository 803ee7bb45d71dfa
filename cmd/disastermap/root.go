package main

import (
	"log/slog"

	"github.com/couchcryptid/disaster-map/internal/adapter/csvfile"
	"github.com/couchcryptid/disaster-map/internal/app"
	"github.com/couchcryptid/disaster-map/internal/config"
	"github.com/couchcryptid/disaster-map/internal/loader"
	"github.com/couchcryptid/disaster-map/internal/observability"
	"github.com/couchcryptid/disaster-map/internal/source"
	"github.com/couchcryptid/disaster-map/internal/store"
	"github.com/spf13/cobra"
)

// cli carries what every subcommand needs once configuration is loaded.
type cli struct {
	envFile string
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
}

func newRootCommand(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "disastermap",
		Short: "Natural disaster world map",
		Long: `disastermap plots earthquakes, tsunamis, cyclones and volcanic eruptions
from a local CSV snapshot on an equirectangular world map.

Settings come from the environment (DATA_DIR, YEAR_MIN, YEAR_MAX, ...),
optionally seeded from an env file.`,
		PersistentPreRunE: c.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	root.PersistentFlags().StringVar(&c.envFile, "env-file", "", "read KEY=value settings from this file; set variables win")

	root.AddCommand(newRenderCommand(c), newRunCommand(c))
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnvFile(c.envFile); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.cfg = cfg
	if c.logger == nil {
		c.logger = observability.NewLogger(cfg, writesToFile(cmd))
	}
	if c.metrics == nil {
		c.metrics = observability.NewMetrics()
	}
	return nil
}

func (c *cli) newLoader(st *store.Store, opts ...loader.Option) *loader.Loader {
	base := []loader.Option{
		loader.WithReportDelay(c.cfg.LoadReportDelay),
		loader.WithSourceOptions(source.Options{SignedHemispheres: c.cfg.CycloneSignedHemispheres}),
	}
	return loader.New(csvfile.New(c.cfg.DataDir), st, c.logger, c.metrics, append(base, opts...)...)
}

func (c *cli) stateOptions() app.Options {
	return app.Options{
		MinYear: c.cfg.YearMin,
		MaxYear: c.cfg.YearMax,
		Width:   c.cfg.ViewportWidth,
		Height:  c.cfg.ViewportHeight,
	}
}

// writesToFile reports whether cmd sends its output to an --out file, leaving
// stdout free for logs.
func writesToFile(cmd *cobra.Command) bool {
	f := cmd.Flags().Lookup("out")
	return f != nil && f.Value.String() != ""
}
