// Package cmd implements the timedate command line.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ngrash/timedate/internal/config"
	"github.com/ngrash/timedate/internal/environ"
	"github.com/ngrash/timedate/internal/logging"
	"github.com/ngrash/timedate/timequery"
	"github.com/ngrash/timedate/tzdata"
	"github.com/ngrash/timedate/tzreg"
)

// app carries flag values and the service built from them.
type app struct {
	env environ.Env

	cfgFile  string
	logLevel string
	catalog  string
	zoneinfo string

	log *logging.Logger
	svc *timequery.Service
}

// Execute runs the command line against the process environment.
func Execute() error {
	return execute(newApp(environ.OS{}))
}

// execute runs root and closes the log file, also after a failed command
// for which cobra skips the post-run hooks.
func execute(a *app, root *cobra.Command) error {
	defer a.closeLog()
	return root.Execute()
}

// newApp builds the command tree. env is handed to the query service and
// used to locate the config file.
func newApp(env environ.Env) (*app, *cobra.Command) {
	a := &app{env: env}
	root := &cobra.Command{
		Use:   "timedate",
		Short: "Civil time queries across IANA time zones",
		Long: `timedate answers civil-time queries: the current time in a zone, the
time a text denotes, hour offsets, conversions between zones, the local
zone, the preferred clock format and the zone catalog.

Results are printed as JSON.`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file, .yaml or .toml (default: $"+config.EnvPath+")")
	flags.StringVar(&a.logLevel, "log-level", "", "log level, overrides the config file")
	flags.StringVar(&a.catalog, "catalog", "", "zone catalog source: compiled, zoneinfo or tzdata")
	flags.StringVar(&a.zoneinfo, "zoneinfo", "", "zoneinfo directory, implies --catalog=zoneinfo")

	root.AddCommand(
		a.nowCmd(),
		a.atCmd(),
		a.offsetCmd(),
		a.convertCmd(),
		a.infoCmd(),
		a.formatCmd(),
		a.zonesCmd(),
		a.callCmd(),
		a.readCmd(),
	)
	return a, root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.Path(a.cfgFile, a.env))
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.catalog != "" {
		cfg.Catalog.Source = a.catalog
	}
	if a.zoneinfo != "" {
		cfg.Catalog.Source = config.SourceZoneinfo
		cfg.Catalog.ZoneinfoDir = a.zoneinfo
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.log, err = logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	log := a.log.With().Str("query_id", uuid.NewString()).Str("command", cmd.Name()).Logger()

	reg, err := buildRegistry(cmd.Context(), cfg.Catalog)
	if err != nil {
		return fmt.Errorf("load %s catalog: %w", cfg.Catalog.Source, err)
	}
	log.Debug().Str("source", cfg.Catalog.Source).Int("zones", reg.Catalog().Len()).Msg("catalog loaded")

	a.svc = timequery.New(reg,
		timequery.WithEnv(a.env),
		timequery.WithLogger(log),
	)
	return nil
}

func (a *app) teardown(cmd *cobra.Command, args []string) error {
	return a.closeLog()
}

// closeLog closes the log file once; later calls are no-ops.
func (a *app) closeLog() error {
	if a.log == nil {
		return nil
	}
	err := a.log.Close()
	a.log = nil
	return err
}

func buildRegistry(ctx context.Context, cfg config.CatalogConfig) (*tzreg.Registry, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var src tzreg.Source
	switch cfg.Source {
	case config.SourceZoneinfo:
		var err error
		if src, err = tzreg.FromZoneinfoDir(ctx, cfg.ZoneinfoDir); err != nil {
			return nil, err
		}
	case config.SourceTZData:
		f, err := tzdata.ParsePath(cfg.TZDataPath)
		if err != nil {
			return nil, err
		}
		src = tzreg.FromTZData(f)
	default:
		src = tzreg.Compiled()
	}
	return tzreg.NewRegistry(src, tzreg.WithListLimit(cfg.ListLimit)), nil
}

// printJSON writes v as indented JSON to the command's output.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
