package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/spf13/cobra"

	"github.com/avitko/dicrector/internal/corrector"
	"github.com/avitko/dicrector/internal/format"
	"github.com/avitko/dicrector/internal/logging"
	"github.com/avitko/dicrector/internal/observability"
	"github.com/avitko/dicrector/internal/sidemodule"
	"github.com/avitko/dicrector/internal/sidemodule/lua"
	"github.com/avitko/dicrector/internal/sidemodule/sqlresolver"
	"github.com/avitko/dicrector/internal/sidemodule/wordstat"
)

// configFile is the global --config flag value.
var configFile string

// NewRootCmd builds the dicrector CLI's root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dicrector",
		Short: "dicrector - a rule-dictionary text rewrite engine",
		Long: `dicrector rewrites lines of text by running them through an
ordered chain of rule dictionaries (.dic, .dicx, .rex, .rexw, .exts, .extw),
each applied at the tree level it was written for.`,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML config file")

	cmd.AddCommand(newCorrectCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// deps bundles everything a subcommand needs after config has been loaded.
type deps struct {
	cfg       *Config
	logger    *slog.Logger
	obsServer *observability.Server
	corrector *corrector.Corrector
}

// buildDeps loads configuration, sets up logging, wires the side module
// registry, and loads every configured dictionary into a Corrector.
func buildDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := loadConfig(configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logging.SetDefault("dicrector", version, cfg.Logging.Format)
	logger := slog.Default()

	sideModules := sidemodule.NewRegistry()
	if err := wireSideModules(cfg, sideModules, logger); err != nil {
		return nil, fmt.Errorf("wiring side modules: %w", err)
	}

	registry := format.NewRegistry()
	registry.RegisterDefaults(sideModules)

	obsServer := observability.NewServer(cfg.Observability.Addr, nil)
	metrics := corrector.NewMetrics(obsServer.Registry())
	c := corrector.New(logger, metrics)

	ctx := cmd.Context()
	for _, dc := range cfg.Dictionaries {
		if err := c.Load(ctx, registry, dc.Name, dc.Path); err != nil {
			return nil, fmt.Errorf("loading dictionary %q (%s): %w", dc.Name, dc.Path, err)
		}
	}

	return &deps{cfg: cfg, logger: logger, obsServer: obsServer, corrector: c}, nil
}

// wireSideModules registers a Resolver for every configured side module
// reference against sideModules.
func wireSideModules(cfg *Config, sideModules *sidemodule.Registry, logger *slog.Logger) error {
	luaHost := lua.NewHost(cfg.LuaTimeout)

	for _, sm := range cfg.SideModules {
		switch {
		case sm.Lua != nil:
			resolver, err := luaHost.Resolver(sm.Lua.Script, sm.Lua.Function)
			if err != nil {
				return fmt.Errorf("loading lua side module %q: %w", sm.Ref, err)
			}
			sideModules.Register(sm.Ref, resolver)

		case sm.SQL != nil:
			db, err := sql.Open("sqlite", sm.SQL.DBPath)
			if err != nil {
				return fmt.Errorf("opening sqlite side module %q: %w", sm.Ref, err)
			}
			sideModules.Register(sm.Ref, sqlresolver.New(db, sm.SQL.Query).Resolve)

		case sm.WordStat:
			sideModules.Register(sm.Ref, wordstat.New(logger).Resolve)
		}
	}

	return nil
}
