package main

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// DictionaryConfig names one dictionary file to load and the name it is
// tracked under in logs and metrics.
type DictionaryConfig struct {
	Name string `koanf:"name"`
	Path string `koanf:"path"`
}

// SideModuleConfig wires one side module reference to its backing
// implementation. Exactly one of Lua/SQL/WordStat should be set.
type SideModuleConfig struct {
	Ref      string         `koanf:"ref"`
	Lua      *LuaSideModule `koanf:"lua"`
	SQL      *SQLSideModule `koanf:"sql"`
	WordStat bool           `koanf:"wordstat"`
}

// LuaSideModule points at a sandboxed script and the global function to call.
type LuaSideModule struct {
	Script   string `koanf:"script"`
	Function string `koanf:"function"`
}

// SQLSideModule points at a sqlite database and the lookup query to run.
type SQLSideModule struct {
	DBPath string `koanf:"db_path"`
	Query  string `koanf:"query"`
}

// LoggingConfig configures internal/logging.Setup.
type LoggingConfig struct {
	Format string `koanf:"format"`
}

// ObservabilityConfig configures the optional metrics/health HTTP server.
type ObservabilityConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// Config is the full, merged configuration for dicrector: defaults, then
// the file named by --config (if any), then command-line flags, in that
// order of increasing precedence.
type Config struct {
	Dictionaries  []DictionaryConfig  `koanf:"dictionaries"`
	SideModules   []SideModuleConfig  `koanf:"side_modules"`
	Logging       LoggingConfig       `koanf:"logging"`
	Observability ObservabilityConfig `koanf:"observability"`
	LuaTimeout    time.Duration       `koanf:"lua_timeout"`
}

func defaultConfig() *koanf.Koanf {
	k := koanf.New(".")
	_ = k.Load(confmap.Provider(map[string]any{
		"logging.format":        "json",
		"observability.enabled": false,
		"observability.addr":    ":9090",
		"lua_timeout":           "2s",
	}, "."), nil)
	return k
}

// loadConfig merges built-in defaults, an optional YAML file, and the
// command's own flag set (for the handful of overrides exposed as flags),
// mirroring the layered koanf.Load calls the wider ecosystem uses for this.
func loadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	k := defaultConfig()

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %q: %w", configPath, err)
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("loading flag overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
