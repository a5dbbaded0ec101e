package indexconfig

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/stackb/fir-resolve/pkg/logger"
	"github.com/stackb/fir-resolve/pkg/procutil"
	"github.com/stackb/fir-resolve/pkg/treeload"
)

// Config is the firindex configuration file.
type Config struct {
	Index   Index   `toml:"index"`
	Log     Log     `toml:"log"`
	Watch   Watch   `toml:"watch"`
	Metrics Metrics `toml:"metrics"`
}

type Index struct {
	// Root is the directory tree files are collected from.
	Root    string   `toml:"root"`
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Watch struct {
	Enabled  bool          `toml:"enabled"`
	Debounce time.Duration `toml:"debounce"`
}

type Metrics struct {
	// Addr is the listen address of the /metrics endpoint.  Empty disables
	// it.
	Addr string `toml:"addr"`
}

// Default returns the configuration used without a config file.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// Load reads, defaults and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// Parse decodes, defaults and validates config text.
func Parse(data string) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config keys: %v", undecoded)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv overrides cfg from the FIRINDEX_* environment variables and
// validates the result.
func (cfg *Config) ApplyEnv() error {
	if level, ok := procutil.LookupEnv(procutil.EnvLogLevel); ok {
		cfg.Log.Level = level
	}
	if format, ok := procutil.LookupEnv(procutil.EnvLogFormat); ok {
		cfg.Log.Format = format
	}
	cfg.Watch.Enabled = procutil.LookupBoolEnv(procutil.EnvWatch, cfg.Watch.Enabled)
	debounce, err := procutil.LookupDurationEnv(procutil.EnvWatchDebounce, cfg.Watch.Debounce)
	if err != nil {
		return err
	}
	cfg.Watch.Debounce = debounce
	if addr, ok := procutil.LookupEnv(procutil.EnvMetricsAddr); ok {
		cfg.Metrics.Addr = addr
	}
	return validate(cfg)
}

func applyDefaults(cfg *Config) {
	if cfg.Index.Root == "" {
		cfg.Index.Root = "."
	}
	if len(cfg.Index.Include) == 0 {
		cfg.Index.Include = []string{"**/*" + treeload.FileExtension}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = logger.FormatConsole
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 250 * time.Millisecond
	}
}

func validate(cfg *Config) error {
	for _, pattern := range append(append([]string(nil), cfg.Index.Include...), cfg.Index.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("index: invalid pattern %q", pattern)
		}
	}
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch: debounce must not be negative (got %v)", cfg.Watch.Debounce)
	}
	switch cfg.Log.Format {
	case logger.FormatConsole, logger.FormatJSON:
	default:
		return fmt.Errorf("log: unknown format %q", cfg.Log.Format)
	}
	return nil
}
