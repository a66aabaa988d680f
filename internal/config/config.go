// Package config loads cmd/pagelistbot's on-disk settings: the
// provider endpoint, the default result limit, the run timeout, and
// the log level, from a YAML file with struct tags — the same shape
// the teacher pack's theRebelliousNerd-codenerd/internal/config
// package uses for its own settings files.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wikitools/pagelistbot/internal/numinf"
)

// Config is cmd/pagelistbot's whole on-disk configuration.
type Config struct {
	// Provider names which concrete Provider implementation to
	// construct. "mock" is always available; other values are left for
	// a future out-of-process provider (spec.md §1's excluded daemon).
	Provider string `yaml:"provider"`

	// Endpoint is the provider-specific connection string (e.g. an
	// api_daemon RPC address). Unused by "mock".
	Endpoint string `yaml:"endpoint"`

	// DefaultLimit seeds the root effective modifier for any query that
	// never sets .limit() itself.
	DefaultLimit string `yaml:"default_limit"`

	// Timeout bounds a single query run, e.g. "30s". Empty means no
	// timeout.
	Timeout string `yaml:"timeout"`

	// LogLevel is "debug", "info", "warn", or "error".
	LogLevel string `yaml:"log_level"`

	// LogJSON selects the JSON encoder (daemon-style) over the
	// development console encoder (CLI-style).
	LogJSON bool `yaml:"log_json"`
}

// Default returns the configuration cmd/pagelistbot runs with when no
// file is given.
func Default() Config {
	return Config{
		Provider:     "mock",
		DefaultLimit: "1000",
		LogLevel:     "info",
	}
}

// Load reads and validates a YAML configuration file at path.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the fields Load cannot otherwise catch at the YAML
// layer: malformed numbers/durations and an unrecognised provider.
func (c Config) Validate() error {
	switch c.Provider {
	case "mock":
	case "":
		return fmt.Errorf("provider must be set")
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if _, err := c.ParsedDefaultLimit(); err != nil {
		return err
	}
	if _, err := c.ParsedTimeout(); err != nil {
		return err
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// ParsedDefaultLimit parses DefaultLimit as a NumberOrInf.
func (c Config) ParsedDefaultLimit() (numinf.NumberOrInf, error) {
	if c.DefaultLimit == "" {
		return numinf.Inf, nil
	}
	n, err := numinf.Parse(c.DefaultLimit)
	if err != nil {
		return numinf.NumberOrInf{}, fmt.Errorf("default_limit: %w", err)
	}
	return n, nil
}

// ParsedTimeout parses Timeout as a time.Duration; zero means no
// timeout.
func (c Config) ParsedTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("timeout: %w", err)
	}
	return d, nil
}

// Verbose reports whether LogLevel calls for debug-level logging.
func (c Config) Verbose() bool { return c.LogLevel == "debug" }
