// Command pagelistbot is the CLI front-end for the query subsystem: it
// evaluates one query or a saved-query script against a Provider and
// prints the resulting titles.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wikitools/pagelistbot/internal/config"
	"github.com/wikitools/pagelistbot/internal/logging"
	"github.com/wikitools/pagelistbot/internal/numinf"
)

var (
	configPath string
	useMock    bool
	timeout    time.Duration

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pagelistbot",
	Short: "Evaluate set-algebraic page-list queries against a wiki",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg = config.Default()
		if configPath != "" {
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
		}
		if useMock {
			cfg.Provider = "mock"
		}
		logger, err = logging.New(cfg.LogJSON, cfg.Verbose())
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML configuration file")
	rootCmd.PersistentFlags().BoolVar(&useMock, "mock", false, "use the in-memory demo provider instead of config's provider")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "override the configured query timeout")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scriptCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// effectiveTimeout resolves the --timeout override against cfg's own
// configured timeout, in that priority order.
func effectiveTimeout() (time.Duration, error) {
	if timeout > 0 {
		return timeout, nil
	}
	return cfg.ParsedTimeout()
}

// effectiveDefaultLimit resolves cfg's default_limit for a run.
func effectiveDefaultLimit() (numinf.NumberOrInf, error) {
	return cfg.ParsedDefaultLimit()
}
