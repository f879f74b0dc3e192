package main

import (
	"github.com/spf13/cobra"

	"github.com/ozguraltinkurt/GSD-Compare/internal/config"
	"github.com/ozguraltinkurt/GSD-Compare/internal/logging"
	"github.com/ozguraltinkurt/GSD-Compare/internal/version"
)

var (
	// configFlag is the CLI --config flag value
	configFlag string
	// logLevelFlag and logFormatFlag override the configured logging setup
	logLevelFlag  string
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "gsd-compare",
	Short: "GSD-Compare - navigation database delta tool",
	Long: `GSD-Compare compares two snapshots of a fixed-width aviation navigation
database (ARINC 424-style records) and reports the entities added, removed,
or modified between them, per record type, as tabular CSV output.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("GSD-Compare version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"Path to configuration file (default: ./gsd-compare.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, or error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "",
		"Log format: human or json (overrides config)")
}

// loadConfig reads and validates the configuration file
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the run logger from config plus flag overrides.
// Precedence: CLI flag > config file > defaults.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	levelStr := cfg.Logging.Level
	if logLevelFlag != "" {
		levelStr = logLevelFlag
	}
	formatStr := cfg.Logging.Format
	if logFormatFlag != "" {
		formatStr = logFormatFlag
	}

	level, err := logging.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}
	return logging.NewLogger(logging.Config{Format: format, Level: level}), nil
}
