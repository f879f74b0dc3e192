// Package config loads the optional gsd-compare.yaml configuration file.
// Per-run settings (filters, requested types) are carried as explicit
// values into the pipeline, never as module-level mutable state.
package config

import (
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/viper"

	cerrors "github.com/ozguraltinkurt/GSD-Compare/internal/errors"
	"github.com/ozguraltinkurt/GSD-Compare/internal/logging"
)

// Config represents the complete GSD-Compare configuration
type Config struct {
	OutDir        string              `mapstructure:"outDir"`
	Types         []string            `mapstructure:"types"`
	Region        []string            `mapstructure:"region"`
	RegionAliases map[string][]string `mapstructure:"regionAliases"`
	Logging       LoggingConfig       `mapstructure:"logging"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `mapstructure:"format"`
	Level  string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		OutDir: "delta_out",
		Types:  []string{"PG", "PI", "PV", "DV"},
		Region: []string{"EUR", "EEU", "MES"},
		RegionAliases: map[string][]string{
			"EU": {"EUR", "EEU"},
			"ME": {"MES"},
		},
		Logging: LoggingConfig{
			Format: string(logging.HumanFormat),
			Level:  string(logging.InfoLevel),
		},
	}
}

// Load reads configuration from the given file, or from gsd-compare.yaml
// in the working directory when path is empty. A missing file yields the
// defaults; a malformed file is a configuration error.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("outDir", defaults.OutDir)
	v.SetDefault("types", defaults.Types)
	v.SetDefault("region", defaults.Region)
	v.SetDefault("regionAliases", defaults.RegionAliases)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.level", defaults.Logging.Level)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("gsd-compare")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && path == "" {
			return defaults, nil
		}
		return nil, cerrors.Wrap(cerrors.ConfigInvalid, err, "reading configuration")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, cerrors.Wrap(cerrors.ConfigInvalid, err, "unmarshaling configuration")
	}
	normalizeAliases(&cfg)
	return &cfg, nil
}

// normalizeAliases uppercases alias names and their expansions so lookups
// are case-insensitive
func normalizeAliases(cfg *Config) {
	if cfg.RegionAliases == nil {
		return
	}
	normalized := make(map[string][]string, len(cfg.RegionAliases))
	for alias, areas := range cfg.RegionAliases {
		upper := make([]string, 0, len(areas))
		for _, a := range areas {
			a = strings.ToUpper(strings.TrimSpace(a))
			if a != "" {
				upper = append(upper, a)
			}
		}
		normalized[strings.ToUpper(strings.TrimSpace(alias))] = upper
	}
	cfg.RegionAliases = normalized
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.OutDir == "" {
		return cerrors.New(cerrors.ConfigInvalid, "outDir must not be empty")
	}
	if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
		return cerrors.Wrap(cerrors.ConfigInvalid, err, "logging.format")
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return cerrors.Wrap(cerrors.ConfigInvalid, err, "logging.level")
	}
	for alias, areas := range c.RegionAliases {
		if len(areas) == 0 {
			return cerrors.New(cerrors.ConfigInvalid, "region alias %q expands to nothing", alias)
		}
	}
	return nil
}

// areaCodeRe matches a literal area code token: 2 or 3 alphanumerics
var areaCodeRe = regexp.MustCompile(`^[A-Z0-9]{2,3}$`)

// ExpandRegion resolves region tokens into area codes. A token matching a
// configured alias expands to its area codes; an unmatched token shaped
// like an area code is accepted literally; anything else fails fast.
// The result is sorted and deduplicated. Empty input yields nil, meaning
// no region-derived area filter.
func (c *Config) ExpandRegion(tokens []string) ([]string, error) {
	seen := make(map[string]bool)
	for _, tok := range tokens {
		tok = strings.ToUpper(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}
		if areas, ok := c.RegionAliases[tok]; ok {
			for _, a := range areas {
				seen[a] = true
			}
			continue
		}
		if !areaCodeRe.MatchString(tok) {
			return nil, cerrors.New(cerrors.UnknownRegion, "unknown region alias %q", tok)
		}
		seen[tok] = true
	}
	if len(seen) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(seen))
	for a := range seen {
		out = append(out, a)
	}
	sort.Strings(out)
	return out, nil
}
