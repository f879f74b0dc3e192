package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	cerrors "github.com/ozguraltinkurt/GSD-Compare/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gsd-compare.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.OutDir != "delta_out" {
		t.Errorf("OutDir = %q, want delta_out", cfg.OutDir)
	}
	if !reflect.DeepEqual(cfg.Types, []string{"PG", "PI", "PV", "DV"}) {
		t.Errorf("Types = %v", cfg.Types)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
outDir: my_out
types: [PG, DV]
region: [EU]
regionAliases:
  eu: [eur, eeu]
logging:
  format: json
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutDir != "my_out" {
		t.Errorf("OutDir = %q, want my_out", cfg.OutDir)
	}
	if !reflect.DeepEqual(cfg.Types, []string{"PG", "DV"}) {
		t.Errorf("Types = %v, want [PG DV]", cfg.Types)
	}
	// alias names and expansions are uppercased
	if !reflect.DeepEqual(cfg.RegionAliases["EU"], []string{"EUR", "EEU"}) {
		t.Errorf("RegionAliases = %v", cfg.RegionAliases)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("explicitly named missing file should fail")
	}
	if code := cerrors.CodeOf(err); code != cerrors.ConfigInvalid {
		t.Errorf("error code = %s, want %s", code, cerrors.ConfigInvalid)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, "outDir: [not\n  a: scalar\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("malformed config should fail")
	}
	if code := cerrors.CodeOf(err); code != cerrors.ConfigInvalid {
		t.Errorf("error code = %s, want %s", code, cerrors.ConfigInvalid)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"empty outDir", func(c *Config) { c.OutDir = "" }, false},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, false},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, false},
		{"empty alias expansion", func(c *Config) { c.RegionAliases["XX"] = nil }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate: %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("Validate should fail")
			}
		})
	}
}

func TestExpandRegion(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name    string
		tokens  []string
		want    []string
		wantErr bool
	}{
		{"empty", nil, nil, false},
		{"blank tokens", []string{"", "  "}, nil, false},
		{"alias", []string{"EU"}, []string{"EEU", "EUR"}, false},
		{"alias lowercase", []string{"eu"}, []string{"EEU", "EUR"}, false},
		{"literal area code", []string{"USA"}, []string{"USA"}, false},
		{"alias plus literal deduplicated", []string{"EU", "EUR"}, []string{"EEU", "EUR"}, false},
		{"multiple aliases", []string{"EU", "ME"}, []string{"EEU", "EUR", "MES"}, false},
		{"unknown token", []string{"EUROPE"}, nil, true},
		{"too short", []string{"E"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cfg.ExpandRegion(tt.tokens)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ExpandRegion should fail")
				}
				if code := cerrors.CodeOf(err); code != cerrors.UnknownRegion {
					t.Errorf("error code = %s, want %s", code, cerrors.UnknownRegion)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExpandRegion: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExpandRegion(%v) = %v, want %v", tt.tokens, got, tt.want)
			}
		})
	}
}
