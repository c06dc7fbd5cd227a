package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestFromViperDefaults(t *testing.T) {
	t.Parallel()

	v := viper.New()
	setDefaults(v)
	v.Set("storage", "memory")
	cfg, err := FromViper(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("default listen address is :8080", func(t *testing.T) {
		t.Parallel()
		if cfg.ListenAddr != ":8080" {
			t.Errorf("ListenAddr = %q", cfg.ListenAddr)
		}
	})
	t.Run("default modules are the standard set", func(t *testing.T) {
		t.Parallel()
		if len(cfg.DefaultModules) != 2 || cfg.DefaultModules[0] != "whois" || cfg.DefaultModules[1] != "certificate_transparency" {
			t.Errorf("DefaultModules = %v", cfg.DefaultModules)
		}
	})
	t.Run("module timeout is 30s and llm timeout 120s", func(t *testing.T) {
		t.Parallel()
		if cfg.ModuleTimeout != 30*time.Second || cfg.LLM.Timeout != 120*time.Second {
			t.Errorf("timeouts = %v / %v", cfg.ModuleTimeout, cfg.LLM.Timeout)
		}
	})
	t.Run("modules run sequentially by default", func(t *testing.T) {
		t.Parallel()
		if cfg.ModuleConcurrency != 1 {
			t.Errorf("ModuleConcurrency = %d", cfg.ModuleConcurrency)
		}
	})
	t.Run("crt.sh cap is 100", func(t *testing.T) {
		t.Parallel()
		if cfg.CrtshMaxCerts != 100 {
			t.Errorf("CrtshMaxCerts = %d", cfg.CrtshMaxCerts)
		}
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	base := Config{Storage: "postgres", DatabaseURL: "postgres://x", LLM: LLMConfig{Backend: "ollama"}}
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"valid", func(*Config) {}, nil},
		{"missing database url", func(c *Config) { c.DatabaseURL = "" }, ErrNoDatabaseURL},
		{"memory needs no database", func(c *Config) { c.Storage = "memory"; c.DatabaseURL = "" }, nil},
		{"unknown storage", func(c *Config) { c.Storage = "sqlite" }, ErrInvalidStorage},
		{"unknown backend", func(c *Config) { c.LLM.Backend = "claude" }, ErrInvalidBackend},
		{"negative workers", func(c *Config) { c.ScanWorkers = -1 }, ErrInvalidWorkers},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := base
			tt.mutate(&c)
			if err := c.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadEnvAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage: memory\nscan_workers: 7\nlisten_addr: \":9000\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LISTEN_ADDR", ":7000")
	t.Setenv("DEFAULT_MODULES", "whois, dns")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ScanWorkers != 7 {
		t.Errorf("ScanWorkers = %d, want 7 from file", cfg.ScanWorkers)
	}
	if cfg.ListenAddr != ":7000" {
		t.Errorf("ListenAddr = %q, want env override", cfg.ListenAddr)
	}
	if len(cfg.DefaultModules) != 2 || cfg.DefaultModules[1] != "dns" {
		t.Errorf("DefaultModules = %v", cfg.DefaultModules)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
