package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Pager.PageSize != 4 {
		t.Errorf("PageSize = %d; want 4", cfg.Pager.PageSize)
	}
	if cfg.Scraper.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v; want 15s", cfg.Scraper.Timeout)
	}
	if cfg.Ebay.LeadingPolicy != "heuristic" {
		t.Errorf("LeadingPolicy = %q; want heuristic", cfg.Ebay.LeadingPolicy)
	}
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
scraper:
  timeout: 3s
ebay:
  leading_policy: fixed
  drop_leading: 1
database:
  dsn: other.db
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Scraper.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v; want 3s", cfg.Scraper.Timeout)
	}
	if cfg.Ebay.LeadingPolicy != "fixed" || cfg.Ebay.DropLeading != 1 {
		t.Errorf("leading policy = %q/%d; want fixed/1", cfg.Ebay.LeadingPolicy, cfg.Ebay.DropLeading)
	}
	if cfg.Database.DSN != "other.db" {
		t.Errorf("DSN = %q; want other.db", cfg.Database.DSN)
	}
	// untouched keys keep their defaults
	if cfg.Ebay.Selectors.Info != "div.s-item__info" {
		t.Errorf("Selectors.Info = %q", cfg.Ebay.Selectors.Info)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SHOPSCRAPER_DB_DSN", "env.db")
	t.Setenv("SHOPSCRAPER_ADDR", ":9999")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.DSN != "env.db" {
		t.Errorf("DSN = %q; want env.db", cfg.Database.DSN)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Addr = %q; want :9999", cfg.Server.Addr)
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Defaults", func(*Config) {}, false},
		{"Zero timeout", func(c *Config) { c.Scraper.Timeout = 0 }, true},
		{"Unknown policy", func(c *Config) { c.Ebay.LeadingPolicy = "magic" }, true},
		{"Negative drop", func(c *Config) { c.Ebay.LeadingPolicy = "fixed"; c.Ebay.DropLeading = -1 }, true},
		{"Unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"Postgres driver", func(c *Config) { c.Database.Driver = "postgres" }, false},
		{"Zero page size", func(c *Config) { c.Pager.PageSize = 0 }, true},
		{"Zero session TTL", func(c *Config) { c.Server.SessionTTL = 0 }, true},
		{"No sessions allowed", func(c *Config) { c.Server.MaxSessions = 0 }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v; wantErr %v", err, tc.wantErr)
			}
		})
	}
}
