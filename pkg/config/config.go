package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ScraperConfig holds general fetch settings.
type ScraperConfig struct {
	UserAgent      string        `yaml:"user_agent"`
	AcceptLanguage string        `yaml:"accept_language"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	UseBrowser     bool          `yaml:"use_browser"`
	Headless       bool          `yaml:"headless"`
}

// SelectorConfig holds the CSS selectors used on the results page.
type SelectorConfig struct {
	Info         string `yaml:"info"`
	ImageWrapper string `yaml:"image_wrapper"`
	Title        string `yaml:"title"`
	Link         string `yaml:"link"`
	Price        string `yaml:"price"`
	Image        string `yaml:"image"`
}

// EbayConfig holds settings specific to eBay.
type EbayConfig struct {
	SearchURL     string         `yaml:"search_url"`
	LeadingPolicy string         `yaml:"leading_policy"` // heuristic, fixed or none
	DropLeading   int            `yaml:"drop_leading"`   // used by the fixed policy
	Selectors     SelectorConfig `yaml:"selectors"`
}

// DatabaseConfig selects the listing store.
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite or postgres
	DSN    string `yaml:"dsn"`
}

type PagerConfig struct {
	PageSize int `yaml:"page_size"`
}

type ServerConfig struct {
	Addr          string        `yaml:"addr"`
	SessionCookie string        `yaml:"session_cookie"`
	SessionTTL    time.Duration `yaml:"session_ttl"`  // idle time after which a session is forgotten
	MaxSessions   int           `yaml:"max_sessions"` // oldest sessions are evicted beyond this
}

// Config is the complete structure for the config.yml file.
type Config struct {
	Scraper  ScraperConfig  `yaml:"scraper"`
	Ebay     EbayConfig     `yaml:"ebay"`
	Database DatabaseConfig `yaml:"database"`
	Pager    PagerConfig    `yaml:"pager"`
	Server   ServerConfig   `yaml:"server"`
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		Scraper: ScraperConfig{
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			AcceptLanguage: "en-US, en;q=0.5",
			Timeout:        15 * time.Second,
			MaxBodyBytes:   10 * 1024 * 1024,
			Headless:       true,
		},
		Ebay: EbayConfig{
			SearchURL:     "https://www.ebay.com/sch/i.html",
			LeadingPolicy: "heuristic",
			DropLeading:   2,
			Selectors: SelectorConfig{
				Info:         "div.s-item__info",
				ImageWrapper: "div.s-item__image-wrapper.image-treatment",
				Title:        ".s-item__title",
				Link:         ".s-item__link",
				Price:        ".s-item__price",
				Image:        "img",
			},
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "products.db",
		},
		Pager: PagerConfig{
			PageSize: 4,
		},
		Server: ServerConfig{
			Addr:          ":8080",
			SessionCookie: "shop_session",
			SessionTTL:    30 * time.Minute,
			MaxSessions:   10000,
		},
	}
}

// LoadConfig reads the YAML file at filepath over the defaults. A missing file
// is not an error. Environment overrides are applied last.
func LoadConfig(filepath string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("error reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error unmarshalling config YAML: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides deployment settings from SHOPSCRAPER_* variables,
// typically loaded from a .env file by the caller.
func applyEnv(cfg *Config) {
	if v := os.Getenv("SHOPSCRAPER_DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("SHOPSCRAPER_DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SHOPSCRAPER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("SHOPSCRAPER_USER_AGENT"); v != "" {
		cfg.Scraper.UserAgent = v
	}
	if v := os.Getenv("SHOPSCRAPER_USE_BROWSER"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Scraper.UseBrowser = b
		}
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Scraper.Timeout <= 0 {
		return fmt.Errorf("scraper.timeout must be > 0")
	}
	if c.Scraper.MaxBodyBytes <= 0 {
		return fmt.Errorf("scraper.max_body_bytes must be > 0")
	}
	switch c.Ebay.LeadingPolicy {
	case "heuristic", "none":
	case "fixed":
		if c.Ebay.DropLeading < 0 {
			return fmt.Errorf("ebay.drop_leading must be >= 0, got %d", c.Ebay.DropLeading)
		}
	default:
		return fmt.Errorf("ebay.leading_policy must be heuristic, fixed or none, got %q", c.Ebay.LeadingPolicy)
	}
	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("database.driver must be 'sqlite' or 'postgres', got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn must not be empty")
	}
	if c.Pager.PageSize < 1 {
		return fmt.Errorf("pager.page_size must be >= 1, got %d", c.Pager.PageSize)
	}
	if c.Server.SessionTTL <= 0 {
		return fmt.Errorf("server.session_ttl must be > 0")
	}
	if c.Server.MaxSessions < 1 {
		return fmt.Errorf("server.max_sessions must be >= 1, got %d", c.Server.MaxSessions)
	}
	return nil
}
