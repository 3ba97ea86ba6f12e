package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all ThunderpickMove configuration.
type Config struct {
	// Database is the SQLite file holding progress, journal and purchases.
	Database string `yaml:"database"`
	// MediaDir holds journal photos and voice notes.
	MediaDir string `yaml:"media_dir"`
	// Timezone names the calendar used for day boundaries; empty means local.
	Timezone string `yaml:"timezone"`

	Logging LoggingConfig `yaml:"logging"`
	Store   StoreConfig   `yaml:"store"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	File   string `yaml:"file"`   // empty means stderr
}

// StoreConfig configures the local purchase provider.
type StoreConfig struct {
	Products   []ProductConfig `yaml:"products"`
	SigningKey string          `yaml:"signing_key"`
}

type ProductConfig struct {
	ID    string  `yaml:"id"`
	Name  string  `yaml:"name"`
	Price float64 `yaml:"price"`
}

var validLevels = []string{"debug", "info", "warn", "error"}

// DefaultDir returns ~/.thundermove.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".thundermove"), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func DefaultConfig() *Config {
	base := ".thundermove"
	if dir, err := DefaultDir(); err == nil {
		base = dir
	}
	return &Config{
		Database: filepath.Join(base, "thundermove.db"),
		MediaDir: filepath.Join(base, "media"),
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Store: StoreConfig{
			Products: []ProductConfig{
				{ID: "premium_theme_neon", Name: "Neon Cyber Theme", Price: 2.99},
				{ID: "premium_theme_stealth", Name: "Stealth Ops Theme", Price: 3.99},
			},
			SigningKey: "thundermove-local",
		},
	}
}

// Load reads the config at path. A missing file yields the defaults.
// Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("THUNDERMOVE_DB"); v != "" {
		c.Database = v
	}
	if v := os.Getenv("THUNDERMOVE_MEDIA_DIR"); v != "" {
		c.MediaDir = v
	}
	if v := os.Getenv("THUNDERMOVE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("THUNDERMOVE_TZ"); v != "" {
		c.Timezone = v
	}
}

func (c *Config) Validate() error {
	if c.Database == "" {
		return fmt.Errorf("database path not configured (set database or THUNDERMOVE_DB)")
	}
	valid := false
	for _, l := range validLevels {
		if c.Logging.Level == l {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, validLevels)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s (valid: json, console)", c.Logging.Format)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	seen := map[string]bool{}
	for _, p := range c.Store.Products {
		if p.ID == "" {
			return fmt.Errorf("store product without id")
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate store product: %s", p.ID)
		}
		if p.Price < 0 {
			return fmt.Errorf("negative price for %s", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ProductIDs lists the configured store product IDs in order.
func (c *Config) ProductIDs() []string {
	ids := make([]string, 0, len(c.Store.Products))
	for _, p := range c.Store.Products {
		ids = append(ids, p.ID)
	}
	return ids
}
