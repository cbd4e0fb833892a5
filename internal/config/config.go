// Package config loads the optional ghrs configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/h0rv/ghrs/internal/domain"
	"github.com/pelletier/go-toml/v2"
)

// DefaultAPIURL is the public GitHub REST endpoint.
const DefaultAPIURL = "https://api.github.com/"

// Config represents the application configuration.
type Config struct {
	APIURL    string `toml:"api_url"`     // REST base URL (GitHub Enterprise: https://host/api/v3/)
	Sort      string `toml:"sort"`        // Default sort key
	Order     string `toml:"order"`       // Default sort direction
	GhCliAuth bool   `toml:"gh_cli_auth"` // Fall back to `gh auth token` when no env token is set
	LogFile   string `toml:"log_file"`    // Debug log destination, empty disables logging
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		APIURL:    DefaultAPIURL,
		Sort:      string(domain.SortBestMatch),
		Order:     string(domain.OrderDesc),
		GhCliAuth: true,
	}
}

// DefaultPath returns the platform config location, e.g. ~/.config/ghrs/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "ghrs", "config.toml"), nil
}

// Load reads the configuration. An empty path means the default location,
// where a missing file yields Default(). An explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes TOML data on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the sort and order values are recognized.
func (c *Config) Validate() error {
	if _, err := domain.ParseSortKey(c.Sort); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := domain.ParseOrder(c.Order); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SortKey returns the configured default sort key.
func (c *Config) SortKey() domain.SortKey {
	k, _ := domain.ParseSortKey(c.Sort)
	return k
}

// OrderValue returns the configured default direction.
func (c *Config) OrderValue() domain.Order {
	o, _ := domain.ParseOrder(c.Order)
	return o
}
