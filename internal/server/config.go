package server

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/iwvelando/loan-calculator/internal/config"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address       string               `yaml:"address"`
	PublicURL     string               `yaml:"publicURL"`
	SharePath     string               `yaml:"sharePath"`
	MaxTermMonths int                  `yaml:"maxTermMonths"`
	Logging       config.LoggingConfig `yaml:"logging"`
	Analytics     AnalyticsConfig      `yaml:"analytics"`
}

// AnalyticsConfig selects where button clicks are counted. Events are always
// logged; a Redis address additionally enables per-day counters.
type AnalyticsConfig struct {
	RedisAddr string `yaml:"redisAddr"`
	KeyPrefix string `yaml:"keyPrefix"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Address:       constants.DefaultServerAddress,
		SharePath:     constants.DefaultSharePath,
		MaxTermMonths: constants.DefaultMaxTermMonths,
		Analytics: AnalyticsConfig{
			KeyPrefix: constants.DefaultAnalyticsKeyPrefix,
		},
	}
}

// LoadConfig loads the server configuration from YAML. If the file does not exist,
// defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}
	if c.MaxTermMonths <= 0 {
		c.MaxTermMonths = constants.DefaultMaxTermMonths
	}
	if c.Analytics.KeyPrefix == "" {
		c.Analytics.KeyPrefix = constants.DefaultAnalyticsKeyPrefix
	}

	c.SharePath = strings.TrimSpace(c.SharePath)
	switch {
	case c.SharePath == "":
		c.SharePath = constants.DefaultSharePath
	case c.SharePath == "/" || !strings.HasPrefix(c.SharePath, "/"):
		return fmt.Errorf("invalid sharePath %q: must be an absolute path other than /", c.SharePath)
	}

	c.PublicURL = strings.TrimRight(strings.TrimSpace(c.PublicURL), "/")
	if c.PublicURL != "" {
		u, err := url.Parse(c.PublicURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid publicURL %q: expected scheme://host", c.PublicURL)
		}
	}
	return nil
}
