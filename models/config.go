package models

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config carries the application settings. It is read from an optional YAML
// file; anything left zero is filled from DefaultConfig by Validate.
type Config struct {
	DefaultProvider string        `json:"default_provider" yaml:"default_provider"`
	RefreshInterval time.Duration `json:"refresh_interval" yaml:"refresh_interval"`
	HTTPTimeout     time.Duration `json:"http_timeout" yaml:"http_timeout"`
	StateFile       string        `json:"state_file" yaml:"state_file"`
	LogFile         string        `json:"log_file" yaml:"log_file"`
	LogLevel        string        `json:"log_level" yaml:"log_level"`
	CacheTTL        time.Duration `json:"cache_ttl" yaml:"cache_ttl"`
	CacheMaxEntries int           `json:"cache_max_entries" yaml:"cache_max_entries"`
	Verbose         bool          `json:"verbose" yaml:"verbose"`
}

const (
	// MinRefreshInterval and MaxRefreshInterval bound the inbox poll rate,
	// matching the 1-60 second range offered in the UI.
	MinRefreshInterval = 1 * time.Second
	MaxRefreshInterval = 60 * time.Second
)

var DefaultConfig = Config{
	DefaultProvider: "guerrillamail",
	RefreshInterval: 5 * time.Second,
	HTTPTimeout:     30 * time.Second,
	LogLevel:        "info",
	CacheTTL:        15 * time.Minute,
	CacheMaxEntries: 512,
}

// ConfigDir returns the directory holding the state and log files,
// creating it if needed.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", &ConfigError{Field: "state_file", Message: "cannot determine home directory: " + err.Error()}
	}
	dir := filepath.Join(home, ".config", "tempmail")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &ConfigError{Field: "state_file", Message: "cannot create config directory: " + err.Error()}
	}
	return dir, nil
}

// LoadConfig reads a YAML config file and validates it. An empty path yields
// the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, &ConfigError{Field: "config", Message: err.Error()}
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, &ConfigError{Field: "config", Message: "invalid YAML: " + err.Error()}
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate fills unset fields from DefaultConfig and rejects out-of-range
// values.
func (c *Config) Validate() error {
	if c.DefaultProvider == "" {
		c.DefaultProvider = DefaultConfig.DefaultProvider
	}
	if c.RefreshInterval == 0 {
		c.RefreshInterval = DefaultConfig.RefreshInterval
	}
	if c.RefreshInterval < MinRefreshInterval || c.RefreshInterval > MaxRefreshInterval {
		return &ConfigError{Field: "refresh_interval", Message: "must be between 1s and 60s"}
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = DefaultConfig.HTTPTimeout
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultConfig.CacheTTL
	}
	if c.CacheMaxEntries <= 0 {
		c.CacheMaxEntries = DefaultConfig.CacheMaxEntries
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultConfig.LogLevel
	}

	if c.StateFile == "" || c.LogFile == "" {
		dir, err := ConfigDir()
		if err != nil {
			return err
		}
		if c.StateFile == "" {
			c.StateFile = filepath.Join(dir, "state.json")
		}
		if c.LogFile == "" {
			c.LogFile = filepath.Join(dir, "tempmail.log")
		}
	}

	return nil
}

type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
