package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	Planner PlannerConfig `mapstructure:"planner"`
	Log     LogConfig     `mapstructure:"log"`
}

// StoreConfig represents the document store connection settings
type StoreConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout string `mapstructure:"timeout"`
}

// PlannerConfig represents calendar behavior settings
type PlannerConfig struct {
	// ClearSelectionOnSave controls whether the date selection is wiped
	// after a successful save. Off by default so a selection can be
	// refined across repeated saves.
	ClearSelectionOnSave bool `mapstructure:"clear_selection_on_save"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.team-planner")
		v.AddConfigPath("/etc/team-planner")
	}

	v.SetDefault("store.base_url", "http://localhost:8080")

	// Read environment variables
	v.AutomaticEnv()

	// Read config file; a missing file is fine, defaults apply
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Store.BaseURL == "" {
		return fmt.Errorf("store.base_url is required")
	}
	if _, err := url.Parse(c.Store.BaseURL); err != nil {
		return fmt.Errorf("store.base_url is not a valid URL: %w", err)
	}
	if c.Store.Timeout != "" {
		if _, err := time.ParseDuration(c.Store.Timeout); err != nil {
			return fmt.Errorf("store.timeout is not a valid duration: %w", err)
		}
	}
	return nil
}

// GetTimeout returns the store HTTP timeout duration
func (c *StoreConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 10 * time.Second
	}
	duration, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return duration
}
