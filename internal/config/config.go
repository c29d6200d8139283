package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/dcx-tools/dcx/internal/domain"
)

type Config struct {
	DefaultDialect string `mapstructure:"default_dialect"`
	CatalogDir     string `mapstructure:"catalog_dir"`
	StateDir       string `mapstructure:"state_dir"`
	LogLevel       string `mapstructure:"log_level"`
	LogDir         string `mapstructure:"log_dir"`
	FetchRetries   int    `mapstructure:"fetch_retries"`
	CatalogGit     bool   `mapstructure:"catalog_git"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		DefaultDialect: string(domain.DialectTeradata),
		CatalogDir:     ".dcx-catalog",
		StateDir:       ".dcx-state",
		LogLevel:       "info",
		FetchRetries:   3,
		CatalogGit:     true,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := domain.ParseDialect(c.DefaultDialect); err != nil {
		return fmt.Errorf("invalid default_dialect: %w", err)
	}
	if c.CatalogDir == "" {
		return fmt.Errorf("catalog_dir cannot be empty")
	}
	if strings.Contains(c.CatalogDir, "..") {
		return fmt.Errorf("catalog_dir contains invalid path traversal")
	}
	if c.StateDir == "" {
		return fmt.Errorf("state_dir cannot be empty")
	}
	if strings.Contains(c.StateDir, "..") {
		return fmt.Errorf("state_dir contains invalid path traversal")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level: %s (expected debug, info, warn or error)", c.LogLevel)
	}
	if c.FetchRetries < 0 || c.FetchRetries > 10 {
		return fmt.Errorf("fetch_retries must be between 0 and 10")
	}
	return nil
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".dcx")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	// Configure environment variables
	viper.SetEnvPrefix("DCX")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// Explicitly bind environment variables
	// BindEnv allows multiple env vars - it will check them in order
	if err := viper.BindEnv("default_dialect", "DCX_DEFAULT_DIALECT"); err != nil {
		return nil, fmt.Errorf("failed to bind default_dialect env: %w", err)
	}
	if err := viper.BindEnv("catalog_dir", "DCX_CATALOG_DIR"); err != nil {
		return nil, fmt.Errorf("failed to bind catalog_dir env: %w", err)
	}
	if err := viper.BindEnv("state_dir", "DCX_STATE_DIR"); err != nil {
		return nil, fmt.Errorf("failed to bind state_dir env: %w", err)
	}
	if err := viper.BindEnv("log_level", "DCX_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind log_level env: %w", err)
	}
	if err := viper.BindEnv("log_dir", "DCX_LOG_DIR"); err != nil {
		return nil, fmt.Errorf("failed to bind log_dir env: %w", err)
	}
	if err := viper.BindEnv("fetch_retries", "DCX_FETCH_RETRIES"); err != nil {
		return nil, fmt.Errorf("failed to bind fetch_retries env: %w", err)
	}
	if err := viper.BindEnv("catalog_git", "DCX_CATALOG_GIT"); err != nil {
		return nil, fmt.Errorf("failed to bind catalog_git env: %w", err)
	}
	// Set defaults
	defaults := DefaultConfig()
	viper.SetDefault("default_dialect", defaults.DefaultDialect)
	viper.SetDefault("catalog_dir", defaults.CatalogDir)
	viper.SetDefault("state_dir", defaults.StateDir)
	viper.SetDefault("log_level", defaults.LogLevel)
	viper.SetDefault("fetch_retries", defaults.FetchRetries)
	viper.SetDefault("catalog_git", defaults.CatalogGit)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}
