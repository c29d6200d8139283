package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Run("Should provide sane defaults", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.Equal(t, "teradata", cfg.DefaultDialect)
		assert.Equal(t, ".dcx-catalog", cfg.CatalogDir)
		assert.Equal(t, ".dcx-state", cfg.StateDir)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, 3, cfg.FetchRetries)
		assert.True(t, cfg.CatalogGit)
		assert.NoError(t, cfg.Validate())
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("Should accept an empty default dialect", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.DefaultDialect = ""
		assert.NoError(t, cfg.Validate())
	})
	t.Run("Should reject an unsupported dialect", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.DefaultDialect = "cobol"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid default_dialect")
	})
	t.Run("Should reject an empty catalog dir", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.CatalogDir = ""
		require.Error(t, cfg.Validate())
	})
	t.Run("Should reject path traversal in directories", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.CatalogDir = "../outside"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "path traversal")

		cfg = DefaultConfig()
		cfg.StateDir = "../../outside"
		require.Error(t, cfg.Validate())
	})
	t.Run("Should reject an unknown log level", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.LogLevel = "verbose"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log_level")
	})
	t.Run("Should bound fetch retries", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.FetchRetries = -1
		require.Error(t, cfg.Validate())
		cfg.FetchRetries = 11
		require.Error(t, cfg.Validate())
		cfg.FetchRetries = 0
		assert.NoError(t, cfg.Validate())
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("Should load defaults without a config file", func(t *testing.T) {
		viper.Reset()
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "teradata", cfg.DefaultDialect)
		assert.Equal(t, ".dcx-catalog", cfg.CatalogDir)
	})
	t.Run("Should honor environment overrides", func(t *testing.T) {
		viper.Reset()
		t.Setenv("DCX_DEFAULT_DIALECT", "oracle")
		t.Setenv("DCX_CATALOG_DIR", "contracts")
		t.Setenv("DCX_LOG_LEVEL", "debug")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "oracle", cfg.DefaultDialect)
		assert.Equal(t, "contracts", cfg.CatalogDir)
		assert.Equal(t, "debug", cfg.LogLevel)
	})
	t.Run("Should reject invalid environment values", func(t *testing.T) {
		viper.Reset()
		t.Setenv("DCX_LOG_LEVEL", "shouting")
		_, err := LoadConfig()
		require.Error(t, err)
	})
}
