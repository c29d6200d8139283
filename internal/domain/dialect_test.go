package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDialect(t *testing.T) {
	t.Run("Should accept known dialects", func(t *testing.T) {
		d, err := ParseDialect("teradata")
		require.NoError(t, err)
		assert.Equal(t, DialectTeradata, d)
		d, err = ParseDialect("oracle")
		require.NoError(t, err)
		assert.Equal(t, DialectOracle, d)
	})
	t.Run("Should normalize case and whitespace", func(t *testing.T) {
		d, err := ParseDialect("  TerADAta ")
		require.NoError(t, err)
		assert.Equal(t, DialectTeradata, d)
	})
	t.Run("Should accept tsql as an alias for sqlserver", func(t *testing.T) {
		d, err := ParseDialect("tsql")
		require.NoError(t, err)
		assert.Equal(t, DialectSQLServer, d)
	})
	t.Run("Should treat an empty name as unknown", func(t *testing.T) {
		d, err := ParseDialect("")
		require.NoError(t, err)
		assert.Equal(t, DialectUnknown, d)
	})
	t.Run("Should reject unsupported names", func(t *testing.T) {
		_, err := ParseDialect("cobol")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported dialect")
	})
}

func TestDialect_ServerType(t *testing.T) {
	t.Run("Should map dialects to server types", func(t *testing.T) {
		assert.Equal(t, "teradata", DialectTeradata.ServerType())
		assert.Equal(t, "oracle", DialectOracle.ServerType())
		assert.Equal(t, "", DialectUnknown.ServerType())
	})
}

func TestDialect_PhysicalTypeKey(t *testing.T) {
	t.Run("Should provide dialect-specific config keys", func(t *testing.T) {
		assert.Equal(t, "teradataType", DialectTeradata.PhysicalTypeKey())
		assert.Equal(t, "oracleType", DialectOracle.PhysicalTypeKey())
	})
	t.Run("Should fall back to the generic key", func(t *testing.T) {
		assert.Equal(t, "physicalType", DialectUnknown.PhysicalTypeKey())
	})
}

func TestKnownDialects(t *testing.T) {
	t.Run("Should include every configured dialect", func(t *testing.T) {
		names := KnownDialects()
		assert.Len(t, names, 9)
		assert.Contains(t, names, "teradata")
		assert.Contains(t, names, "snowflake")
	})
}
