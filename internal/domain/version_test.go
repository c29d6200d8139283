package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContractVersion(t *testing.T) {
	t.Run("Should parse a semantic version", func(t *testing.T) {
		v, err := NewContractVersion("1.2.3")
		require.NoError(t, err)
		assert.Equal(t, "1.2.3", v.String())
	})
	t.Run("Should reject non-semver strings", func(t *testing.T) {
		_, err := NewContractVersion("latest")
		require.Error(t, err)
	})
}

func TestContractVersion_Bumps(t *testing.T) {
	v, err := NewContractVersion("1.2.3")
	require.NoError(t, err)
	t.Run("Should bump the major version", func(t *testing.T) {
		assert.Equal(t, "2.0.0", v.BumpMajor().String())
	})
	t.Run("Should bump the minor version", func(t *testing.T) {
		assert.Equal(t, "1.3.0", v.BumpMinor().String())
	})
	t.Run("Should bump the patch version", func(t *testing.T) {
		assert.Equal(t, "1.2.4", v.BumpPatch().String())
	})
}

func TestContractVersion_Compare(t *testing.T) {
	t.Run("Should order versions", func(t *testing.T) {
		older, err := NewContractVersion("0.0.1")
		require.NoError(t, err)
		newer, err := NewContractVersion("1.0.0")
		require.NoError(t, err)
		assert.Equal(t, -1, older.Compare(newer))
		assert.Equal(t, 1, newer.Compare(older))
		assert.Equal(t, 0, older.Compare(older))
	})
}
