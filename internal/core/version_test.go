package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqtool/internal/types"
)

// ---------------------------------------------------------------------------
// versionCache
// ---------------------------------------------------------------------------

func TestVersionCacheVersion(t *testing.T) {
	cache := newVersionCache()

	v1, err := cache.version("1.2.3")
	require.NoError(t, err)

	// Second call should hit cache
	v2, err := cache.version("1.2.3")
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
}

func TestVersionCacheVersionInvalid(t *testing.T) {
	cache := newVersionCache()
	_, err := cache.version("not-a-version!!!")
	require.Error(t, err)
}

func TestVersionCacheSpecifiers(t *testing.T) {
	cache := newVersionCache()

	s1, err := cache.specifiers(">=1.0, <2.0")
	require.NoError(t, err)

	s2, err := cache.specifiers(">=1.0, <2.0")
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
}

func TestVersionCacheSpecifiersInvalid(t *testing.T) {
	cache := newVersionCache()
	_, err := cache.specifiers(">>invalid<<")
	require.Error(t, err)
}

func TestVersionCacheCompare(t *testing.T) {
	cache := newVersionCache()

	assert.Equal(t, -1, cache.compare("1.0.0", "2.0.0"))
	assert.Equal(t, 0, cache.compare("1.0.0", "1.0.0"))
	assert.Equal(t, 1, cache.compare("2.0.0", "1.0.0"))

	// Parse errors compare equal
	assert.Equal(t, 0, cache.compare("not-valid!!!", "1.0.0"))
}

// ---------------------------------------------------------------------------
// SpecifierSet / Satisfies
// ---------------------------------------------------------------------------

func TestSpecifierSet(t *testing.T) {
	req := types.Requirement{
		Name: "scipy",
		Specifiers: []types.Specifier{
			{Op: types.SpecifierOpGte, Version: "0.12.0"},
			{Op: types.SpecifierOpLt, Version: "1.0"},
		},
	}
	assert.Equal(t, ">= 0.12.0, < 1.0", SpecifierSet(req))
}

func TestSpecifierSetEmpty(t *testing.T) {
	req := types.Requirement{Name: "pyraf"}
	assert.Equal(t, "", SpecifierSet(req))
}

func TestSatisfies(t *testing.T) {
	req := types.Requirement{
		Name: "scipy",
		Specifiers: []types.Specifier{
			{Op: types.SpecifierOpGte, Version: "0.12.0"},
		},
	}

	ok, err := Satisfies(req, "0.14.0")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Satisfies(req, "0.11.0")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSatisfiesNoSpecifiers(t *testing.T) {
	req := types.Requirement{Name: "pyraf"}
	ok, err := Satisfies(req, "2.1.6")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSatisfiesInvalidVersion(t *testing.T) {
	req := types.Requirement{Name: "scipy"}
	_, err := Satisfies(req, "not-a-version!!!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid version")
}

// ---------------------------------------------------------------------------
// BestCompatibleVersion
// ---------------------------------------------------------------------------

func TestBestCompatibleVersionNoAvailable(t *testing.T) {
	req := types.Requirement{Name: "scipy"}
	_, err := BestCompatibleVersion(req, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no available versions")
}

func TestBestCompatibleVersionNoSpecifiers(t *testing.T) {
	req := types.Requirement{Name: "scipy"}
	version, err := BestCompatibleVersion(req, []string{"0.11.0", "0.14.0", "0.12.0"})
	require.NoError(t, err)
	// Should pick the highest
	assert.Equal(t, "0.14.0", version)
}

func TestBestCompatibleVersionWithSpecifier(t *testing.T) {
	req := types.Requirement{
		Name: "matplotlib",
		Specifiers: []types.Specifier{
			{Op: types.SpecifierOpLte, Version: "1.2.1"},
		},
	}
	version, err := BestCompatibleVersion(req, []string{"1.2.0", "1.2.1", "1.4.2"})
	require.NoError(t, err)
	assert.Equal(t, "1.2.1", version)
}

func TestBestCompatibleVersionPinExact(t *testing.T) {
	req := types.Requirement{
		Name: "pyfits",
		Specifiers: []types.Specifier{
			{Op: types.SpecifierOpEq, Version: "3.2"},
		},
	}
	version, err := BestCompatibleVersion(req, []string{"3.1", "3.2", "3.3"})
	require.NoError(t, err)
	assert.Equal(t, "3.2", version)
}

func TestBestCompatibleVersionNoMatch(t *testing.T) {
	req := types.Requirement{
		Name: "scipy",
		Specifiers: []types.Specifier{
			{Op: types.SpecifierOpGte, Version: "5.0.0"},
		},
	}
	_, err := BestCompatibleVersion(req, []string{"0.12.0", "0.14.0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no compatible version")
}

// ---------------------------------------------------------------------------
// SortVersions
// ---------------------------------------------------------------------------

func TestSortVersions(t *testing.T) {
	sorted := SortVersions([]string{"1.10.0", "1.2.0", "1.9.1"})
	assert.Equal(t, []string{"1.2.0", "1.9.1", "1.10.0"}, sorted)
}

func TestSortVersionsUnparseableFallsBackToLexical(t *testing.T) {
	sorted := SortVersions([]string{"zzz", "abc", "1.0"})
	assert.Equal(t, []string{"1.0", "abc", "zzz"}, sorted)
}
