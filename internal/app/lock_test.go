package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqtool/internal/types"
)

const lockTestIndex = `packages:
  numpy:
    - "1.6.2"
    - "1.7.0"
    - "1.9.1"
  scipy:
    - "0.11.0"
    - "0.12.0"
    - "0.14.0"
  pyfits:
    - "3.1"
    - "3.2"
    - "3.3"
`

func TestLockApp(t *testing.T) {
	dir := t.TempDir()
	manifest := writeManifest(t, dir, "requirements.txt", "scipy>=0.12.0\npyfits==3.2\nnumpy>=1.7,<1.9\n")
	index := writeManifest(t, dir, "package-index.yaml", lockTestIndex)
	outDir := filepath.Join(dir, "out")

	service := NewService()
	result, err := service.Lock(context.Background(), LockRequest{
		Selection: ManifestSelection{Paths: []string{manifest}},
		IndexPath: index,
		OutputDir: outDir,
	})
	require.NoError(t, err)
	assert.Equal(t, []types.LockEntry{
		{Package: "scipy", Version: "0.14.0"},
		{Package: "pyfits", Version: "3.2"},
		{Package: "numpy", Version: "1.7.0"},
	}, result.Entries)

	data, err := os.ReadFile(filepath.Join(outDir, "requirements.lock"))
	require.NoError(t, err)
	assert.Equal(t, "numpy==1.7.0\npyfits==3.2\nscipy==0.14.0\n", string(data))
}

func TestLockAppNoCompatibleVersion(t *testing.T) {
	dir := t.TempDir()
	manifest := writeManifest(t, dir, "requirements.txt", "scipy>=5.0\n")
	index := writeManifest(t, dir, "package-index.yaml", lockTestIndex)

	service := NewService()
	_, err := service.Lock(context.Background(), LockRequest{
		Selection: ManifestSelection{Paths: []string{manifest}},
		IndexPath: index,
		OutputDir: filepath.Join(dir, "out"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no compatible version for scipy")
}

func TestLockAppUnknownPackage(t *testing.T) {
	dir := t.TempDir()
	manifest := writeManifest(t, dir, "requirements.txt", "pyraf>=2.1.6\n")
	index := writeManifest(t, dir, "package-index.yaml", lockTestIndex)

	service := NewService()
	_, err := service.Lock(context.Background(), LockRequest{
		Selection: ManifestSelection{Paths: []string{manifest}},
		IndexPath: index,
		OutputDir: filepath.Join(dir, "out"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no available versions for pyraf")
}

func TestLockAppRequiresIndex(t *testing.T) {
	service := NewService()
	_, err := service.Lock(context.Background(), LockRequest{OutputDir: "out"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package index file is required")
}

func TestLockAppRequiresOutputDir(t *testing.T) {
	service := NewService()
	_, err := service.Lock(context.Background(), LockRequest{IndexPath: "index.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output directory is required")
}

func TestLockAppMergesAcrossManifests(t *testing.T) {
	dir := t.TempDir()
	pre := writeManifest(t, dir, "pre-requirements.txt", "numpy>=1.7\n")
	main := writeManifest(t, dir, "requirements.txt", "numpy<1.9\n")
	index := writeManifest(t, dir, "package-index.yaml", lockTestIndex)

	service := NewService()
	result, err := service.Lock(context.Background(), LockRequest{
		Selection: ManifestSelection{Paths: []string{pre, main}},
		IndexPath: index,
		OutputDir: filepath.Join(dir, "out"),
	})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "1.7.0", result.Entries[0].Version)
}
