package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqtool/internal/types"
)

func TestMergeManifestsKeepsFirstPosition(t *testing.T) {
	pre := planManifest(t, "pre-requirements.txt", "numpy>=1.7", "astropy==0.4.2")
	main := planManifest(t, "requirements.txt", "scipy>=0.12.0", "numpy<2.0")

	merged, err := MergeManifests([]types.Manifest{pre, main})
	require.NoError(t, err)
	assert.Equal(t, "pre-requirements.txt", merged.Path)
	require.Len(t, merged.Requirements, 3)
	assert.Equal(t, "numpy", merged.Requirements[0].Name)
	assert.Equal(t, "astropy", merged.Requirements[1].Name)
	assert.Equal(t, "scipy", merged.Requirements[2].Name)
}

func TestMergeManifestsUnionsSpecifiers(t *testing.T) {
	pre := planManifest(t, "pre-requirements.txt", "numpy>=1.7")
	main := planManifest(t, "requirements.txt", "numpy<2.0")

	merged, err := MergeManifests([]types.Manifest{pre, main})
	require.NoError(t, err)
	require.Len(t, merged.Requirements, 1)
	assert.Equal(t, "numpy>=1.7,<2.0", FormatRequirement(merged.Requirements[0]))
}

func TestMergeManifestsDropsRepeatedSpecifier(t *testing.T) {
	pre := planManifest(t, "pre-requirements.txt", "numpy>=1.7")
	main := planManifest(t, "requirements.txt", "numpy>=1.7")

	merged, err := MergeManifests([]types.Manifest{pre, main})
	require.NoError(t, err)
	require.Len(t, merged.Requirements, 1)
	assert.Len(t, merged.Requirements[0].Specifiers, 1)
}

func TestMergeManifestsUnionsExtras(t *testing.T) {
	pre := planManifest(t, "pre-requirements.txt", "fitsio[full]==0.9.6")
	main := planManifest(t, "requirements.txt", "fitsio[dev]==0.9.6")

	merged, err := MergeManifests([]types.Manifest{pre, main})
	require.NoError(t, err)
	require.Len(t, merged.Requirements, 1)
	assert.Equal(t, []string{"full", "dev"}, merged.Requirements[0].Extras)
}

func TestMergeManifestsConflictingPins(t *testing.T) {
	pre := planManifest(t, "pre-requirements.txt", "pyfits==3.2")
	main := planManifest(t, "requirements.txt", "pyfits==3.3")

	_, err := MergeManifests([]types.Manifest{pre, main})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conflicting pins for pyfits")
	assert.Contains(t, err.Error(), "pre-requirements.txt:1")
	assert.Contains(t, err.Error(), "requirements.txt:1")
}

func TestMergeManifestsAgreeingPins(t *testing.T) {
	pre := planManifest(t, "pre-requirements.txt", "pyfits==3.2")
	main := planManifest(t, "requirements.txt", "pyfits==3.2")

	merged, err := MergeManifests([]types.Manifest{pre, main})
	require.NoError(t, err)
	require.Len(t, merged.Requirements, 1)
}
