package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqtool/internal/types"
)

func installedPackage(name string, version string) types.InstalledPackage {
	return types.InstalledPackage{Name: name, Canonical: name, Version: version}
}

func TestCheckPipEnvironmentSatisfied(t *testing.T) {
	checker := NewEnvironmentChecker(types.EnvironmentKindPip)
	requirements := []types.Requirement{
		mustRequirement(t, "scipy>=0.12.0", "requirements.txt", 1),
		mustRequirement(t, "pyfits==3.2", "requirements.txt", 2),
	}
	installed := []types.InstalledPackage{
		installedPackage("scipy", "0.14.0"),
		installedPackage("pyfits", "3.2"),
	}

	findings, err := checker.Check(requirements, installed)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestCheckPipEnvironmentMissing(t *testing.T) {
	checker := NewEnvironmentChecker(types.EnvironmentKindPip)
	requirements := []types.Requirement{
		mustRequirement(t, "pyraf>=2.1.6", "requirements.txt", 5),
	}

	findings, err := checker.Check(requirements, nil)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, types.FindingMissing, findings[0].Code)
	assert.Equal(t, 5, findings[0].Line)
	assert.Contains(t, findings[0].Message, "pyraf is not installed")
}

func TestCheckPipEnvironmentMismatch(t *testing.T) {
	checker := NewEnvironmentChecker(types.EnvironmentKindPip)
	requirements := []types.Requirement{
		mustRequirement(t, "scipy>=0.12.0", "requirements.txt", 1),
	}
	installed := []types.InstalledPackage{
		installedPackage("scipy", "0.11.0"),
	}

	findings, err := checker.Check(requirements, installed)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, types.FindingMismatch, findings[0].Code)
	assert.Contains(t, findings[0].Message, "scipy 0.11.0 does not satisfy scipy>=0.12.0")
}

func TestCheckDpkgEnvironmentDebianRevisions(t *testing.T) {
	checker := NewEnvironmentChecker(types.EnvironmentKindDpkg)
	requirements := []types.Requirement{
		mustRequirement(t, "numpy>=1.7", "requirements.txt", 1),
	}
	installed := []types.InstalledPackage{
		installedPackage("numpy", "1.9.1-1"),
	}

	findings, err := checker.Check(requirements, installed)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestCheckDpkgEnvironmentMismatch(t *testing.T) {
	checker := NewEnvironmentChecker(types.EnvironmentKindDpkg)
	requirements := []types.Requirement{
		mustRequirement(t, "numpy>=1.7", "requirements.txt", 1),
	}
	installed := []types.InstalledPackage{
		installedPackage("numpy", "1.6.2-2"),
	}

	findings, err := checker.Check(requirements, installed)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, types.FindingMismatch, findings[0].Code)
}

func TestCheckUnknownEnvironmentKind(t *testing.T) {
	checker := NewEnvironmentChecker("rpm")
	requirements := []types.Requirement{
		mustRequirement(t, "numpy>=1.7", "requirements.txt", 1),
	}
	installed := []types.InstalledPackage{
		installedPackage("numpy", "1.9.1"),
	}

	_, err := checker.Check(requirements, installed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown environment kind")
}

// ---------------------------------------------------------------------------
// satisfiesDeb
// ---------------------------------------------------------------------------

func TestSatisfiesDebOperators(t *testing.T) {
	tests := []struct {
		raw     string
		version string
		expect  bool
	}{
		{"numpy==1.7.0", "1.7.0", true},
		{"numpy==1.7.0", "1.8.0", false},
		{"numpy!=1.7.0", "1.8.0", true},
		{"numpy!=1.7.0", "1.7.0", false},
		{"numpy>=1.7", "1.7", true},
		{"numpy>=1.7", "1.9.1-1", true},
		{"numpy>=1.7", "1.6.2", false},
		{"numpy<=1.7", "1.7", true},
		{"numpy<=1.7", "1.8", false},
		{"numpy>1.7", "1.8", true},
		{"numpy>1.7", "1.7", false},
		{"numpy<1.7", "1.6.2", true},
		{"numpy<1.7", "1.7", false},
		{"numpy~=1.7", "1.8", true},
		{"numpy~=1.7", "1.6", false},
		{"numpy~=1.7", "2.0", false},
		{"numpy~=1.7.0", "1.7.5", true},
		{"numpy~=1.7.0", "1.8.0", false},
		{"numpy~=1.7.0", "2.0.0", false},
		{"numpy~=1.7.0", "1.9.1-1", false},
	}

	for _, tt := range tests {
		req, err := ParseRequirementLine(tt.raw, "requirements.txt", 1)
		require.NoError(t, err, tt.raw)
		ok, err := satisfiesDeb(req, tt.version)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.expect, ok, "%s against %s", tt.raw, tt.version)
	}
}

func TestSatisfiesDebCompatNeedsTwoSegments(t *testing.T) {
	req := mustRequirement(t, "numpy~=2", "requirements.txt", 1)
	_, err := satisfiesDeb(req, "2.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid compatible-release specifier")
}

func TestSatisfiesDebInvalidVersion(t *testing.T) {
	req := mustRequirement(t, "numpy>=1.7", "requirements.txt", 1)
	_, err := satisfiesDeb(req, "!!bad!!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid debian version")
}
