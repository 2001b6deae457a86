package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqtool/internal/policies"
	"reqtool/internal/types"
)

func mustRequirement(t *testing.T, raw string, source string, line int) types.Requirement {
	t.Helper()
	req, err := ParseRequirementLine(raw, source, line)
	require.NoError(t, err)
	return req
}

func TestLintCleanManifest(t *testing.T) {
	linter := NewLinter(policies.NewPinPolicy(nil, nil))
	manifest := types.Manifest{
		Path: "requirements.txt",
		Requirements: []types.Requirement{
			mustRequirement(t, "pyfits==3.2", "requirements.txt", 1),
			mustRequirement(t, "fitsio==0.9.6", "requirements.txt", 2),
		},
	}

	report := linter.Lint([]types.Manifest{manifest}, nil)
	assert.Empty(t, report.Findings)
	assert.Empty(t, report.Errors())
}

func TestLintUnpinnedWarning(t *testing.T) {
	linter := NewLinter(policies.NewPinPolicy(nil, nil))
	manifest := types.Manifest{
		Path: "requirements.txt",
		Requirements: []types.Requirement{
			mustRequirement(t, "scipy>=0.12.0", "requirements.txt", 1),
		},
	}

	report := linter.Lint([]types.Manifest{manifest}, nil)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, types.SeverityWarning, report.Findings[0].Severity)
	assert.Equal(t, types.FindingUnpinned, report.Findings[0].Code)
	assert.Contains(t, report.Findings[0].Message, "scipy")
}

func TestLintRequirePinnedEscalates(t *testing.T) {
	linter := NewLinter(policies.NewPinPolicy([]string{"scipy"}, nil))
	manifest := types.Manifest{
		Path: "requirements.txt",
		Requirements: []types.Requirement{
			mustRequirement(t, "scipy>=0.12.0", "requirements.txt", 1),
		},
	}

	report := linter.Lint([]types.Manifest{manifest}, nil)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, types.SeverityError, report.Findings[0].Severity)
	require.Equal(t, 1, report.Errors())
}

func TestLintAllowFloatingSuppresses(t *testing.T) {
	linter := NewLinter(policies.NewPinPolicy(nil, []string{"SciPy"}))
	manifest := types.Manifest{
		Path: "requirements.txt",
		Requirements: []types.Requirement{
			mustRequirement(t, "scipy>=0.12.0", "requirements.txt", 1),
		},
	}

	report := linter.Lint([]types.Manifest{manifest}, nil)
	assert.Empty(t, report.Findings)
}

func TestLintDuplicateWarning(t *testing.T) {
	linter := NewLinter(policies.NewPinPolicy(nil, []string{"scipy"}))
	manifests := []types.Manifest{
		{
			Path: "pre-requirements.txt",
			Requirements: []types.Requirement{
				mustRequirement(t, "scipy>=0.12.0", "pre-requirements.txt", 1),
			},
		},
		{
			Path: "requirements.txt",
			Requirements: []types.Requirement{
				mustRequirement(t, "SciPy>=0.12.0", "requirements.txt", 3),
			},
		},
	}

	report := linter.Lint(manifests, nil)
	require.Len(t, report.Findings, 1)
	finding := report.Findings[0]
	assert.Equal(t, types.SeverityWarning, finding.Severity)
	assert.Equal(t, types.FindingDuplicate, finding.Code)
	assert.Equal(t, "requirements.txt", finding.Path)
	assert.Contains(t, finding.Message, "pre-requirements.txt:1")
}

func TestLintConflictingPins(t *testing.T) {
	linter := NewLinter(policies.NewPinPolicy(nil, nil))
	manifests := []types.Manifest{
		{
			Path: "pre-requirements.txt",
			Requirements: []types.Requirement{
				mustRequirement(t, "pyfits==3.2", "pre-requirements.txt", 1),
			},
		},
		{
			Path: "requirements.txt",
			Requirements: []types.Requirement{
				mustRequirement(t, "pyfits==3.3", "requirements.txt", 2),
			},
		},
	}

	report := linter.Lint(manifests, nil)
	require.Len(t, report.Findings, 1)
	finding := report.Findings[0]
	assert.Equal(t, types.SeverityError, finding.Severity)
	assert.Equal(t, types.FindingConflict, finding.Code)
	assert.Contains(t, finding.Message, "==3.3")
	assert.Contains(t, finding.Message, "==3.2")
}

func TestLintCarriesParseFindings(t *testing.T) {
	linter := NewLinter(policies.NewPinPolicy(nil, nil))
	parseFindings := []types.Finding{{
		Severity: types.SeverityError,
		Code:     types.FindingSyntax,
		Path:     "requirements.txt",
		Line:     4,
		Message:  "missing version after \"==\"",
	}}

	report := linter.Lint(nil, parseFindings)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, types.FindingSyntax, report.Findings[0].Code)
}

func TestLintFindingsSortedByPathAndLine(t *testing.T) {
	linter := NewLinter(policies.NewPinPolicy(nil, nil))
	manifests := []types.Manifest{
		{
			Path: "b-requirements.txt",
			Requirements: []types.Requirement{
				mustRequirement(t, "pyraf", "b-requirements.txt", 5),
			},
		},
		{
			Path: "a-requirements.txt",
			Requirements: []types.Requirement{
				mustRequirement(t, "scipy>=0.12.0", "a-requirements.txt", 9),
				mustRequirement(t, "mock>=1.0.1", "a-requirements.txt", 2),
			},
		},
	}

	report := linter.Lint(manifests, nil)
	require.Len(t, report.Findings, 3)
	assert.Equal(t, "a-requirements.txt", report.Findings[0].Path)
	assert.Equal(t, 2, report.Findings[0].Line)
	assert.Equal(t, 9, report.Findings[1].Line)
	assert.Equal(t, "b-requirements.txt", report.Findings[2].Path)
}
