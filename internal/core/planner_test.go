package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqtool/internal/policies"
	"reqtool/internal/types"
)

func planManifest(t *testing.T, path string, lines ...string) types.Manifest {
	t.Helper()
	manifest := types.Manifest{Path: path}
	for i, line := range lines {
		manifest.Requirements = append(manifest.Requirements, mustRequirement(t, line, path, i+1))
	}
	return manifest
}

func stepNames(plan types.InstallPlan) []string {
	var names []string
	for _, step := range plan.Steps {
		names = append(names, step.Name)
	}
	return names
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func TestPlanKeepsManifestOrderWithoutEdges(t *testing.T) {
	planner := NewPlanner(policies.NewBuildOrderPolicy(nil))
	manifest := planManifest(t, "requirements.txt", "lxml>=3.2.1", "mock>=1.0.1", "uncertainties>=2.4.6")

	plan, err := planner.Plan(context.Background(), []types.Manifest{manifest})
	require.NoError(t, err)
	// uncertainties->numpy edge drops out, numpy is not in the input
	assert.Equal(t, []string{"lxml", "mock", "uncertainties"}, stepNames(plan))
	assert.Equal(t, 1, plan.Steps[0].Position)
	assert.Equal(t, 3, plan.Steps[2].Position)
}

func TestPlanOrdersBuildDependenciesFirst(t *testing.T) {
	planner := NewPlanner(policies.NewBuildOrderPolicy(nil))
	manifest := planManifest(t, "requirements.txt",
		"APLpy>=0.9.9",
		"scipy>=0.12.0",
		"matplotlib>=1.2.1",
		"pyfits==3.2",
		"pyraf>=2.1.6",
		"numpy>=1.7",
	)

	plan, err := planner.Plan(context.Background(), []types.Manifest{manifest})
	require.NoError(t, err)
	names := stepNames(plan)
	require.Len(t, names, 6)

	assert.Less(t, indexOf(names, "numpy"), indexOf(names, "scipy"))
	assert.Less(t, indexOf(names, "numpy"), indexOf(names, "matplotlib"))
	assert.Less(t, indexOf(names, "numpy"), indexOf(names, "pyfits"))
	assert.Less(t, indexOf(names, "matplotlib"), indexOf(names, "APLpy"))
	assert.Less(t, indexOf(names, "pyfits"), indexOf(names, "pyraf"))
}

func TestPlanRecordsAfterEdges(t *testing.T) {
	planner := NewPlanner(policies.NewBuildOrderPolicy(nil))
	manifest := planManifest(t, "requirements.txt", "numpy>=1.7", "scipy>=0.12.0")

	plan, err := planner.Plan(context.Background(), []types.Manifest{manifest})
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)
	assert.Empty(t, plan.Steps[0].After)
	assert.Equal(t, []string{"numpy"}, plan.Steps[1].After)
	assert.Equal(t, "scipy>=0.12.0", plan.Steps[1].Directive)
}

func TestPlanEarlierManifestKeepsHeadStart(t *testing.T) {
	planner := NewPlanner(policies.NewBuildOrderPolicy(nil))
	pre := planManifest(t, "pre-requirements.txt", "numpy>=1.7")
	main := planManifest(t, "requirements.txt", "lxml>=3.2.1", "scipy>=0.12.0")

	plan, err := planner.Plan(context.Background(), []types.Manifest{pre, main})
	require.NoError(t, err)
	assert.Equal(t, []string{"numpy", "lxml", "scipy"}, stepNames(plan))
}

func TestPlanMergesDuplicateDeclarations(t *testing.T) {
	planner := NewPlanner(policies.NewBuildOrderPolicy(nil))
	pre := planManifest(t, "pre-requirements.txt", "numpy>=1.7")
	main := planManifest(t, "requirements.txt", "numpy<2.0")

	plan, err := planner.Plan(context.Background(), []types.Manifest{pre, main})
	require.NoError(t, err)
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, "numpy>=1.7,<2.0", plan.Steps[0].Directive)
}

func TestPlanExtraEdges(t *testing.T) {
	planner := NewPlanner(policies.NewBuildOrderPolicy(map[string][]string{
		"lxml": {"mock"},
	}))
	manifest := planManifest(t, "requirements.txt", "lxml>=3.2.1", "mock>=1.0.1")

	plan, err := planner.Plan(context.Background(), []types.Manifest{manifest})
	require.NoError(t, err)
	assert.Equal(t, []string{"mock", "lxml"}, stepNames(plan))
}

func TestPlanCycleFails(t *testing.T) {
	planner := NewPlanner(policies.NewBuildOrderPolicy(map[string][]string{
		"lxml": {"mock"},
		"mock": {"lxml"},
	}))
	manifest := planManifest(t, "requirements.txt", "lxml>=3.2.1", "mock>=1.0.1")

	_, err := planner.Plan(context.Background(), []types.Manifest{manifest})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "install order cycle among: lxml, mock")
}
