package app

import "reqtool/internal/types"

// ManifestSelection names the manifests an operation works on:
// explicit paths (in install order, the pre-manifest first) and/or a
// discovery root with glob patterns.
type ManifestSelection struct {
	Paths        []string
	DiscoverRoot string
	Patterns     []string
}

type ValidateRequest struct {
	Selection     ManifestSelection
	RequirePinned []string
	AllowFloating []string
	OutputDir     string
}

type ValidateResult struct {
	Manifests int
	Report    types.LintReport
}

type PlanRequest struct {
	Selection    ManifestSelection
	InstallAfter []string
	OutputDir    string
}

type PlanResult struct {
	Plan      types.InstallPlan
	OutputDir string
}

type LockRequest struct {
	Selection ManifestSelection
	IndexPath string
	OutputDir string
}

type LockResult struct {
	Entries   []types.LockEntry
	OutputDir string
}

type MergeRequest struct {
	Selection ManifestSelection
	OutputDir string
}

type MergeResult struct {
	Merged    types.Manifest
	OutputDir string
}

type CheckRequest struct {
	Selection   ManifestSelection
	Environment string
	Kind        types.EnvironmentKind
	DpkgPrefix  string
}

type CheckResult struct {
	Checked  int
	Findings []types.Finding
}

type IndexRequest struct {
	Output           string
	SimpleIndex      string
	Packages         []string
	MaxPackages      int
	Workers          int
	User             string
	APIKey           string
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

type IndexResult struct {
	OutputPath string
	Packages   int
}

type InspectRequest struct {
	OutputDir string
}

type InspectResult struct {
	LockEntries    []types.LockEntry
	PlanSteps      []types.InstallStep
	ReportErrors   int
	ReportWarnings int
}
