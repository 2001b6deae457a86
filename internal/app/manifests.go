package app

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqtool/internal/shared"
	"reqtool/internal/types"
)

// resolveSelection expands a manifest selection into concrete paths:
// discovered manifests first (sorted), then explicit paths in the
// order given. Explicit paths win ties so the caller's install order
// is preserved.
func (s Service) resolveSelection(selection ManifestSelection) ([]string, error) {
	var paths []string
	if strings.TrimSpace(selection.DiscoverRoot) != "" {
		discovered, err := s.Discovery.Discover(selection.DiscoverRoot, selection.Patterns)
		if err != nil {
			return nil, err
		}
		paths = append(paths, discovered...)
	}
	paths = append(paths, selection.Paths...)
	paths = shared.UniqueStrings(paths)
	if len(paths) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one manifest is required")
	}
	return paths, nil
}

// loadManifests loads every selected manifest, accumulating parse
// findings across files.
func (s Service) loadManifests(selection ManifestSelection) ([]types.Manifest, []types.Finding, error) {
	paths, err := s.resolveSelection(selection)
	if err != nil {
		return nil, nil, err
	}
	var manifests []types.Manifest
	var findings []types.Finding
	for _, path := range paths {
		parsed, err := s.Manifests.Load(path)
		if err != nil {
			return nil, nil, err
		}
		manifests = append(manifests, parsed.Manifest)
		findings = append(findings, parsed.Findings...)
	}
	return manifests, findings, nil
}

// requireClean rejects input whose parse stage produced any
// error-severity finding; operations that transform manifests must
// not run on half-parsed input.
func requireClean(findings []types.Finding) error {
	for _, finding := range findings {
		if finding.Severity == types.SeverityError {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("manifests contain errors, run validate for details")
		}
	}
	return nil
}
