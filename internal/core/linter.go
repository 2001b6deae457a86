package core

import (
	"fmt"
	"sort"

	"reqtool/internal/policies"
	"reqtool/internal/types"
)

// Linter checks parsed manifests for the properties a requirements
// file must hold: every specifier set is valid PEP 440, no package is
// declared twice, pins do not contradict each other, and pinning
// follows the configured policy.
type Linter struct {
	Pins policies.PinPolicy
}

func NewLinter(pins policies.PinPolicy) Linter {
	return Linter{Pins: pins}
}

// Lint inspects manifests in order. Parse-stage findings may be
// passed in so the report covers the whole input in one pass.
func (l Linter) Lint(manifests []types.Manifest, parseFindings []types.Finding) types.LintReport {
	report := types.LintReport{}
	report.Findings = append(report.Findings, parseFindings...)

	type firstSeen struct {
		req  types.Requirement
		path string
	}
	seen := map[string]firstSeen{}
	cache := newVersionCache()

	for _, manifest := range manifests {
		for _, req := range manifest.Requirements {
			report.Findings = append(report.Findings, l.lintSpecifiers(req, cache)...)

			if severity, emit := l.Pins.Evaluate(req); emit {
				report.Findings = append(report.Findings, types.Finding{
					Severity: severity,
					Code:     types.FindingUnpinned,
					Path:     req.Source,
					Line:     req.Line,
					Message:  fmt.Sprintf("%s is not pinned to an exact version", req.Name),
				})
			}

			previous, duplicate := seen[req.Canonical]
			if !duplicate {
				seen[req.Canonical] = firstSeen{req: req, path: req.Source}
				continue
			}
			report.Findings = append(report.Findings, duplicateFinding(previous.req, req))
		}
	}

	sort.SliceStable(report.Findings, func(i, j int) bool {
		if report.Findings[i].Path != report.Findings[j].Path {
			return report.Findings[i].Path < report.Findings[j].Path
		}
		return report.Findings[i].Line < report.Findings[j].Line
	})
	return report
}

func (l Linter) lintSpecifiers(req types.Requirement, cache *versionCache) []types.Finding {
	set := SpecifierSet(req)
	if set == "" {
		return nil
	}
	if _, err := cache.specifiers(set); err != nil {
		return []types.Finding{{
			Severity: types.SeverityError,
			Code:     types.FindingSyntax,
			Path:     req.Source,
			Line:     req.Line,
			Message:  fmt.Sprintf("invalid version specifier %q for %s", set, req.Name),
		}}
	}
	return nil
}

func duplicateFinding(first types.Requirement, second types.Requirement) types.Finding {
	firstPin, firstPinned := exactPin(first)
	secondPin, secondPinned := exactPin(second)
	if firstPinned && secondPinned && firstPin != secondPin {
		return types.Finding{
			Severity: types.SeverityError,
			Code:     types.FindingConflict,
			Path:     second.Source,
			Line:     second.Line,
			Message: fmt.Sprintf("conflicting pins for %s: ==%s here, ==%s at %s:%d",
				second.Name, secondPin, firstPin, first.Source, first.Line),
		}
	}
	return types.Finding{
		Severity: types.SeverityWarning,
		Code:     types.FindingDuplicate,
		Path:     second.Source,
		Line:     second.Line,
		Message: fmt.Sprintf("duplicate requirement %s, first declared at %s:%d",
			second.Name, first.Source, first.Line),
	}
}

func exactPin(req types.Requirement) (string, bool) {
	for _, spec := range req.Specifiers {
		if spec.Op == types.SpecifierOpEq || spec.Op == types.SpecifierOpArbitrary {
			return spec.Version, true
		}
	}
	return "", false
}
