package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqtool/internal/types"
)

// MergeManifests combines ordered manifests into a single manifest.
// A package declared more than once keeps its first position and
// accumulates the union of all its specifiers. Contradictory exact
// pins abort the merge.
func MergeManifests(manifests []types.Manifest) (types.Manifest, error) {
	merged := types.Manifest{}
	index := map[string]int{}
	for _, manifest := range manifests {
		if merged.Path == "" {
			merged.Path = manifest.Path
		}
		for _, req := range manifest.Requirements {
			at, ok := index[req.Canonical]
			if !ok {
				index[req.Canonical] = len(merged.Requirements)
				merged.Requirements = append(merged.Requirements, req)
				continue
			}
			existing := merged.Requirements[at]
			if err := checkPinAgreement(existing, req); err != nil {
				return types.Manifest{}, err
			}
			existing.Specifiers = mergeSpecifiers(existing.Specifiers, req.Specifiers)
			existing.Extras = mergeExtras(existing.Extras, req.Extras)
			merged.Requirements[at] = existing
		}
	}
	return merged, nil
}

func checkPinAgreement(first types.Requirement, second types.Requirement) error {
	firstPin, firstPinned := exactPin(first)
	secondPin, secondPinned := exactPin(second)
	if firstPinned && secondPinned && firstPin != secondPin {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("conflicting pins for %s: ==%s (%s:%d) vs ==%s (%s:%d)",
				first.Name, firstPin, first.Source, first.Line,
				secondPin, second.Source, second.Line))
	}
	return nil
}

func mergeExtras(existing []string, extra []string) []string {
	seen := map[string]struct{}{}
	for _, value := range existing {
		seen[value] = struct{}{}
	}
	for _, value := range extra {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		existing = append(existing, value)
	}
	return existing
}
