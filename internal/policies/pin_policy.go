package policies

import (
	"reqtool/internal/shared"
	"reqtool/internal/types"
)

// PinPolicy decides how the linter treats requirements that are not
// pinned to an exact version.
type PinPolicy struct {
	require map[string]struct{}
	allow   map[string]struct{}
}

// NewPinPolicy builds a policy from package name lists: require names
// must carry an exact pin (error when they do not), allow names may
// float silently. Everything else gets a warning when unpinned.
func NewPinPolicy(require []string, allow []string) PinPolicy {
	policy := PinPolicy{
		require: map[string]struct{}{},
		allow:   map[string]struct{}{},
	}
	for _, name := range require {
		policy.require[shared.NormalizeName(name)] = struct{}{}
	}
	for _, name := range allow {
		policy.allow[shared.NormalizeName(name)] = struct{}{}
	}
	return policy
}

// Evaluate returns the severity of an unpinned-requirement finding
// and whether one should be emitted at all.
func (p PinPolicy) Evaluate(req types.Requirement) (types.Severity, bool) {
	if req.Pinned() {
		return "", false
	}
	if _, ok := p.require[req.Canonical]; ok {
		return types.SeverityError, true
	}
	if _, ok := p.allow[req.Canonical]; ok {
		return "", false
	}
	return types.SeverityWarning, true
}
