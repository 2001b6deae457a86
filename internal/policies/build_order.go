// Package policies holds the rule tables that shape planning and
// linting: which packages must already be installed before another
// package's build script can run, and which requirements must be
// exact-pinned.
package policies

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqtool/internal/shared"
)

// defaultBuildOrder maps a canonical package name to the packages its
// build script imports at install time. Installing out of this order
// makes the dependent package's setup script fail, which is why the
// plan is strictly serial. Entries come from the scientific Python
// stack this tool was built around.
var defaultBuildOrder = map[string][]string{
	"scipy":           {"numpy"},
	"matplotlib":      {"numpy"},
	"pyfits":          {"numpy"},
	"fitsio":          {"numpy"},
	"montage-wrapper": {"numpy"},
	"uncertainties":   {"numpy"},
	"astropy":         {"numpy"},
	"pandas":          {"numpy"},
	"aplpy":           {"matplotlib"},
	"pyraf":           {"pyfits"},
}

// BuildOrderPolicy answers which packages must precede a given
// package in a serial install plan.
type BuildOrderPolicy struct {
	edges map[string][]string
}

// NewBuildOrderPolicy merges the built-in ordering table with extra
// user-supplied edges. Extra edges accumulate rather than replace.
func NewBuildOrderPolicy(extra map[string][]string) BuildOrderPolicy {
	edges := map[string][]string{}
	for name, after := range defaultBuildOrder {
		edges[name] = append([]string(nil), after...)
	}
	for name, after := range extra {
		canonical := shared.NormalizeName(name)
		for _, dep := range after {
			edges[canonical] = append(edges[canonical], shared.NormalizeName(dep))
		}
	}
	for name, after := range edges {
		edges[name] = shared.UniqueStrings(after)
	}
	return BuildOrderPolicy{edges: edges}
}

// InstallAfter returns the canonical names that must already be
// installed before the named package.
func (p BuildOrderPolicy) InstallAfter(canonical string) []string {
	return p.edges[canonical]
}

// ParseOrderEdges converts "pkg=dep" flag values into an edge map.
func ParseOrderEdges(values []string) (map[string][]string, error) {
	edges := map[string][]string{}
	for _, raw := range values {
		parts := strings.SplitN(raw, "=", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid install-after edge %q, expected pkg=dep", raw))
		}
		name := strings.TrimSpace(parts[0])
		edges[name] = append(edges[name], strings.TrimSpace(parts[1]))
	}
	return edges, nil
}
