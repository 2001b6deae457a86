package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"

	"reqtool/internal/types"
)

// versionCache memoizes parsed PEP 440 versions and specifier sets to
// avoid repeated parsing during constraint evaluation and sorting.
type versionCache struct {
	versions map[string]pep440.Version
	specs    map[string]pep440.Specifiers
}

func newVersionCache() *versionCache {
	return &versionCache{
		versions: map[string]pep440.Version{},
		specs:    map[string]pep440.Specifiers{},
	}
}

func (c *versionCache) version(value string) (pep440.Version, error) {
	if parsed, ok := c.versions[value]; ok {
		return parsed, nil
	}
	parsed, err := pep440.Parse(value)
	if err != nil {
		return pep440.Version{}, err
	}
	c.versions[value] = parsed
	return parsed, nil
}

func (c *versionCache) specifiers(value string) (pep440.Specifiers, error) {
	if parsed, ok := c.specs[value]; ok {
		return parsed, nil
	}
	parsed, err := pep440.NewSpecifiers(value)
	if err != nil {
		return pep440.Specifiers{}, err
	}
	c.specs[value] = parsed
	return parsed, nil
}

// compare returns -1, 0, or 1 comparing two version strings. Returns
// 0 on parse errors.
func (c *versionCache) compare(a string, b string) int {
	v1, err := c.version(a)
	if err != nil {
		return 0
	}
	v2, err := c.version(b)
	if err != nil {
		return 0
	}
	return v1.Compare(v2)
}

// SpecifierSet renders a requirement's specifiers as a PEP 440
// specifier set string, e.g. ">=0.12.0, <2.0".
func SpecifierSet(req types.Requirement) string {
	var clauses []string
	for _, spec := range req.Specifiers {
		if spec.Op == types.SpecifierOpNone {
			continue
		}
		clauses = append(clauses, fmt.Sprintf("%s %s", spec.Op, spec.Version))
	}
	return strings.Join(clauses, ", ")
}

// Satisfies reports whether a version satisfies every specifier of
// the requirement. A requirement without specifiers accepts any
// parseable version.
func Satisfies(req types.Requirement, version string) (bool, error) {
	cache := newVersionCache()
	return satisfies(req, version, cache)
}

func satisfies(req types.Requirement, version string, cache *versionCache) (bool, error) {
	parsed, err := cache.version(version)
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid version %q for %s", version, req.Name)).
			WithCause(err)
	}
	set := SpecifierSet(req)
	if set == "" {
		return true, nil
	}
	specs, err := cache.specifiers(set)
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid specifier set %q for %s", set, req.Name)).
			WithCause(err)
	}
	return specs.Check(parsed), nil
}

// BestCompatibleVersion selects the highest version from available
// that satisfies all of the requirement's specifiers. Returns an
// error if no compatible version exists.
func BestCompatibleVersion(req types.Requirement, available []string) (string, error) {
	if len(available) == 0 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no available versions for %s", req.Name))
	}
	cache := newVersionCache()
	var candidates []string
	for _, version := range available {
		ok, err := satisfies(req, version, cache)
		if err != nil {
			return "", err
		}
		if ok {
			candidates = append(candidates, version)
		}
	}
	if len(candidates) == 0 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("no compatible version for %s", req.Name))
	}
	sort.Slice(candidates, func(i, j int) bool {
		return cache.compare(candidates[i], candidates[j]) > 0
	})
	return candidates[0], nil
}

// SortVersions orders version strings ascending by PEP 440 semantics,
// falling back to lexical order for unparseable values.
func SortVersions(versions []string) []string {
	sort.Slice(versions, func(i, j int) bool {
		vi, err := pep440.Parse(versions[i])
		if err != nil {
			return versions[i] < versions[j]
		}
		vj, err := pep440.Parse(versions[j])
		if err != nil {
			return versions[i] < versions[j]
		}
		return vi.Compare(vj) < 0
	})
	return versions
}
