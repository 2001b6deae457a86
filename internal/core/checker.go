package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	debversion "github.com/knqyf263/go-deb-version"

	"reqtool/internal/types"
)

// EnvironmentChecker verifies that an installed environment satisfies
// a set of requirements. Pip environments carry PEP 440 versions;
// dpkg environments carry Debian version strings, which need Debian
// comparison semantics.
type EnvironmentChecker struct {
	Kind types.EnvironmentKind
}

func NewEnvironmentChecker(kind types.EnvironmentKind) EnvironmentChecker {
	return EnvironmentChecker{Kind: kind}
}

// Check returns one finding per requirement that is missing from the
// environment or installed at a version outside its specifiers.
func (c EnvironmentChecker) Check(requirements []types.Requirement, installed []types.InstalledPackage) ([]types.Finding, error) {
	byName := map[string]types.InstalledPackage{}
	for _, pkg := range installed {
		byName[pkg.Canonical] = pkg
	}
	cache := newVersionCache()

	var findings []types.Finding
	for _, req := range requirements {
		pkg, present := byName[req.Canonical]
		if !present {
			findings = append(findings, types.Finding{
				Severity: types.SeverityError,
				Code:     types.FindingMissing,
				Path:     req.Source,
				Line:     req.Line,
				Message:  fmt.Sprintf("%s is not installed", req.Name),
			})
			continue
		}
		ok, err := c.satisfied(req, pkg.Version, cache)
		if err != nil {
			return nil, err
		}
		if !ok {
			findings = append(findings, types.Finding{
				Severity: types.SeverityError,
				Code:     types.FindingMismatch,
				Path:     req.Source,
				Line:     req.Line,
				Message: fmt.Sprintf("%s %s does not satisfy %s",
					req.Name, pkg.Version, FormatRequirement(req)),
			})
		}
	}
	return findings, nil
}

func (c EnvironmentChecker) satisfied(req types.Requirement, version string, cache *versionCache) (bool, error) {
	switch c.Kind {
	case types.EnvironmentKindPip:
		return satisfies(req, version, cache)
	case types.EnvironmentKindDpkg:
		return satisfiesDeb(req, version)
	default:
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown environment kind %q", c.Kind))
	}
}

// satisfiesDeb checks a Debian version against every specifier using
// Debian comparison rules. The specifier versions themselves are
// plain upstream versions, which parse as Debian versions too.
func satisfiesDeb(req types.Requirement, version string) (bool, error) {
	v, err := debversion.NewVersion(version)
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid debian version %q for %s", version, req.Name)).
			WithCause(err)
	}
	for _, spec := range req.Specifiers {
		c, err := debversion.NewVersion(spec.Version)
		if err != nil {
			return false, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid specifier version %q for %s", spec.Version, req.Name)).
				WithCause(err)
		}
		switch spec.Op {
		case types.SpecifierOpEq, types.SpecifierOpArbitrary:
			if !v.Equal(c) {
				return false, nil
			}
		case types.SpecifierOpNe:
			if v.Equal(c) {
				return false, nil
			}
		case types.SpecifierOpGte:
			if v.LessThan(c) && !v.Equal(c) {
				return false, nil
			}
		case types.SpecifierOpCompat:
			if v.LessThan(c) && !v.Equal(c) {
				return false, nil
			}
			bound, err := compatUpperBound(spec.Version)
			if err != nil {
				return false, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("invalid compatible-release specifier %q for %s", spec.Version, req.Name)).
					WithCause(err)
			}
			upper, err := debversion.NewVersion(bound)
			if err != nil {
				return false, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("invalid compatible-release specifier %q for %s", spec.Version, req.Name)).
					WithCause(err)
			}
			if !v.LessThan(upper) {
				return false, nil
			}
		case types.SpecifierOpLte:
			if v.GreaterThan(c) && !v.Equal(c) {
				return false, nil
			}
		case types.SpecifierOpGt:
			if !v.GreaterThan(c) {
				return false, nil
			}
		case types.SpecifierOpLt:
			if !v.LessThan(c) {
				return false, nil
			}
		default:
			return false, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("unsupported specifier operator")
		}
	}
	return true, nil
}

// compatUpperBound derives the exclusive upper bound of a "~=" clause:
// the last release segment is dropped and the remaining one
// incremented, so "1.7.0" bounds at "1.8" and "1.7" bounds at "2".
func compatUpperBound(version string) (string, error) {
	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("need at least two release segments, got %q", version)
	}
	parts = parts[:len(parts)-1]
	last, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return "", fmt.Errorf("non-numeric release segment %q", parts[len(parts)-1])
	}
	parts[len(parts)-1] = strconv.Itoa(last + 1)
	return strings.Join(parts, "."), nil
}
