package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqtool/internal/shared"
	"reqtool/internal/types"
)

// opTokens is the ordered list of specifier operators tried during
// parsing. Longer tokens must precede shorter ones to avoid false
// matches (e.g. "===" before "==" before "=").
var opTokens = []types.SpecifierOp{
	types.SpecifierOpArbitrary,
	types.SpecifierOpEq,
	types.SpecifierOpGte,
	types.SpecifierOpLte,
	types.SpecifierOpCompat,
	types.SpecifierOpNe,
	types.SpecifierOpGt,
	types.SpecifierOpLt,
}

// namePattern is the PEP 508 package name grammar.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

// specifierChars are the characters that can open a version specifier.
const specifierChars = "=<>!~"

// ParseRequirementLine parses one non-comment manifest line into a
// Requirement: a package name, optional [extras], a comma-separated
// list of version specifiers, and an optional ";" environment marker.
// Inline comments have already been stripped by the manifest parser.
func ParseRequirementLine(raw string, source string, line int) (types.Requirement, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return types.Requirement{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty requirement")
	}

	marker := ""
	if idx := strings.Index(raw, ";"); idx >= 0 {
		marker = strings.TrimSpace(raw[idx+1:])
		raw = strings.TrimSpace(raw[:idx])
	}

	namePart := raw
	specPart := ""
	if idx := strings.IndexAny(raw, specifierChars); idx >= 0 {
		namePart = strings.TrimSpace(raw[:idx])
		specPart = strings.TrimSpace(raw[idx:])
	}

	name, extras, err := parseNameAndExtras(namePart, raw)
	if err != nil {
		return types.Requirement{}, err
	}

	var specifiers []types.Specifier
	if specPart != "" {
		specifiers, err = parseSpecifiers(specPart, raw)
		if err != nil {
			return types.Requirement{}, err
		}
	}

	return types.Requirement{
		Name:       name,
		Canonical:  shared.NormalizeName(name),
		Extras:     extras,
		Specifiers: specifiers,
		Marker:     marker,
		Source:     source,
		Line:       line,
	}, nil
}

func parseNameAndExtras(namePart string, raw string) (string, []string, error) {
	name := namePart
	var extras []string
	if idx := strings.Index(namePart, "["); idx >= 0 {
		end := strings.Index(namePart, "]")
		if end < idx {
			return "", nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unterminated extras in %q", raw))
		}
		name = strings.TrimSpace(namePart[:idx])
		for _, extra := range strings.Split(namePart[idx+1:end], ",") {
			extra = strings.TrimSpace(extra)
			if extra == "" {
				continue
			}
			extras = append(extras, shared.NormalizeName(extra))
		}
	}
	if name == "" {
		return "", nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("missing package name in %q", raw))
	}
	if !namePattern.MatchString(name) {
		return "", nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid package name %q", name))
	}
	return name, extras, nil
}

func parseSpecifiers(specPart string, raw string) ([]types.Specifier, error) {
	var out []types.Specifier
	for _, clause := range strings.Split(specPart, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("empty specifier clause in %q", raw))
		}
		spec, err := parseSpecifier(clause, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, spec)
	}
	return out, nil
}

func parseSpecifier(clause string, raw string) (types.Specifier, error) {
	for _, op := range opTokens {
		if !strings.HasPrefix(clause, string(op)) {
			continue
		}
		version := strings.TrimSpace(clause[len(op):])
		if version == "" {
			return types.Specifier{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("missing version after %q in %q", op, raw))
		}
		if strings.ContainsAny(version, specifierChars) {
			return types.Specifier{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("malformed version %q in %q", version, raw))
		}
		return types.Specifier{Op: op, Version: version}, nil
	}
	return types.Specifier{}, errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("unrecognized comparator in %q", clause))
}

// FormatRequirement renders a requirement back into manifest syntax.
func FormatRequirement(req types.Requirement) string {
	var builder strings.Builder
	builder.WriteString(req.Name)
	if len(req.Extras) > 0 {
		builder.WriteString("[")
		builder.WriteString(strings.Join(req.Extras, ","))
		builder.WriteString("]")
	}
	for i, spec := range req.Specifiers {
		if i > 0 {
			builder.WriteString(",")
		}
		builder.WriteString(string(spec.Op))
		builder.WriteString(spec.Version)
	}
	if req.Marker != "" {
		builder.WriteString(" ; ")
		builder.WriteString(req.Marker)
	}
	return builder.String()
}
