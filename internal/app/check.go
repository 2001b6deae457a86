package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqtool/internal/adapters"
	"reqtool/internal/core"
	"reqtool/internal/ports"
	"reqtool/internal/types"
)

// Check verifies that an installed environment snapshot satisfies the
// selected manifests.
func (s Service) Check(ctx context.Context, req CheckRequest) (CheckResult, error) {
	environment := strings.TrimSpace(req.Environment)
	if environment == "" {
		return CheckResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("environment snapshot path is required")
	}
	kind := req.Kind
	if kind == "" {
		kind = types.EnvironmentKindPip
	}

	manifests, parseFindings, err := s.loadManifests(req.Selection)
	if err != nil {
		return CheckResult{}, err
	}
	if err := requireClean(parseFindings); err != nil {
		return CheckResult{}, err
	}
	merged, err := core.MergeManifests(manifests)
	if err != nil {
		return CheckResult{}, err
	}

	var source ports.EnvironmentPort
	switch kind {
	case types.EnvironmentKindPip:
		source = adapters.NewPipEnvironmentAdapter(environment)
	case types.EnvironmentKindDpkg:
		source = adapters.NewDpkgEnvironmentAdapter(environment, req.DpkgPrefix)
	default:
		return CheckResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("environment kind must be pip or dpkg")
	}
	installed, err := source.InstalledPackages()
	if err != nil {
		return CheckResult{}, err
	}

	checker := core.NewEnvironmentChecker(kind)
	findings, err := checker.Check(merged.Requirements, installed)
	if err != nil {
		return CheckResult{}, err
	}
	log.Ctx(ctx).Debug().
		Int("checked", len(merged.Requirements)).
		Int("findings", len(findings)).
		Msg("environment check completed")
	return CheckResult{
		Checked:  len(merged.Requirements),
		Findings: findings,
	}, nil
}
