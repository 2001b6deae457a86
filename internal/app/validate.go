package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"reqtool/internal/adapters"
	"reqtool/internal/core"
	"reqtool/internal/policies"
)

// Validate parses the selected manifests and lints them: grammar of
// every entry, duplicate declarations, comparator validity, and pin
// policy. The full report is returned; deciding whether errors are
// fatal is the caller's concern.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	manifests, parseFindings, err := s.loadManifests(req.Selection)
	if err != nil {
		return ValidateResult{}, err
	}
	linter := core.NewLinter(policies.NewPinPolicy(req.RequirePinned, req.AllowFloating))
	report := linter.Lint(manifests, parseFindings)
	log.Ctx(ctx).Debug().
		Int("manifests", len(manifests)).
		Int("errors", report.Errors()).
		Int("warnings", report.Warnings()).
		Msg("validation completed")

	if req.OutputDir != "" {
		output := adapters.NewOutputFileAdapter(req.OutputDir)
		if err := output.WriteReport(report); err != nil {
			return ValidateResult{}, err
		}
	}
	return ValidateResult{
		Manifests: len(manifests),
		Report:    report,
	}, nil
}
