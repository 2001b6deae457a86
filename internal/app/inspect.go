package app

import (
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Inspect summarizes a previously written output directory. Files
// that were never produced are simply reported as absent.
func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	result := InspectResult{}

	locks, err := s.OutputReader.ReadLock(filepath.Join(outputDir, "requirements.lock"))
	if err != nil && errbuilder.CodeOf(err) != errbuilder.CodeNotFound {
		return InspectResult{}, err
	}
	result.LockEntries = locks

	plan, err := s.OutputReader.ReadPlan(filepath.Join(outputDir, "install.plan"))
	if err != nil && errbuilder.CodeOf(err) != errbuilder.CodeNotFound {
		return InspectResult{}, err
	}
	result.PlanSteps = plan.Steps

	report, err := s.OutputReader.ReadReport(filepath.Join(outputDir, "lint.report"))
	if err != nil && errbuilder.CodeOf(err) != errbuilder.CodeNotFound {
		return InspectResult{}, err
	}
	result.ReportErrors = report.Errors()
	result.ReportWarnings = report.Warnings()

	return result, nil
}
