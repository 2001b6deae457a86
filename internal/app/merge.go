package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqtool/internal/adapters"
	"reqtool/internal/core"
)

// Merge combines the selected manifests into one, first-declared
// order preserved and specifiers unioned per package.
func (s Service) Merge(ctx context.Context, req MergeRequest) (MergeResult, error) {
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return MergeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	manifests, parseFindings, err := s.loadManifests(req.Selection)
	if err != nil {
		return MergeResult{}, err
	}
	if err := requireClean(parseFindings); err != nil {
		return MergeResult{}, err
	}
	merged, err := core.MergeManifests(manifests)
	if err != nil {
		return MergeResult{}, err
	}
	output := adapters.NewOutputFileAdapter(outputDir)
	if err := output.WriteManifest(merged); err != nil {
		return MergeResult{}, err
	}
	return MergeResult{Merged: merged, OutputDir: outputDir}, nil
}
