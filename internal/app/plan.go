package app

import (
	"context"

	"reqtool/internal/adapters"
	"reqtool/internal/core"
	"reqtool/internal/policies"
)

// Plan computes the serial install order for the selected manifests
// and optionally writes it. Extra build-order edges from the request
// extend the built-in table.
func (s Service) Plan(ctx context.Context, req PlanRequest) (PlanResult, error) {
	manifests, parseFindings, err := s.loadManifests(req.Selection)
	if err != nil {
		return PlanResult{}, err
	}
	if err := requireClean(parseFindings); err != nil {
		return PlanResult{}, err
	}
	extraEdges, err := policies.ParseOrderEdges(req.InstallAfter)
	if err != nil {
		return PlanResult{}, err
	}
	planner := core.NewPlanner(policies.NewBuildOrderPolicy(extraEdges))
	plan, err := planner.Plan(ctx, manifests)
	if err != nil {
		return PlanResult{}, err
	}
	if req.OutputDir != "" {
		output := adapters.NewOutputFileAdapter(req.OutputDir)
		if err := output.WritePlan(plan); err != nil {
			return PlanResult{}, err
		}
	}
	return PlanResult{Plan: plan, OutputDir: req.OutputDir}, nil
}
