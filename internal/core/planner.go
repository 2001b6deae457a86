package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqtool/internal/policies"
	"reqtool/internal/types"
)

// Planner turns ordered manifests into a strictly serial install
// plan. Some packages' build scripts import other packages while
// installing, so the plan installs one package at a time and places
// every package after its build-time prerequisites.
type Planner struct {
	Order policies.BuildOrderPolicy
}

func NewPlanner(order policies.BuildOrderPolicy) Planner {
	return Planner{Order: order}
}

type planNode struct {
	req      types.Requirement
	position int
	after    []string
}

// Plan computes the install order. Manifests are taken in the order
// given: entries from earlier manifests keep their head start unless
// a build-order edge forces otherwise. Duplicate declarations are
// merged into one step carrying the union of the specifiers.
func (p Planner) Plan(ctx context.Context, manifests []types.Manifest) (types.InstallPlan, error) {
	nodes := map[string]*planNode{}
	var order []string
	position := 0
	for _, manifest := range manifests {
		for _, req := range manifest.Requirements {
			existing, ok := nodes[req.Canonical]
			if !ok {
				nodes[req.Canonical] = &planNode{req: req, position: position}
				order = append(order, req.Canonical)
				position++
				continue
			}
			existing.req.Specifiers = mergeSpecifiers(existing.req.Specifiers, req.Specifiers)
		}
	}

	for _, canonical := range order {
		node := nodes[canonical]
		for _, dep := range p.Order.InstallAfter(canonical) {
			if _, present := nodes[dep]; present {
				node.after = append(node.after, dep)
			}
		}
	}

	steps, err := serialize(nodes, order)
	if err != nil {
		return types.InstallPlan{}, err
	}
	log.Ctx(ctx).Debug().Int("steps", len(steps)).Msg("install plan computed")
	return types.InstallPlan{Steps: steps}, nil
}

// serialize is a Kahn topological sort that always picks the ready
// node with the lowest manifest position, keeping the plan
// deterministic and close to the written order.
func serialize(nodes map[string]*planNode, order []string) ([]types.InstallStep, error) {
	indegree := map[string]int{}
	dependents := map[string][]string{}
	for _, canonical := range order {
		indegree[canonical] = len(nodes[canonical].after)
		for _, dep := range nodes[canonical].after {
			dependents[dep] = append(dependents[dep], canonical)
		}
	}

	var steps []types.InstallStep
	placed := map[string]struct{}{}
	for len(steps) < len(order) {
		next := ""
		for _, canonical := range order {
			if _, done := placed[canonical]; done {
				continue
			}
			if indegree[canonical] != 0 {
				continue
			}
			next = canonical
			break
		}
		if next == "" {
			return nil, cycleError(nodes, order, placed)
		}
		placed[next] = struct{}{}
		node := nodes[next]
		steps = append(steps, types.InstallStep{
			Position:  len(steps) + 1,
			Name:      node.req.Name,
			Directive: FormatRequirement(node.req),
			After:     append([]string(nil), node.after...),
		})
		for _, dependent := range dependents[next] {
			indegree[dependent]--
		}
	}
	return steps, nil
}

func cycleError(nodes map[string]*planNode, order []string, placed map[string]struct{}) error {
	var remaining []string
	for _, canonical := range order {
		if _, done := placed[canonical]; !done {
			remaining = append(remaining, canonical)
		}
	}
	sort.Strings(remaining)
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("install order cycle among: %s", strings.Join(remaining, ", ")))
}

func mergeSpecifiers(existing []types.Specifier, extra []types.Specifier) []types.Specifier {
	seen := map[types.Specifier]struct{}{}
	for _, spec := range existing {
		seen[spec] = struct{}{}
	}
	for _, spec := range extra {
		if _, ok := seen[spec]; ok {
			continue
		}
		seen[spec] = struct{}{}
		existing = append(existing, spec)
	}
	return existing
}
