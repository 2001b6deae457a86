package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqtool/internal/adapters"
	"reqtool/internal/core"
	"reqtool/internal/types"
)

// Lock pins every requirement to the highest index version that
// satisfies all of its specifiers and writes the result as a pinned
// requirements file.
func (s Service) Lock(ctx context.Context, req LockRequest) (LockResult, error) {
	indexPath := strings.TrimSpace(req.IndexPath)
	if indexPath == "" {
		return LockResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package index file is required")
	}
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return LockResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}

	manifests, parseFindings, err := s.loadManifests(req.Selection)
	if err != nil {
		return LockResult{}, err
	}
	if err := requireClean(parseFindings); err != nil {
		return LockResult{}, err
	}
	merged, err := core.MergeManifests(manifests)
	if err != nil {
		return LockResult{}, err
	}

	index := adapters.NewIndexFileAdapter(indexPath)
	var entries []types.LockEntry
	for _, requirement := range merged.Requirements {
		available, err := index.AvailableVersions(requirement.Canonical)
		if err != nil {
			return LockResult{}, err
		}
		version, err := core.BestCompatibleVersion(requirement, available)
		if err != nil {
			return LockResult{}, err
		}
		entries = append(entries, types.LockEntry{
			Package: requirement.Canonical,
			Version: version,
		})
	}

	output := adapters.NewOutputFileAdapter(outputDir)
	if err := output.WriteLock(entries); err != nil {
		return LockResult{}, err
	}
	log.Ctx(ctx).Debug().Int("locked", len(entries)).Msg("lock completed")
	return LockResult{Entries: entries, OutputDir: outputDir}, nil
}
