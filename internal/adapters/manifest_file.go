package adapters

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqtool/internal/core"
	"reqtool/internal/ports"
	"reqtool/internal/types"
)

// ManifestFileAdapter loads requirements manifests from disk and
// follows "-r" includes relative to the including file. Problems
// inside included files become findings rather than hard errors so a
// single load reports everything; only an unreadable top-level file
// aborts.
type ManifestFileAdapter struct{}

func NewManifestFileAdapter() ManifestFileAdapter {
	return ManifestFileAdapter{}
}

func (a ManifestFileAdapter) Load(path string) (core.ParsedManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.ParsedManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("manifest not found: %s", path)).
			WithCause(err)
	}
	visited := map[string]struct{}{}
	return a.parse(data, path, visited)
}

func (a ManifestFileAdapter) parse(data []byte, path string, visited map[string]struct{}) (core.ParsedManifest, error) {
	key := cleanPath(path)
	visited[key] = struct{}{}

	parsed, err := core.ParseManifest(bytes.NewReader(data), path)
	if err != nil {
		return core.ParsedManifest{}, err
	}
	result := core.ParsedManifest{
		Manifest: types.Manifest{Path: path},
		Findings: parsed.Findings,
	}

	type expansion struct {
		line         int
		requirements []types.Requirement
	}
	var expansions []expansion
	for _, include := range parsed.Includes {
		target := include.Path
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		if _, seen := visited[cleanPath(target)]; seen {
			result.Findings = append(result.Findings, types.Finding{
				Severity: types.SeverityError,
				Code:     types.FindingDirective,
				Path:     path,
				Line:     include.Line,
				Message:  fmt.Sprintf("include cycle via %s", include.Path),
			})
			continue
		}
		included, err := os.ReadFile(target)
		if err != nil {
			result.Findings = append(result.Findings, types.Finding{
				Severity: types.SeverityError,
				Code:     types.FindingDirective,
				Path:     path,
				Line:     include.Line,
				Message:  fmt.Sprintf("included manifest not found: %s", include.Path),
			})
			continue
		}
		nested, err := a.parse(included, target, visited)
		if err != nil {
			return core.ParsedManifest{}, err
		}
		expansions = append(expansions, expansion{
			line:         include.Line,
			requirements: nested.Manifest.Requirements,
		})
		result.Findings = append(result.Findings, nested.Findings...)
	}

	// Includes expand in place, as pip does: a "-r" on line N
	// contributes its requirements ahead of every entry written after
	// line N, so "install these first" files stay first.
	for _, req := range parsed.Manifest.Requirements {
		for len(expansions) > 0 && expansions[0].line < req.Line {
			result.Manifest.Requirements = append(result.Manifest.Requirements, expansions[0].requirements...)
			expansions = expansions[1:]
		}
		result.Manifest.Requirements = append(result.Manifest.Requirements, req)
	}
	for _, exp := range expansions {
		result.Manifest.Requirements = append(result.Manifest.Requirements, exp.requirements...)
	}
	return result, nil
}

func cleanPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

var _ ports.ManifestPort = ManifestFileAdapter{}
