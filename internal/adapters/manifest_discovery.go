package adapters

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/bmatcuk/doublestar/v4"

	"reqtool/internal/ports"
	"reqtool/internal/shared"
)

// DefaultManifestPatterns match the usual requirements file naming:
// the main manifest plus role-suffixed variants (pre-requirements,
// requirements-dev, ...).
var DefaultManifestPatterns = []string{
	"**/requirements*.txt",
	"**/*-requirements.txt",
}

// ManifestDiscoveryAdapter walks a directory tree looking for
// requirements manifests by glob pattern.
type ManifestDiscoveryAdapter struct{}

func NewManifestDiscoveryAdapter() ManifestDiscoveryAdapter {
	return ManifestDiscoveryAdapter{}
}

func (a ManifestDiscoveryAdapter) Discover(root string, patterns []string) ([]string, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("discovery root is required")
	}
	if len(patterns) == 0 {
		patterns = DefaultManifestPatterns
	}
	fsys := os.DirFS(root)
	var matches []string
	for _, pattern := range patterns {
		found, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid manifest glob pattern: " + pattern).
				WithCause(err)
		}
		matches = append(matches, found...)
	}
	matches = shared.UniqueStrings(matches)
	sort.Strings(matches)
	joined := make([]string, 0, len(matches))
	for _, match := range matches {
		joined = append(joined, filepath.Join(root, match))
	}
	return joined, nil
}

var _ ports.ManifestDiscoveryPort = ManifestDiscoveryAdapter{}
