package ports

import (
	"reqtool/internal/core"
)

// ManifestPort loads and parses a requirements manifest, following
// any include directives it contains.
type ManifestPort interface {
	Load(path string) (core.ParsedManifest, error)
}

// ManifestDiscoveryPort finds requirements manifests under a root
// directory using glob patterns.
type ManifestDiscoveryPort interface {
	Discover(root string, patterns []string) ([]string, error)
}
