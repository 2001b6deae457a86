package ports

import (
	"context"

	"reqtool/internal/types"
)

// IndexPort answers which versions of a package are available.
type IndexPort interface {
	AvailableVersions(name string) ([]string, error)
}

// IndexBuildRequest configures a package index build from a remote
// simple index.
type IndexBuildRequest struct {
	SimpleIndex      string
	Packages         []string
	MaxPackages      int
	Workers          int
	User             string
	APIKey           string
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

type IndexBuilderPort interface {
	Build(ctx context.Context, request IndexBuildRequest) (types.PackageIndexFile, error)
}

type IndexWriterPort interface {
	Write(path string, index types.PackageIndexFile) error
}
