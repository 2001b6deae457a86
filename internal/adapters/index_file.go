package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"reqtool/internal/ports"
	"reqtool/internal/shared"
	"reqtool/internal/types"
)

// IndexFileAdapter serves available package versions from a yaml
// package index, loading the file once and caching it.
type IndexFileAdapter struct {
	Path   string
	cached types.PackageIndexFile
	loaded bool
}

func NewIndexFileAdapter(path string) *IndexFileAdapter {
	return &IndexFileAdapter{Path: path}
}

func (a *IndexFileAdapter) AvailableVersions(name string) ([]string, error) {
	index, err := a.load()
	if err != nil {
		return nil, err
	}
	if versions, ok := index.Packages[name]; ok && len(versions) > 0 {
		return versions, nil
	}
	normalized := shared.NormalizeName(name)
	if normalized != name {
		return index.Packages[normalized], nil
	}
	return index.Packages[name], nil
}

func (a *IndexFileAdapter) load() (types.PackageIndexFile, error) {
	if a.loaded {
		return a.cached, nil
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return types.PackageIndexFile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("package index not found").
			WithCause(err)
	}
	var index types.PackageIndexFile
	if err := yaml.Unmarshal(data, &index); err != nil {
		return types.PackageIndexFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse package index yaml").
			WithCause(err)
	}
	a.cached = index
	a.loaded = true
	return index, nil
}

var _ ports.IndexPort = (*IndexFileAdapter)(nil)
