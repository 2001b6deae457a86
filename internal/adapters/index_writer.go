package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	"reqtool/internal/ports"
	"reqtool/internal/types"
)

// IndexWriterAdapter persists a package index as yaml. Writes are
// atomic so a crashed build never leaves a truncated index behind.
type IndexWriterAdapter struct{}

func NewIndexWriterAdapter() IndexWriterAdapter {
	return IndexWriterAdapter{}
}

func (a IndexWriterAdapter) Write(path string, index types.PackageIndexFile) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output path is required")
	}
	data, err := yaml.Marshal(index)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal package index").
			WithCause(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create index directory").
			WithCause(err)
	}
	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write package index").
			WithCause(err)
	}
	return nil
}

var _ ports.IndexWriterPort = IndexWriterAdapter{}
