package adapters

import (
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqtool/internal/ports"
	"reqtool/internal/shared"
	"reqtool/internal/types"
)

// PipEnvironmentAdapter reads a pip freeze snapshot: one
// "name==version" pair per line. Editable installs and directives
// are skipped.
type PipEnvironmentAdapter struct {
	Path string
}

func NewPipEnvironmentAdapter(path string) PipEnvironmentAdapter {
	return PipEnvironmentAdapter{Path: path}
}

func (a PipEnvironmentAdapter) InstalledPackages() ([]types.InstalledPackage, error) {
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("environment snapshot not found").
			WithCause(err)
	}
	var packages []types.InstalledPackage
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "-") {
			log.Debug().Str("line", line).Msg("skipping non-package freeze line")
			continue
		}
		parts := strings.SplitN(line, "==", 2)
		if len(parts) != 2 {
			log.Debug().Str("line", line).Msg("skipping unparseable freeze line")
			continue
		}
		name := strings.TrimSpace(parts[0])
		packages = append(packages, types.InstalledPackage{
			Name:      name,
			Canonical: shared.NormalizeName(name),
			Version:   strings.TrimSpace(parts[1]),
		})
	}
	return packages, nil
}

var _ ports.EnvironmentPort = PipEnvironmentAdapter{}
