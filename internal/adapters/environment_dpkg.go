package adapters

import (
	"bufio"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqtool/internal/ports"
	"reqtool/internal/shared"
	"reqtool/internal/types"
)

const defaultDpkgPrefix = "python3-"

// DpkgEnvironmentAdapter reads a dpkg status file and reports the
// interpreter-prefixed packages it contains (python3-numpy and the
// like) under their canonical Python names.
type DpkgEnvironmentAdapter struct {
	Path   string
	Prefix string
}

func NewDpkgEnvironmentAdapter(path string, prefix string) DpkgEnvironmentAdapter {
	if strings.TrimSpace(prefix) == "" {
		prefix = defaultDpkgPrefix
	}
	return DpkgEnvironmentAdapter{Path: path, Prefix: prefix}
}

func (a DpkgEnvironmentAdapter) InstalledPackages() ([]types.InstalledPackage, error) {
	file, err := os.Open(a.Path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("dpkg status file not found").
			WithCause(err)
	}
	defer file.Close()

	var packages []types.InstalledPackage
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var name string
	var version string
	installed := false
	flush := func() {
		if name == "" || version == "" || !installed {
			return
		}
		if !strings.HasPrefix(name, a.Prefix) {
			return
		}
		packages = append(packages, types.InstalledPackage{
			Name:      name,
			Canonical: shared.NormalizeName(strings.TrimPrefix(name, a.Prefix)),
			Version:   version,
		})
	}
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			name = ""
			version = ""
			installed = false
			continue
		}
		switch {
		case strings.HasPrefix(line, "Package:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "Package:"))
		case strings.HasPrefix(line, "Version:"):
			version = strings.TrimSpace(strings.TrimPrefix(line, "Version:"))
		case strings.HasPrefix(line, "Status:"):
			installed = strings.Contains(line, "install ok installed")
		}
	}
	flush()
	if err := scanner.Err(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read dpkg status file").
			WithCause(err)
	}
	return packages, nil
}

var _ ports.EnvironmentPort = DpkgEnvironmentAdapter{}
