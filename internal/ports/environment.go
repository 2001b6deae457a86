package ports

import "reqtool/internal/types"

// EnvironmentPort reads the packages present in an installed
// environment snapshot (pip freeze output, dpkg status file).
type EnvironmentPort interface {
	InstalledPackages() ([]types.InstalledPackage, error)
}
