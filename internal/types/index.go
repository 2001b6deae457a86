package types

// PackageIndexFile is the on-disk package index: available versions
// per canonical package name, sorted ascending.
type PackageIndexFile struct {
	Packages map[string][]string `yaml:"packages"`
}
