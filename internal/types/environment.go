package types

// InstalledPackage is one package found in an installed environment.
// For dpkg environments the Version is a Debian version string and
// Canonical is derived from the binary package name with its
// interpreter prefix stripped.
type InstalledPackage struct {
	Name      string
	Canonical string
	Version   string
}
