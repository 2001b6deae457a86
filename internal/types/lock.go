package types

// LockEntry pins a package to the exact version selected from the
// index during a lock operation.
type LockEntry struct {
	Package string
	Version string
}
