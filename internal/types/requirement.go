package types

// Specifier is a single version constraint, e.g. ">=0.12.0".
type Specifier struct {
	Op      SpecifierOp
	Version string
}

// Requirement is one parsed manifest entry. Name preserves the casing
// written in the manifest; Canonical is the PEP 503 normalized form
// used for all identity comparisons.
type Requirement struct {
	Name       string
	Canonical  string
	Extras     []string
	Specifiers []Specifier
	Marker     string
	Source     string
	Line       int
}

// Pinned reports whether the requirement is fixed to an exact version.
func (r Requirement) Pinned() bool {
	for _, spec := range r.Specifiers {
		if spec.Op == SpecifierOpEq || spec.Op == SpecifierOpArbitrary {
			return true
		}
	}
	return false
}

// Manifest is the parsed content of one requirements file, in the
// order the entries were written.
type Manifest struct {
	Path         string
	Requirements []Requirement
}

// Include is a "-r other-file" directive found while parsing a
// manifest. Paths are as written, relative to the including file.
type Include struct {
	Path string
	Line int
}
