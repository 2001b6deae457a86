package types

// SpecifierOp is a version comparison operator as it appears in a
// requirement line. The set matches the comparators accepted by pip.
type SpecifierOp string

const (
	SpecifierOpNone      SpecifierOp = ""
	SpecifierOpEq        SpecifierOp = "=="
	SpecifierOpArbitrary SpecifierOp = "==="
	SpecifierOpNe        SpecifierOp = "!="
	SpecifierOpCompat    SpecifierOp = "~="
	SpecifierOpGte       SpecifierOp = ">="
	SpecifierOpLte       SpecifierOp = "<="
	SpecifierOpGt        SpecifierOp = ">"
	SpecifierOpLt        SpecifierOp = "<"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// FindingCode classifies lint and check findings.
type FindingCode string

const (
	FindingSyntax    FindingCode = "syntax"
	FindingDuplicate FindingCode = "duplicate"
	FindingConflict  FindingCode = "conflict"
	FindingUnpinned  FindingCode = "unpinned"
	FindingDirective FindingCode = "directive"
	FindingMissing   FindingCode = "missing"
	FindingMismatch  FindingCode = "version-mismatch"
)

// EnvironmentKind selects how an installed environment is read and
// how its version strings are compared.
type EnvironmentKind string

const (
	EnvironmentKindPip  EnvironmentKind = "pip"
	EnvironmentKindDpkg EnvironmentKind = "dpkg"
)
