package types

// Finding is one lint or environment-check result tied to a manifest
// location.
type Finding struct {
	Severity Severity
	Code     FindingCode
	Path     string
	Line     int
	Message  string
}

type LintReport struct {
	Findings []Finding
}

// Errors returns the number of error-severity findings.
func (r LintReport) Errors() int {
	count := 0
	for _, finding := range r.Findings {
		if finding.Severity == SeverityError {
			count++
		}
	}
	return count
}

// Warnings returns the number of warning-severity findings.
func (r LintReport) Warnings() int {
	return len(r.Findings) - r.Errors()
}
