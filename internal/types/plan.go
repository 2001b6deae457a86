package types

// InstallStep is one entry of a serial install plan. Directive is the
// requirement string to hand to the installer; After lists packages
// that must already be installed when this step runs, because their
// presence is assumed by the package's build script.
type InstallStep struct {
	Position  int
	Name      string
	Directive string
	After     []string
}

// InstallPlan is a strictly serial installation order: steps are
// executed one at a time, in Position order.
type InstallPlan struct {
	Steps []InstallStep
}
