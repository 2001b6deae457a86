package ports

import "reqtool/internal/types"

type OutputPort interface {
	WriteLock(entries []types.LockEntry) error
	WritePlan(plan types.InstallPlan) error
	WriteReport(report types.LintReport) error
	WriteManifest(manifest types.Manifest) error
}

type OutputReaderPort interface {
	ReadLock(path string) ([]types.LockEntry, error)
	ReadPlan(path string) (types.InstallPlan, error)
	ReadReport(path string) (types.LintReport, error)
}
