package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/renameio/v2"

	"reqtool/internal/core"
	"reqtool/internal/ports"
	"reqtool/internal/types"
)

const lockFileName = "requirements.lock"
const planFileName = "install.plan"
const reportFileName = "lint.report"
const mergedFileName = "requirements-merged.txt"

// OutputFileAdapter writes the tool's outputs into one directory.
// All writes are atomic.
type OutputFileAdapter struct {
	Dir string
}

func NewOutputFileAdapter(dir string) OutputFileAdapter {
	return OutputFileAdapter{Dir: dir}
}

// WriteLock emits sorted "name==version" lines, directly usable as a
// pinned requirements file.
func (a OutputFileAdapter) WriteLock(entries []types.LockEntry) error {
	path, err := a.ensurePath(lockFileName)
	if err != nil {
		return err
	}
	ordered := append([]types.LockEntry(nil), entries...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Package < ordered[j].Package
	})
	var lines []string
	for _, entry := range ordered {
		lines = append(lines, fmt.Sprintf("%s==%s", entry.Package, entry.Version))
	}
	return a.write(path, lines)
}

// WritePlan emits one line per install step:
// "position,name,directive,after" with after entries joined by ";".
func (a OutputFileAdapter) WritePlan(plan types.InstallPlan) error {
	path, err := a.ensurePath(planFileName)
	if err != nil {
		return err
	}
	var lines []string
	for _, step := range plan.Steps {
		lines = append(lines, fmt.Sprintf("%d,%s,%s,%s",
			step.Position, step.Name, step.Directive, strings.Join(step.After, ";")))
	}
	return a.write(path, lines)
}

// WriteReport emits "severity,code,path,line,message" per finding.
func (a OutputFileAdapter) WriteReport(report types.LintReport) error {
	path, err := a.ensurePath(reportFileName)
	if err != nil {
		return err
	}
	var lines []string
	for _, finding := range report.Findings {
		lines = append(lines, fmt.Sprintf("%s,%s,%s,%d,%s",
			finding.Severity, finding.Code, finding.Path, finding.Line, finding.Message))
	}
	return a.write(path, lines)
}

// WriteManifest renders a manifest back into requirements syntax.
func (a OutputFileAdapter) WriteManifest(manifest types.Manifest) error {
	path, err := a.ensurePath(mergedFileName)
	if err != nil {
		return err
	}
	var lines []string
	for _, req := range manifest.Requirements {
		lines = append(lines, core.FormatRequirement(req))
	}
	return a.write(path, lines)
}

func (a OutputFileAdapter) write(path string, lines []string) error {
	content := strings.Join(lines, "\n")
	if content != "" {
		content += "\n"
	}
	if err := renameio.WriteFile(path, []byte(content), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write output file").
			WithCause(err)
	}
	return nil
}

func (a OutputFileAdapter) ensurePath(filename string) (string, error) {
	if strings.TrimSpace(a.Dir) == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return filepath.Join(a.Dir, filename), nil
}

var _ ports.OutputPort = OutputFileAdapter{}
