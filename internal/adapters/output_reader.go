package adapters

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqtool/internal/ports"
	"reqtool/internal/types"
)

// OutputReaderAdapter parses previously written output files back
// into their in-memory forms, for the inspect operation.
type OutputReaderAdapter struct{}

func NewOutputReaderAdapter() OutputReaderAdapter {
	return OutputReaderAdapter{}
}

func (a OutputReaderAdapter) ReadLock(path string) ([]types.LockEntry, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	var entries []types.LockEntry
	for _, line := range lines {
		parts := strings.SplitN(line, "==", 2)
		if len(parts) != 2 {
			return nil, invalidOutputLine(path, line)
		}
		entries = append(entries, types.LockEntry{
			Package: strings.TrimSpace(parts[0]),
			Version: strings.TrimSpace(parts[1]),
		})
	}
	return entries, nil
}

func (a OutputReaderAdapter) ReadPlan(path string) (types.InstallPlan, error) {
	lines, err := readLines(path)
	if err != nil {
		return types.InstallPlan{}, err
	}
	plan := types.InstallPlan{}
	for _, line := range lines {
		// position,name,directive,after; the directive may itself
		// contain commas, the after list never does.
		head := strings.SplitN(line, ",", 3)
		if len(head) != 3 {
			return types.InstallPlan{}, invalidOutputLine(path, line)
		}
		position, err := strconv.Atoi(head[0])
		if err != nil {
			return types.InstallPlan{}, invalidOutputLine(path, line)
		}
		rest := head[2]
		cut := strings.LastIndex(rest, ",")
		if cut < 0 {
			return types.InstallPlan{}, invalidOutputLine(path, line)
		}
		directive := rest[:cut]
		var after []string
		if tail := strings.TrimSpace(rest[cut+1:]); tail != "" {
			after = strings.Split(tail, ";")
		}
		plan.Steps = append(plan.Steps, types.InstallStep{
			Position:  position,
			Name:      head[1],
			Directive: directive,
			After:     after,
		})
	}
	return plan, nil
}

func (a OutputReaderAdapter) ReadReport(path string) (types.LintReport, error) {
	lines, err := readLines(path)
	if err != nil {
		return types.LintReport{}, err
	}
	report := types.LintReport{}
	for _, line := range lines {
		parts := strings.SplitN(line, ",", 5)
		if len(parts) != 5 {
			return types.LintReport{}, invalidOutputLine(path, line)
		}
		lineNumber, err := strconv.Atoi(parts[3])
		if err != nil {
			return types.LintReport{}, invalidOutputLine(path, line)
		}
		report.Findings = append(report.Findings, types.Finding{
			Severity: types.Severity(parts[0]),
			Code:     types.FindingCode(parts[1]),
			Path:     parts[2],
			Line:     lineNumber,
			Message:  parts[4],
		})
	}
	return report, nil
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("output file not found: " + path).
			WithCause(err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func invalidOutputLine(path string, line string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("malformed output line in %s: %q", path, line))
}

var _ ports.OutputReaderPort = OutputReaderAdapter{}
