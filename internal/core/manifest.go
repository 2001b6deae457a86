package core

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqtool/internal/shared"
	"reqtool/internal/types"
)

// ParsedManifest is the result of parsing one requirements file.
// Malformed lines do not abort the parse; they are reported as
// error-severity findings so a single pass can surface every problem.
type ParsedManifest struct {
	Manifest types.Manifest
	Includes []types.Include
	Findings []types.Finding
}

// ParseManifest reads a requirements manifest: one requirement per
// line, "#" comments, blank lines, backslash continuations, and "-r"
// include directives. Unsupported pip directives are reported as
// warnings and skipped.
func ParseManifest(reader io.Reader, path string) (ParsedManifest, error) {
	parsed := ParsedManifest{Manifest: types.Manifest{Path: path}}
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	pending := ""
	pendingLine := 0
	lineNumber := 0
	flush := func(logical string, line int) {
		logical = strings.TrimSpace(stripInlineComment(logical))
		if logical == "" {
			return
		}
		if strings.HasPrefix(logical, "-") {
			include, finding, ok := parseDirective(logical, path, line)
			if ok {
				parsed.Includes = append(parsed.Includes, include)
				return
			}
			parsed.Findings = append(parsed.Findings, finding)
			return
		}
		requirement, err := ParseRequirementLine(logical, path, line)
		if err != nil {
			parsed.Findings = append(parsed.Findings, types.Finding{
				Severity: types.SeverityError,
				Code:     types.FindingSyntax,
				Path:     path,
				Line:     line,
				Message:  shared.ErrorMessage(err),
			})
			return
		}
		parsed.Manifest.Requirements = append(parsed.Manifest.Requirements, requirement)
	}

	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if pending == "" {
			pendingLine = lineNumber
		}
		trimmed := strings.TrimRight(line, " \t")
		if strings.HasSuffix(trimmed, "\\") {
			pending += strings.TrimSuffix(trimmed, "\\")
			continue
		}
		flush(pending+line, pendingLine)
		pending = ""
	}
	if pending != "" {
		flush(pending, pendingLine)
	}
	if err := scanner.Err(); err != nil {
		return ParsedManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read manifest").
			WithCause(err)
	}
	return parsed, nil
}

// stripInlineComment removes a trailing "#" comment. The hash only
// starts a comment at the beginning of the line or after whitespace,
// matching pip's requirement file handling.
func stripInlineComment(line string) string {
	for i, r := range line {
		if r != '#' {
			continue
		}
		if i == 0 {
			return ""
		}
		prev := line[i-1]
		if prev == ' ' || prev == '\t' {
			return line[:i]
		}
	}
	return line
}

func parseDirective(logical string, path string, line int) (types.Include, types.Finding, bool) {
	for _, prefix := range []string{"-r ", "-r\t", "--requirement ", "--requirement="} {
		if strings.HasPrefix(logical, prefix) {
			target := strings.TrimSpace(strings.TrimPrefix(logical, prefix))
			if target != "" {
				return types.Include{Path: target, Line: line}, types.Finding{}, true
			}
		}
	}
	return types.Include{}, types.Finding{
		Severity: types.SeverityWarning,
		Code:     types.FindingDirective,
		Path:     path,
		Line:     line,
		Message:  fmt.Sprintf("unsupported directive %q skipped", firstToken(logical)),
	}, false
}

func firstToken(value string) string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return value
	}
	return fields[0]
}
