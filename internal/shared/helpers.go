// Package shared provides common utility functions used across
// multiple packages in the reqtool codebase.
package shared

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// ErrorMessage extracts the human message from an errbuilder error,
// falling back to Error() for plain errors.
func ErrorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}

// NormalizeName lowercases a Python package name and replaces runs of
// underscores, dots, and hyphens with a single hyphen, following
// PEP 503 normalization.
func NormalizeName(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	var builder strings.Builder
	previousSeparator := false
	for _, r := range lower {
		if r == '-' || r == '_' || r == '.' {
			previousSeparator = true
			continue
		}
		if previousSeparator && builder.Len() > 0 {
			builder.WriteByte('-')
		}
		previousSeparator = false
		builder.WriteRune(r)
	}
	return builder.String()
}

// HTTPStatusError creates a formatted error for non-2xx HTTP responses.
func HTTPStatusError(status int, url string) error {
	return fmt.Errorf("status=%d url=%s", status, url)
}

// UniqueStrings removes duplicates while preserving first-seen order.
func UniqueStrings(values []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
