package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"

	"reqtool/internal/shared"
	"reqtool/internal/types"
)

type IndexValidator struct{}

func NewIndexValidator() IndexValidator {
	return IndexValidator{}
}

// ValidateIndex checks a package index before it is written or served.
// Package names must already be normalized and every entry needs at
// least one parseable version.
func (v IndexValidator) ValidateIndex(ctx context.Context, index types.PackageIndexFile) error {
	for name, versions := range index.Packages {
		assert.NotEmpty(ctx, name, "index package name must be set")
		if name != shared.NormalizeName(name) {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("index package name %s is not normalized", name))
		}
		if len(versions) == 0 {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("index entry %s has no versions", name))
		}
		for _, version := range versions {
			if _, err := pep440.Parse(version); err != nil {
				return errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("index entry %s has invalid version %s", name, version)).
					WithCause(err)
			}
		}
	}
	return nil
}
