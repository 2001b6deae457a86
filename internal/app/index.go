package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqtool/internal/core"
	"reqtool/internal/ports"
)

// Index builds a package index file from a remote simple index.
func (s Service) Index(ctx context.Context, req IndexRequest) (IndexResult, error) {
	output := strings.TrimSpace(req.Output)
	if output == "" {
		return IndexResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output path is required")
	}
	index, err := s.IndexBuilder.Build(ctx, ports.IndexBuildRequest{
		SimpleIndex:      req.SimpleIndex,
		Packages:         req.Packages,
		MaxPackages:      req.MaxPackages,
		Workers:          req.Workers,
		User:             req.User,
		APIKey:           req.APIKey,
		HTTPTimeoutSec:   req.HTTPTimeoutSec,
		HTTPRetries:      req.HTTPRetries,
		HTTPRetryDelayMs: req.HTTPRetryDelayMs,
	})
	if err != nil {
		return IndexResult{}, err
	}
	if err := core.NewIndexValidator().ValidateIndex(ctx, index); err != nil {
		return IndexResult{}, err
	}
	if err := s.IndexWriter.Write(output, index); err != nil {
		return IndexResult{}, err
	}
	return IndexResult{
		OutputPath: output,
		Packages:   len(index.Packages),
	}, nil
}
