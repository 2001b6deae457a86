package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqtool/internal/app"
)

type indexOptions struct {
	Output           string
	SimpleIndex      string
	Packages         []string
	MaxPackages      int
	Workers          int
	User             string
	APIKey           string
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

func newIndexCommand() *cobra.Command {
	opts := indexOptions{}
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build a package index from a PyPI simple index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIndex(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Output, "output", "package-index.yaml", "Package index output path")
	cmd.Flags().StringVar(&opts.SimpleIndex, "simple-index", "", "Simple index base URL")
	cmd.Flags().StringSliceVar(&opts.Packages, "package", nil, "Package name(s) to index (default: all)")
	cmd.Flags().IntVar(&opts.MaxPackages, "max-packages", 0, "Cap on packages to index")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Concurrent fetch workers")
	cmd.Flags().StringVar(&opts.User, "user", "", "Basic auth user")
	cmd.Flags().StringVar(&opts.APIKey, "api-key", "", "Basic auth key")
	cmd.Flags().IntVar(&opts.HTTPTimeoutSec, "http-timeout", 0, "HTTP timeout in seconds")
	cmd.Flags().IntVar(&opts.HTTPRetries, "http-retries", 0, "HTTP retry count")
	cmd.Flags().IntVar(&opts.HTTPRetryDelayMs, "http-retry-delay-ms", 0, "Base retry delay in ms")
	_ = viper.BindPFlag("simple_index", cmd.Flags().Lookup("simple-index"))
	_ = viper.BindPFlag("index_user", cmd.Flags().Lookup("user"))
	_ = viper.BindPFlag("index_api_key", cmd.Flags().Lookup("api-key"))
	return cmd
}

func runIndex(ctx context.Context, cmd *cobra.Command, opts indexOptions) error {
	service := newAppService()
	result, err := service.Index(ctx, app.IndexRequest{
		Output:           opts.Output,
		SimpleIndex:      resolveString(cmd, opts.SimpleIndex, "simple_index", "simple-index"),
		Packages:         opts.Packages,
		MaxPackages:      opts.MaxPackages,
		Workers:          opts.Workers,
		User:             resolveString(cmd, opts.User, "index_user", "user"),
		APIKey:           resolveString(cmd, opts.APIKey, "index_api_key", "api-key"),
		HTTPTimeoutSec:   opts.HTTPTimeoutSec,
		HTTPRetries:      opts.HTTPRetries,
		HTTPRetryDelayMs: opts.HTTPRetryDelayMs,
	})
	if err != nil {
		return err
	}
	fmt.Printf("indexed %d package(s) into %s\n", result.Packages, result.OutputPath)
	return nil
}
