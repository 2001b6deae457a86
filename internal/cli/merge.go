package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"reqtool/internal/app"
)

type mergeOptions struct {
	manifestFlags
	OutputDir string
}

func newMergeCommand() *cobra.Command {
	opts := mergeOptions{}
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge manifests into a single requirements file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMerge(cmd.Context(), cmd, opts)
		},
	}
	addManifestFlags(cmd, &opts.manifestFlags)
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	return cmd
}

func runMerge(ctx context.Context, cmd *cobra.Command, opts mergeOptions) error {
	service := newAppService()
	result, err := service.Merge(ctx, app.MergeRequest{
		Selection: opts.selection(cmd),
		OutputDir: opts.OutputDir,
	})
	if err != nil {
		return err
	}
	fmt.Printf("merged %d requirement(s) into %s\n",
		len(result.Merged.Requirements), result.OutputDir)
	return nil
}
