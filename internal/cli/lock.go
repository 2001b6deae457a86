package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqtool/internal/app"
)

type lockOptions struct {
	manifestFlags
	IndexPath string
	OutputDir string
}

func newLockCommand() *cobra.Command {
	opts := lockOptions{}
	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Pin requirements to exact versions from a package index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLock(cmd.Context(), cmd, opts)
		},
	}
	addManifestFlags(cmd, &opts.manifestFlags)
	cmd.Flags().StringVar(&opts.IndexPath, "index", "", "Package index file")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	_ = viper.BindPFlag("index", cmd.Flags().Lookup("index"))
	return cmd
}

func runLock(ctx context.Context, cmd *cobra.Command, opts lockOptions) error {
	service := newAppService()
	result, err := service.Lock(ctx, app.LockRequest{
		Selection: opts.selection(cmd),
		IndexPath: resolveString(cmd, opts.IndexPath, "index", "index"),
		OutputDir: opts.OutputDir,
	})
	if err != nil {
		return err
	}
	fmt.Printf("locked %d package(s) into %s\n", len(result.Entries), result.OutputDir)
	return nil
}
