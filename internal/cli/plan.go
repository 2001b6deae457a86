package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqtool/internal/app"
)

type planOptions struct {
	manifestFlags
	InstallAfter []string
	OutputDir    string
}

func newPlanCommand() *cobra.Command {
	opts := planOptions{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute the serial install order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlan(cmd.Context(), cmd, opts)
		},
	}
	addManifestFlags(cmd, &opts.manifestFlags)
	cmd.Flags().StringSliceVar(&opts.InstallAfter, "install-after", nil, "Extra build-order edges as pkg=dep")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "", "Directory to write install.plan into (optional)")
	_ = viper.BindPFlag("install_after", cmd.Flags().Lookup("install-after"))
	return cmd
}

func runPlan(ctx context.Context, cmd *cobra.Command, opts planOptions) error {
	service := newAppService()
	result, err := service.Plan(ctx, app.PlanRequest{
		Selection:    opts.selection(cmd),
		InstallAfter: resolveStrings(cmd, opts.InstallAfter, "install_after", "install-after"),
		OutputDir:    opts.OutputDir,
	})
	if err != nil {
		return err
	}
	for _, step := range result.Plan.Steps {
		suffix := ""
		if len(step.After) > 0 {
			suffix = fmt.Sprintf("  (after %s)", strings.Join(step.After, ", "))
		}
		fmt.Printf("%3d  %s%s\n", step.Position, step.Directive, suffix)
	}
	fmt.Printf("planned %d step(s)\n", len(result.Plan.Steps))
	return nil
}
