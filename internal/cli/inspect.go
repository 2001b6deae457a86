package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"reqtool/internal/app"
)

type inspectOptions struct {
	OutputDir string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a previously written output directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{OutputDir: opts.OutputDir})
	if err != nil {
		return err
	}
	fmt.Printf("lock entries: %d\n", len(result.LockEntries))
	for _, entry := range result.LockEntries {
		fmt.Printf("  %s==%s\n", entry.Package, entry.Version)
	}
	fmt.Printf("plan steps: %d\n", len(result.PlanSteps))
	for _, step := range result.PlanSteps {
		fmt.Printf("  %3d %s\n", step.Position, step.Directive)
	}
	fmt.Printf("report: %d error(s), %d warning(s)\n",
		result.ReportErrors, result.ReportWarnings)
	return nil
}
