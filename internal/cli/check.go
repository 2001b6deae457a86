package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqtool/internal/app"
	"reqtool/internal/types"
)

type checkOptions struct {
	manifestFlags
	Environment string
	Kind        string
	DpkgPrefix  string
}

func newCheckCommand() *cobra.Command {
	opts := checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify an installed environment against manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.Context(), cmd, opts)
		},
	}
	addManifestFlags(cmd, &opts.manifestFlags)
	cmd.Flags().StringVar(&opts.Environment, "environment", "", "Environment snapshot (pip freeze output or dpkg status file)")
	cmd.Flags().StringVar(&opts.Kind, "kind", "pip", "Environment kind: pip or dpkg")
	cmd.Flags().StringVar(&opts.DpkgPrefix, "dpkg-prefix", "", "Binary package prefix for dpkg environments")
	_ = viper.BindPFlag("environment", cmd.Flags().Lookup("environment"))
	_ = viper.BindPFlag("kind", cmd.Flags().Lookup("kind"))
	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command, opts checkOptions) error {
	service := newAppService()
	result, err := service.Check(ctx, app.CheckRequest{
		Selection:   opts.selection(cmd),
		Environment: resolveString(cmd, opts.Environment, "environment", "environment"),
		Kind:        types.EnvironmentKind(resolveString(cmd, opts.Kind, "kind", "kind")),
		DpkgPrefix:  opts.DpkgPrefix,
	})
	if err != nil {
		return err
	}
	for _, finding := range result.Findings {
		fmt.Printf("%s:%d: %s [%s] %s\n",
			finding.Path, finding.Line, finding.Severity, finding.Code, finding.Message)
	}
	fmt.Printf("checked %d requirement(s): %d problem(s)\n", result.Checked, len(result.Findings))
	if len(result.Findings) > 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("environment does not satisfy manifests")
	}
	return nil
}
