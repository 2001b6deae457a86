package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqtool/internal/app"
)

type validateOptions struct {
	manifestFlags
	RequirePinned []string
	AllowFloating []string
	OutputDir     string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Lint requirements manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	addManifestFlags(cmd, &opts.manifestFlags)
	cmd.Flags().StringSliceVar(&opts.RequirePinned, "require-pinned", nil, "Packages that must be pinned exactly")
	cmd.Flags().StringSliceVar(&opts.AllowFloating, "allow-floating", nil, "Packages allowed to float without a warning")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "", "Directory to write lint.report into (optional)")
	_ = viper.BindPFlag("require_pinned", cmd.Flags().Lookup("require-pinned"))
	_ = viper.BindPFlag("allow_floating", cmd.Flags().Lookup("allow-floating"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{
		Selection:     opts.selection(cmd),
		RequirePinned: resolveStrings(cmd, opts.RequirePinned, "require_pinned", "require-pinned"),
		AllowFloating: resolveStrings(cmd, opts.AllowFloating, "allow_floating", "allow-floating"),
		OutputDir:     opts.OutputDir,
	})
	if err != nil {
		return err
	}
	for _, finding := range result.Report.Findings {
		fmt.Printf("%s:%d: %s [%s] %s\n",
			finding.Path, finding.Line, finding.Severity, finding.Code, finding.Message)
	}
	fmt.Printf("validated %d manifest(s): %d error(s), %d warning(s)\n",
		result.Manifests, result.Report.Errors(), result.Report.Warnings())
	if result.Report.Errors() > 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("validation failed")
	}
	return nil
}
