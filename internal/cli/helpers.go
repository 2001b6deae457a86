package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqtool/internal/app"
)

// manifestFlags are the flags shared by every command that reads
// manifests.
type manifestFlags struct {
	Manifests []string
	Discover  string
	Patterns  []string
}

func addManifestFlags(cmd *cobra.Command, flags *manifestFlags) {
	cmd.Flags().StringSliceVar(&flags.Manifests, "manifest", nil, "Manifest path(s), pre-manifest first")
	cmd.Flags().StringVar(&flags.Discover, "discover", "", "Root directory to search for manifests")
	cmd.Flags().StringSliceVar(&flags.Patterns, "pattern", nil, "Glob pattern(s) for manifest discovery")
	_ = viper.BindPFlag("manifests", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("discover", cmd.Flags().Lookup("discover"))
	_ = viper.BindPFlag("patterns", cmd.Flags().Lookup("pattern"))
}

func (f manifestFlags) selection(cmd *cobra.Command) app.ManifestSelection {
	return app.ManifestSelection{
		Paths:        resolveStrings(cmd, f.Manifests, "manifests", "manifest"),
		DiscoverRoot: resolveString(cmd, f.Discover, "discover", "discover"),
		Patterns:     resolveStrings(cmd, f.Patterns, "patterns", "pattern"),
	}
}

func newAppService() app.Service {
	return app.NewService()
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
