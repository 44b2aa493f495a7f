package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

const esbuildModule = "github.com/evanw/esbuild"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "transform v%s\n", Version)
			if v := moduleVersion(esbuildModule); v != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "esbuild %s\n", v)
			}
		},
	}
}

func moduleVersion(path string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, dep := range info.Deps {
		if dep.Path == path {
			return dep.Version
		}
	}
	return ""
}
