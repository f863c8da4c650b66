package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ardnew/nanokvm/internal/buildinfo"
)

// versionCmd prints build information.
func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
