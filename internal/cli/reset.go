package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ardnew/nanokvm/kvm"
)

// resetCmd resets the controller chip.
func (a *app) resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the controller chip",
		Long: `Reset the controller chip. Pending configuration changes take effect
and the USB device re-enumerates on the target.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withClient(cmd, func(ctx context.Context, c *kvm.Client) error {
				if err := c.Reset(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "controller reset")
				return nil
			})
		},
	}
}
