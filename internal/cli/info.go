package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ardnew/nanokvm/kvm"
)

// infoCmd queries and prints controller information.
func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Query controller version and target state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withClient(cmd, func(ctx context.Context, c *kvm.Client) error {
				info, err := c.Info(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "chip version:     %s\n", info.ChipVersion)
				fmt.Fprintf(out, "target connected: %v\n", info.TargetConnected)
				fmt.Fprintf(out, "num lock:         %v\n", info.NumLock)
				fmt.Fprintf(out, "caps lock:        %v\n", info.CapsLock)
				fmt.Fprintf(out, "scroll lock:      %v\n", info.ScrollLock)
				return nil
			})
		},
	}
}
