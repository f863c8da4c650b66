package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ardnew/nanokvm/kvm"
)

// configCmd groups parameter configuration operations.
func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read or write the controller parameter configuration",
	}
	cmd.AddCommand(a.configShowCmd(), a.configSetCmd(), a.configResetCmd())
	return cmd
}

// configShowCmd prints the current configuration block.
func (a *app) configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the controller configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withClient(cmd, func(ctx context.Context, c *kvm.Client) error {
				cfg, err := c.ParaCfg(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "work mode:         0x%02X\n", cfg.WorkMode)
				fmt.Fprintf(out, "serial mode:       0x%02X\n", cfg.SerialMode)
				fmt.Fprintf(out, "address:           0x%02X\n", cfg.Addr)
				fmt.Fprintf(out, "baud rate:         %d\n", cfg.Baud)
				fmt.Fprintf(out, "usb vid:pid:       %04x:%04x\n", cfg.VID, cfg.PID)
				fmt.Fprintf(out, "serial interval:   %d ms\n", cfg.SerialInterval)
				fmt.Fprintf(out, "keyboard interval: %d ms\n", cfg.KeyboardInterval)
				fmt.Fprintf(out, "release delay:     %d ms\n", cfg.ReleaseDelay)
				fmt.Fprintf(out, "auto enter:        %v\n", cfg.AutoEnter)
				fmt.Fprintf(out, "fast upload:       %v\n", cfg.FastUpload)
				return nil
			})
		},
	}
}

// configSetCmd updates selected configuration fields.
func (a *app) configSetCmd() *cobra.Command {
	var (
		baud uint32
		vid  uint16
		pid  uint16
		addr uint8
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update controller configuration fields",
		Long: `Update controller configuration fields. The current block is read,
the given fields are replaced, and the block is written back. Changes
take effect after 'nanokvm reset'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if !flags.Changed("baud") && !flags.Changed("vid") &&
				!flags.Changed("pid") && !flags.Changed("device-addr") {
				return cmd.Help()
			}
			return a.withClient(cmd, func(ctx context.Context, c *kvm.Client) error {
				cfg, err := c.ParaCfg(ctx)
				if err != nil {
					return err
				}
				if flags.Changed("baud") {
					cfg.Baud = baud
				}
				if flags.Changed("vid") {
					cfg.VID = vid
				}
				if flags.Changed("pid") {
					cfg.PID = pid
				}
				if flags.Changed("device-addr") {
					cfg.Addr = addr
				}
				if err := c.SetParaCfg(ctx, &cfg); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(),
					"configuration written; reset the controller to apply")
				return nil
			})
		},
	}

	cmd.Flags().Uint32Var(&baud, "baud", 0, "serial baud rate")
	cmd.Flags().Uint16Var(&vid, "vid", 0, "USB vendor ID presented to the target")
	cmd.Flags().Uint16Var(&pid, "pid", 0, "USB product ID presented to the target")
	cmd.Flags().Uint8Var(&addr, "device-addr", 0, "frame address stored on the controller")
	return cmd
}

// configResetCmd restores factory configuration.
func (a *app) configResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the factory configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withClient(cmd, func(ctx context.Context, c *kvm.Client) error {
				if err := c.SetDefaultCfg(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(),
					"factory configuration restored; reset the controller to apply")
				return nil
			})
		},
	}
}
