package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ardnew/nanokvm/transport/serialport"
)

// portsCmd lists candidate serial ports.
func (a *app) portsCmd() *cobra.Command {
	var usbOnly bool

	cmd := &cobra.Command{
		Use:   "ports",
		Short: "List serial ports on this system",
		Long: `List serial ports, with USB identity where the platform exposes it.
The NanoKVM-USB controller enumerates as a USB serial device (CH340 or
compatible); --usb hides legacy non-USB ports.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos, err := serialport.Enumerate()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DEVICE\tVID:PID\tSERIAL\tDESCRIPTION")
			for _, info := range infos {
				if usbOnly && !info.IsUSB {
					continue
				}
				if !info.IsUSB {
					fmt.Fprintf(w, "%s\t-\t-\t-\n", info.Device)
					continue
				}
				desc := describePort(info)
				fmt.Fprintf(w, "%s\t%04x:%04x\t%s\t%s\n",
					info.Device, info.VID, info.PID, orDash(info.Serial), orDash(desc))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&usbOnly, "usb", false, "only list USB serial ports")
	return cmd
}

// orDash substitutes "-" for empty table cells.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
