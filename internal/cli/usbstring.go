package cli

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ardnew/nanokvm/kvm"
	"github.com/ardnew/nanokvm/pkg"
	"github.com/ardnew/nanokvm/proto"
)

// usbstringCmd reads and writes USB descriptor strings.
func (a *app) usbstringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usbstring",
		Short: "Read or write USB descriptor strings",
	}

	get := &cobra.Command{
		Use:       "get [manufacturer|product|serial]",
		Short:     "Read descriptor strings",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"manufacturer", "product", "serial"},
		RunE: func(cmd *cobra.Command, args []string) error {
			types := []proto.StringType{
				proto.StringManufacturer, proto.StringProduct, proto.StringSerial,
			}
			if len(args) == 1 {
				typ, err := parseStringType(args[0])
				if err != nil {
					return err
				}
				types = []proto.StringType{typ}
			}
			return a.withClient(cmd, func(ctx context.Context, c *kvm.Client) error {
				for _, typ := range types {
					value, err := c.USBString(ctx, typ)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", typ.String()+":", value)
				}
				return nil
			})
		},
	}

	set := &cobra.Command{
		Use:       "set <manufacturer|product|serial> <value>",
		Short:     "Write a descriptor string",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"manufacturer", "product", "serial"},
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := parseStringType(args[0])
			if err != nil {
				return err
			}
			return a.withClient(cmd, func(ctx context.Context, c *kvm.Client) error {
				if err := c.SetUSBString(ctx, typ, args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(),
					"%s set; reset the controller to apply\n", typ.String())
				return nil
			})
		},
	}

	cmd.AddCommand(get, set)
	return cmd
}

// parseStringType maps a descriptor selector name to its type.
func parseStringType(name string) (proto.StringType, error) {
	switch name {
	case "manufacturer":
		return proto.StringManufacturer, nil
	case "product":
		return proto.StringProduct, nil
	case "serial":
		return proto.StringSerial, nil
	default:
		return 0, errors.Wrapf(pkg.ErrInvalidParameter,
			"unknown descriptor %q (want manufacturer, product, or serial)", name)
	}
}
