package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ardnew/nanokvm/hid"
	"github.com/ardnew/nanokvm/kvm"
	"github.com/ardnew/nanokvm/pkg"
)

// keyCmd taps a single named key.
func (a *app) keyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "key <name>",
		Short: "Press and release one key",
		Long: `Press and release one key by name: letters, digits, "enter", "esc",
"f1".."f12", "del", arrow keys, and so on. Use 'chord' for modifier
combinations.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			usage, err := hid.LookupName(args[0])
			if err != nil {
				return err
			}
			return a.withClient(cmd, func(ctx context.Context, c *kvm.Client) error {
				return c.Tap(ctx, 0, usage)
			})
		},
	}
}

// chordCmd sends a modifier chord.
func (a *app) chordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chord <combo>",
		Short: "Send a key combination",
		Long: `Send a key combination, all keys pressed together then released:

    nanokvm chord ctrl+alt+del
    nanokvm chord win+r
    nanokvm chord ctrl+shift+esc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chord, err := hid.ParseChord(args[0])
			if err != nil {
				return err
			}
			return a.withClient(cmd, func(ctx context.Context, c *kvm.Client) error {
				return c.SendChord(ctx, chord)
			})
		},
	}
}

// typeCmd types a string of text.
func (a *app) typeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "type <text>...",
		Short: "Type a string on the target",
		Long: `Type a string on the target using the US keyboard layout. Multiple
arguments are joined with spaces.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			return a.withClient(cmd, func(ctx context.Context, c *kvm.Client) error {
				return c.TypeText(ctx, text)
			})
		},
	}
}

// mouseCmd groups pointer operations.
func (a *app) mouseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mouse",
		Short: "Pointer movement, buttons, and wheel",
	}
	cmd.AddCommand(a.mouseMoveCmd(), a.mouseClickCmd(), a.mouseScrollCmd())
	return cmd
}

// mouseMoveCmd moves the pointer relatively or absolutely.
func (a *app) mouseMoveCmd() *cobra.Command {
	var (
		abs    bool
		width  int
		height int
	)

	cmd := &cobra.Command{
		Use:   "move <x> <y>",
		Short: "Move the pointer",
		Long: `Move the pointer. By default x and y are relative pixel deltas;
with --abs they are absolute coordinates on a --width x --height target:

    nanokvm mouse move 100 -50
    nanokvm mouse move --abs --width 1920 --height 1080 960 540`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := parseXY(args[0], args[1])
			if err != nil {
				return err
			}
			return a.withClient(cmd, func(ctx context.Context, c *kvm.Client) error {
				if abs {
					return c.MouseMoveAbsolute(ctx, width, height, x, y)
				}
				return c.MouseMoveRelative(ctx, x, y)
			})
		},
	}

	cmd.Flags().BoolVar(&abs, "abs", false, "absolute coordinates")
	cmd.Flags().IntVar(&width, "width", 1920, "target horizontal resolution (with --abs)")
	cmd.Flags().IntVar(&height, "height", 1080, "target vertical resolution (with --abs)")
	return cmd
}

// mouseClickCmd clicks a button.
func (a *app) mouseClickCmd() *cobra.Command {
	var double bool

	cmd := &cobra.Command{
		Use:       "click [left|right|middle]",
		Short:     "Click a mouse button",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"left", "right", "middle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			button := uint8(hid.MouseButtonLeft)
			if len(args) == 1 {
				var err error
				if button, err = parseButton(args[0]); err != nil {
					return err
				}
			}
			return a.withClient(cmd, func(ctx context.Context, c *kvm.Client) error {
				if double {
					return c.MouseDoubleClick(ctx, button)
				}
				return c.MouseClick(ctx, button)
			})
		},
	}

	cmd.Flags().BoolVar(&double, "double", false, "double-click")
	return cmd
}

// mouseScrollCmd turns the wheel.
func (a *app) mouseScrollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scroll <delta>",
		Short: "Turn the scroll wheel (positive scrolls up)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var delta int
			if _, err := fmt.Sscanf(args[0], "%d", &delta); err != nil {
				return errors.Wrapf(pkg.ErrInvalidParameter, "scroll delta %q", args[0])
			}
			return a.withClient(cmd, func(ctx context.Context, c *kvm.Client) error {
				return c.MouseScroll(ctx, delta)
			})
		},
	}
}

// parseXY parses a coordinate argument pair.
func parseXY(xs, ys string) (int, int, error) {
	var x, y int
	if _, err := fmt.Sscanf(xs, "%d", &x); err != nil {
		return 0, 0, errors.Wrapf(pkg.ErrInvalidParameter, "x coordinate %q", xs)
	}
	if _, err := fmt.Sscanf(ys, "%d", &y); err != nil {
		return 0, 0, errors.Wrapf(pkg.ErrInvalidParameter, "y coordinate %q", ys)
	}
	return x, y, nil
}

// parseButton maps a button name to its report bit.
func parseButton(name string) (uint8, error) {
	switch strings.ToLower(name) {
	case "left":
		return hid.MouseButtonLeft, nil
	case "right":
		return hid.MouseButtonRight, nil
	case "middle":
		return hid.MouseButtonMiddle, nil
	default:
		return 0, errors.Wrapf(pkg.ErrInvalidParameter,
			"unknown button %q (want left, right, or middle)", name)
	}
}
