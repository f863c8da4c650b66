package cli

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ardnew/nanokvm/internal/config"
	"github.com/ardnew/nanokvm/kvm"
	"github.com/ardnew/nanokvm/pkg"
	"github.com/ardnew/nanokvm/transport/serialport"
)

// app carries state shared between the root command and subcommands.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
}

// New builds the root command tree.
func New() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "nanokvm",
		Short: "Control a NanoKVM-USB controller over a serial port",
		Long: `nanokvm drives the HID controller of a NanoKVM-USB over its serial
protocol: keyboard and mouse input, hotkey chords, device configuration,
and MJPEG capture from a companion video device.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default nanokvm.yaml in ., ~/.config/nanokvm, /etc/nanokvm)")
	pf.String("port", "", "serial device path (e.g. /dev/ttyUSB0 or COM3)")
	pf.Int("baud", serialport.DefaultBaud, "serial baud rate")
	pf.Uint8("addr", 0, "controller frame address")
	pf.Duration("timeout", kvm.DefaultTimeout, "request/reply exchange timeout")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text, json)")

	root.AddCommand(
		a.portsCmd(),
		a.infoCmd(),
		a.keyCmd(),
		a.chordCmd(),
		a.typeCmd(),
		a.mouseCmd(),
		a.configCmd(),
		a.usbstringCmd(),
		a.resetCmd(),
		a.captureCmd(),
		a.versionCmd(),
	)
	return root
}

// setup loads configuration and applies the logging settings.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v, a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := parseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	pkg.SetLogLevel(level)

	switch strings.ToLower(cfg.LogFormat) {
	case "", "text":
		pkg.SetLogFormat(pkg.LogFormatText)
	case "json":
		pkg.SetLogFormat(pkg.LogFormatJSON)
	default:
		return errors.Wrapf(pkg.ErrInvalidParameter, "log format %q", cfg.LogFormat)
	}
	return nil
}

// parseLogLevel maps a level name to its slog level.
func parseLogLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, errors.Wrapf(pkg.ErrInvalidParameter, "log level %q", name)
	}
}

// withClient opens a client for the configured port, runs fn, and
// closes the client.
func (a *app) withClient(cmd *cobra.Command, fn func(ctx context.Context, c *kvm.Client) error) error {
	if a.cfg.Port == "" {
		return errors.Wrap(pkg.ErrInvalidParameter,
			"no serial port configured (use --port or see 'nanokvm ports')")
	}

	port := serialport.New(serialport.Config{
		Path:        a.cfg.Port,
		Baud:        a.cfg.Baud,
		ReadTimeout: a.cfg.Timeout,
	})
	c := kvm.New(port,
		kvm.WithAddr(a.cfg.Addr),
		kvm.WithTimeout(a.cfg.Timeout),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := c.Open(ctx); err != nil {
		return err
	}
	defer c.Close()

	return fn(ctx, c)
}
