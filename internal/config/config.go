package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all runtime settings. Precedence is flag over
// environment over config file over default.
type Config struct {
	Port      string        `mapstructure:"port"`       // Serial device path
	Baud      int           `mapstructure:"baud"`       // Serial baud rate
	Addr      uint8         `mapstructure:"addr"`       // Frame address
	Timeout   time.Duration `mapstructure:"timeout"`    // Exchange timeout
	LogLevel  string        `mapstructure:"log-level"`  // debug, info, warn, error
	LogFormat string        `mapstructure:"log-format"` // text or json

	Video VideoConfig `mapstructure:"video"`
}

// VideoConfig holds capture settings.
type VideoConfig struct {
	Device   string `mapstructure:"device"`    // MJPEG stream device or file
	MaxFrame int    `mapstructure:"max-frame"` // Single-frame size bound in bytes
	OutDir   string `mapstructure:"out-dir"`   // Capture session root directory
}

// EnvPrefix is the environment variable prefix: NANOKVM_PORT,
// NANOKVM_LOG_LEVEL, NANOKVM_VIDEO_DEVICE, and so on.
const EnvPrefix = "NANOKVM"

// New creates a viper instance with defaults, environment binding, and
// config file search paths registered.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("port", "")
	v.SetDefault("baud", 57600)
	v.SetDefault("addr", 0)
	v.SetDefault("timeout", 3*time.Second)
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "text")
	v.SetDefault("video.device", "")
	v.SetDefault("video.max-frame", 0)
	v.SetDefault("video.out-dir", "capture")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("nanokvm")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/nanokvm")
	v.AddConfigPath("/etc/nanokvm")

	return v
}

// Load reads the config file (the explicit path if given, otherwise
// the search paths), applies flag overrides, and unmarshals. A missing
// config file is not an error; a malformed one is.
func Load(v *viper.Viper, cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config file")
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, errors.Wrap(err, "bind flags")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	return &cfg, nil
}
