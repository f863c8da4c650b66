package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(), "", nil)
	require.NoError(t, err)
	require.Equal(t, 57600, cfg.Baud)
	require.Equal(t, 3*time.Second, cfg.Timeout)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
	require.Equal(t, "capture", cfg.Video.OutDir)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nanokvm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"port: /dev/ttyUSB3\nbaud: 115200\nvideo:\n  device: /dev/video1\n",
	), 0o644))

	cfg, err := Load(New(), path, nil)
	require.NoError(t, err)
	require.Equal(t, "/dev/ttyUSB3", cfg.Port)
	require.Equal(t, 115200, cfg.Baud)
	require.Equal(t, "/dev/video1", cfg.Video.Device)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("NANOKVM_LOG_LEVEL", "debug")
	t.Setenv("NANOKVM_VIDEO_DEVICE", "/dev/video9")

	cfg, err := Load(New(), "", nil)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "/dev/video9", cfg.Video.Device)
}

func TestLoad_FlagBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nanokvm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("baud: 9600\n"), 0o644))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("baud", 57600, "")
	require.NoError(t, flags.Set("baud", "115200"))

	cfg, err := Load(New(), path, flags)
	require.NoError(t, err)
	require.Equal(t, 115200, cfg.Baud)
}
