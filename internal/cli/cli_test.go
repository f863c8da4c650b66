package cli

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/nanokvm/hid"
	"github.com/ardnew/nanokvm/pkg"
)

func TestNew_CommandTree(t *testing.T) {
	root := New()

	want := []string{
		"ports", "info", "key", "chord", "type", "mouse",
		"config", "usbstring", "reset", "capture", "version",
	}
	have := make(map[string]bool)
	for _, cmd := range root.Commands() {
		have[cmd.Name()] = true
	}
	for _, name := range want {
		require.True(t, have[name], "missing subcommand %q", name)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		level, err := parseLogLevel(tt.name)
		require.NoError(t, err, tt.name)
		require.Equal(t, tt.want, level, tt.name)
	}

	_, err := parseLogLevel("loud")
	require.ErrorIs(t, err, pkg.ErrInvalidParameter)
}

func TestParseButton(t *testing.T) {
	button, err := parseButton("Right")
	require.NoError(t, err)
	require.Equal(t, uint8(hid.MouseButtonRight), button)

	_, err = parseButton("fourth")
	require.ErrorIs(t, err, pkg.ErrInvalidParameter)
}

func TestParseXY(t *testing.T) {
	x, y, err := parseXY("100", "-50")
	require.NoError(t, err)
	require.Equal(t, 100, x)
	require.Equal(t, -50, y)

	_, _, err = parseXY("wide", "0")
	require.ErrorIs(t, err, pkg.ErrInvalidParameter)
}

func TestVersionCommand(t *testing.T) {
	root := New()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	require.Contains(t, out.String(), "nanokvm")
}

func TestCaptureCommand_RecordsStream(t *testing.T) {
	frame := []byte{0xFF, 0xD8, 0xDE, 0xAD, 0xFF, 0xD9}
	src := filepath.Join(t.TempDir(), "stream.mjpeg")
	require.NoError(t, os.WriteFile(src, frame, 0o644))
	outDir := t.TempDir()

	root := New()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"capture", "--device", src, "--out", outDir, "--frames", "1"})

	require.NoError(t, root.Execute())
	require.Contains(t, out.String(), "1 frames")

	// The session stream holds the recorded frame byte for byte; the
	// summary only prints after the stream file closes cleanly.
	sessions, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	stream, err := os.ReadFile(filepath.Join(outDir, sessions[0].Name(), "stream.mjpeg"))
	require.NoError(t, err)
	require.Equal(t, frame, stream)
}

func TestUnconfiguredPortFails(t *testing.T) {
	root := New()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"info"})

	err := root.Execute()
	require.ErrorIs(t, err, pkg.ErrInvalidParameter)
}
