package serialport

import (
	"context"
	"testing"
	"time"

	"github.com/ardnew/nanokvm/pkg"
	"github.com/ardnew/nanokvm/transport"
)

// Interface compliance.
var _ transport.Transport = (*Port)(nil)

// =============================================================================
// Configuration defaults
// =============================================================================

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{Path: "/dev/ttyUSB0"}.withDefaults()
	if cfg.Baud != DefaultBaud {
		t.Errorf("Baud = %d, want %d", cfg.Baud, DefaultBaud)
	}
	if cfg.ReadTimeout != DefaultReadTimeout {
		t.Errorf("ReadTimeout = %v, want %v", cfg.ReadTimeout, DefaultReadTimeout)
	}

	cfg = Config{Path: "/dev/ttyUSB0", Baud: 115200, ReadTimeout: time.Second}.withDefaults()
	if cfg.Baud != 115200 || cfg.ReadTimeout != time.Second {
		t.Errorf("explicit settings overridden: %+v", cfg)
	}
}

// =============================================================================
// Unconnected port behavior
// =============================================================================

func TestPort_NotConnected(t *testing.T) {
	p := New(Config{Path: "/dev/ttyUSB0"})

	if _, err := p.Write([]byte{0x00}); err != pkg.ErrNotConnected {
		t.Errorf("Write error = %v, want ErrNotConnected", err)
	}
	if _, err := p.Read(make([]byte, 1)); err != pkg.ErrNotConnected {
		t.Errorf("Read error = %v, want ErrNotConnected", err)
	}
	if err := p.SetReadDeadline(time.Now()); err != pkg.ErrNotConnected {
		t.Errorf("SetReadDeadline error = %v, want ErrNotConnected", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close on unopened port = %v", err)
	}
}

func TestPort_OpenEmptyPath(t *testing.T) {
	p := New(Config{})

	err := p.Open(context.Background())
	if err == nil {
		p.Close()
		t.Fatal("Open with empty path succeeded")
	}
}

func TestPort_String(t *testing.T) {
	p := New(Config{Path: "/dev/ttyACM7"})
	if got := p.String(); got != "/dev/ttyACM7" {
		t.Errorf("String() = %q", got)
	}
}
