package serialport

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"

	"github.com/ardnew/nanokvm/pkg"
)

// Defaults observed on NanoKVM-USB hardware.
const (
	// DefaultBaud is the controller's serial baud rate.
	DefaultBaud = 57600

	// DefaultReadTimeout bounds reads when no deadline is set.
	DefaultReadTimeout = 3 * time.Second
)

// Config describes a serial port connection.
type Config struct {
	Path        string        // Device path, e.g. /dev/ttyUSB0 or COM3
	Baud        int           // Baud rate (DefaultBaud if zero)
	ReadTimeout time.Duration // Fallback read timeout (DefaultReadTimeout if zero)

	// AssertControlLines keeps DTR and RTS asserted after open. The
	// controller expects both deasserted; leave this false unless
	// debugging line behavior.
	AssertControlLines bool
}

// withDefaults returns cfg with zero fields replaced by defaults.
func (c Config) withDefaults() Config {
	if c.Baud == 0 {
		c.Baud = DefaultBaud
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	return c
}

// Port is a Transport over a local serial device.
type Port struct {
	cfg Config

	mu   sync.Mutex
	port serial.Port
}

// New creates an unopened serial transport for the given configuration.
func New(cfg Config) *Port {
	return &Port{cfg: cfg.withDefaults()}
}

// Open opens the serial device with 8N1 framing and deasserts the DTR
// and RTS control lines (no terminal is attached on the far side).
func (p *Port) Open(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.port != nil {
		return nil
	}
	if p.cfg.Path == "" {
		return errors.Wrap(pkg.ErrInvalidParameter, "empty serial port path")
	}

	mode := &serial.Mode{
		BaudRate: p.cfg.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	type openResult struct {
		port serial.Port
		err  error
	}
	done := make(chan openResult, 1)
	go func() {
		port, err := serial.Open(p.cfg.Path, mode)
		done <- openResult{port, err}
	}()

	select {
	case <-ctx.Done():
		// The open may still complete; reclaim the handle if it does.
		go func() {
			if r := <-done; r.err == nil {
				r.port.Close()
			}
		}()
		return ctx.Err()
	case r := <-done:
		if r.err != nil {
			return errors.Wrapf(r.err, "open %s", p.cfg.Path)
		}
		p.port = r.port
	}

	if !p.cfg.AssertControlLines {
		if err := p.port.SetDTR(false); err != nil {
			pkg.LogWarn(pkg.ComponentTransport, "failed to deassert DTR",
				"port", p.cfg.Path, "error", err)
		}
		if err := p.port.SetRTS(false); err != nil {
			pkg.LogWarn(pkg.ComponentTransport, "failed to deassert RTS",
				"port", p.cfg.Path, "error", err)
		}
	}

	if err := p.port.SetReadTimeout(p.cfg.ReadTimeout); err != nil {
		p.port.Close()
		p.port = nil
		return errors.Wrapf(err, "set read timeout on %s", p.cfg.Path)
	}

	pkg.LogInfo(pkg.ComponentTransport, "serial port opened",
		"port", p.cfg.Path, "baud", mode.BaudRate)
	return nil
}

// Close closes the serial device.
func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.port == nil {
		return nil
	}
	err := p.port.Close()
	p.port = nil
	if err != nil {
		return errors.Wrapf(err, "close %s", p.cfg.Path)
	}
	return nil
}

// Write sends buf to the device.
func (p *Port) Write(buf []byte) (int, error) {
	p.mu.Lock()
	port := p.port
	p.mu.Unlock()

	if port == nil {
		return 0, pkg.ErrNotConnected
	}
	return port.Write(buf)
}

// Read fills buf with bytes from the device, bounded by the current
// read timeout. A timeout surfaces as a zero-byte read, which the
// caller maps to pkg.ErrTimeout.
func (p *Port) Read(buf []byte) (int, error) {
	p.mu.Lock()
	port := p.port
	p.mu.Unlock()

	if port == nil {
		return 0, pkg.ErrNotConnected
	}

	n, err := port.Read(buf)
	if err != nil {
		return n, err
	}
	if n == 0 {
		return 0, pkg.ErrTimeout
	}
	return n, nil
}

// SetReadDeadline bounds subsequent reads. The serial layer works with
// per-read timeouts, so the deadline is converted to a remaining
// duration at call time; a zero time restores the configured fallback.
func (p *Port) SetReadDeadline(t time.Time) error {
	p.mu.Lock()
	port := p.port
	p.mu.Unlock()

	if port == nil {
		return pkg.ErrNotConnected
	}

	timeout := p.cfg.ReadTimeout
	if !t.IsZero() {
		timeout = time.Until(t)
		if timeout <= 0 {
			timeout = time.Millisecond
		}
	}
	return port.SetReadTimeout(timeout)
}

// String returns the device path.
func (p *Port) String() string {
	return p.cfg.Path
}

// PortInfo describes a candidate serial port found during enumeration.
type PortInfo struct {
	Device  string // Device path
	IsUSB   bool   // Attached over USB
	VID     uint16 // USB vendor ID (if IsUSB)
	PID     uint16 // USB product ID (if IsUSB)
	Serial  string // USB serial number (if IsUSB)
	Product string // USB product string (if IsUSB)
}

// Enumerate lists serial ports on the system, with USB identity where
// the platform exposes it.
func Enumerate() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate serial ports")
	}

	infos := make([]PortInfo, 0, len(details))
	for _, d := range details {
		info := PortInfo{
			Device:  d.Name,
			IsUSB:   d.IsUSB,
			Serial:  d.SerialNumber,
			Product: d.Product,
		}
		if d.IsUSB {
			if vid, err := strconv.ParseUint(d.VID, 16, 16); err == nil {
				info.VID = uint16(vid)
			}
			if pid, err := strconv.ParseUint(d.PID, 16, 16); err == nil {
				info.PID = uint16(pid)
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}
