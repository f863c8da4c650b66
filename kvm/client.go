package kvm

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/ardnew/nanokvm/pkg"
	"github.com/ardnew/nanokvm/proto"
	"github.com/ardnew/nanokvm/transport"
)

// DefaultTimeout bounds a request/reply exchange when the caller's
// context carries no deadline.
const DefaultTimeout = 3 * time.Second

// Option configures a Client.
type Option func(*Client)

// WithAddr sets the frame address (0x00 unless the controller has been
// reconfigured).
func WithAddr(addr uint8) Option {
	return func(c *Client) { c.addr = addr }
}

// WithTimeout sets the fallback exchange timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// Client drives a NanoKVM-USB controller over a byte transport.
//
// All exported methods are safe for concurrent use; exchanges with the
// controller are serialized with an internal lock, mirroring the
// single-writer discipline the serial line requires.
type Client struct {
	tr      transport.Transport
	addr    uint8
	timeout time.Duration

	mu     sync.Mutex
	closed bool

	// Accumulation buffer for reply parsing (zero-allocation pattern).
	rxBuf  [4 * proto.MaxFrameSize]byte
	rxFill int
	txBuf  [proto.MaxFrameSize]byte // request marshal and reply payload scratch

	// Held input state.
	keyboard proto.KeyboardReport
	buttons  uint8

	// Callback for unsolicited READ_MY_HID_DATA frames.
	onHIDData func(data []byte)
}

// New creates a client over the given transport. The transport is not
// opened; call Open.
func New(tr transport.Transport, opts ...Option) *Client {
	c := &Client{
		tr:      tr,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open opens the underlying transport.
func (c *Client) Open(ctx context.Context) error {
	return c.tr.Open(ctx)
}

// Close closes the underlying transport. In-flight exchanges fail.
// The transport is closed before the client lock is taken so that an
// exchange blocked in Read fails immediately rather than running to
// its deadline.
func (c *Client) Close() error {
	err := c.tr.Close()
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return err
}

// SetOnHIDData sets the callback invoked when the controller pushes a
// custom HID payload (READ_MY_HID_DATA). The data slice is only valid
// for the duration of the call.
func (c *Client) SetOnHIDData(cb func(data []byte)) {
	c.mu.Lock()
	c.onHIDData = cb
	c.mu.Unlock()
}

// deadline derives the exchange deadline from ctx or the fallback.
func (c *Client) deadline(ctx context.Context) time.Time {
	if d, ok := ctx.Deadline(); ok {
		return d
	}
	return time.Now().Add(c.timeout)
}

// exchange sends one command and waits for its reply. The returned
// payload aliases internal scratch space and is only valid until the
// next exchange; callers parse before releasing the lock.
//
// Caller must hold c.mu.
func (c *Client) exchange(ctx context.Context, cmd proto.Cmd, data []byte) ([]byte, error) {
	if c.closed {
		return nil, pkg.ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := proto.NewFrame(c.addr, cmd, data)
	n := f.MarshalTo(c.txBuf[:])
	if n == 0 {
		return nil, errors.Wrap(pkg.ErrFrameTooLarge, cmd.String())
	}

	if _, err := c.tr.Write(c.txBuf[:n]); err != nil {
		return nil, errors.Wrapf(err, "write %s", cmd.String())
	}

	deadline := c.deadline(ctx)
	if err := c.tr.SetReadDeadline(deadline); err != nil {
		return nil, errors.Wrapf(err, "set deadline for %s", cmd.String())
	}

	pkg.LogDebug(pkg.ComponentKVM, "request sent",
		"cmd", cmd.String(), "len", len(data))

	for {
		// Drain buffered frames before reading more input.
		for {
			var frame proto.Frame
			consumed, err := proto.ParseFrame(c.rxBuf[:c.rxFill], &frame)
			if errors.Is(err, pkg.ErrShortFrame) || errors.Is(err, pkg.ErrHeadNotFound) {
				c.discard(consumed)
				break
			}
			if err != nil {
				pkg.LogDebug(pkg.ComponentKVM, "resync after corrupt frame",
					"discarded", consumed)
				c.discard(consumed)
				continue
			}

			switch {
			case frame.Cmd == proto.CmdReadHID:
				if c.onHIDData != nil {
					c.onHIDData(frame.Data)
				}
				c.discard(consumed)

			case !frame.Cmd.IsReply():
				c.discard(consumed)
				return nil, errors.Wrapf(pkg.ErrReplyMismatch,
					"unexpected frame %s", frame.Cmd.String())

			case frame.Cmd == cmd.Reply() && frame.Addr == c.addr:
				// Copy the payload out before discarding the frame so
				// it survives resynchronization of the receive buffer.
				n := copy(c.txBuf[:], frame.Data)
				c.discard(consumed)
				return c.txBuf[:n], nil

			default:
				// Stale reply from a timed-out exchange.
				pkg.LogDebug(pkg.ComponentKVM, "discarding stale reply",
					"cmd", frame.Cmd.String())
				c.discard(consumed)
			}
		}

		if time.Now().After(deadline) {
			return nil, errors.Wrap(pkg.ErrTimeout, cmd.String())
		}

		n, err := c.tr.Read(c.rxBuf[c.rxFill:])
		if err != nil {
			if errors.Is(err, pkg.ErrTimeout) {
				return nil, errors.Wrap(pkg.ErrTimeout, cmd.String())
			}
			return nil, errors.Wrapf(err, "read %s reply", cmd.String())
		}
		c.rxFill += n
	}
}

// discard drops n bytes from the front of the accumulation buffer.
func (c *Client) discard(n int) {
	if n <= 0 {
		return
	}
	copy(c.rxBuf[:], c.rxBuf[n:c.rxFill])
	c.rxFill -= n
}

// statusExchange performs an exchange whose reply is a single status
// byte, mapping error statuses to their sentinels.
//
// Caller must hold c.mu.
func (c *Client) statusExchange(ctx context.Context, cmd proto.Cmd, data []byte) error {
	reply, err := c.exchange(ctx, cmd, data)
	if err != nil {
		return err
	}
	if len(reply) < 1 {
		return errors.Wrap(pkg.ErrShortFrame, cmd.String())
	}
	if err := pkg.Status(reply[0]).Error(); err != nil {
		return errors.Wrap(err, cmd.String())
	}
	return nil
}
