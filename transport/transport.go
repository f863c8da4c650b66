package transport

import (
	"context"
	"time"
)

// Transport moves raw protocol bytes between the client and the
// controller chip.
//
// Implementations must be safe for concurrent use; the client layer
// serializes request/reply exchanges itself but may call Close from a
// different goroutine.
type Transport interface {
	// Open establishes the connection. The context can cancel a slow
	// open (e.g. a serial port held by another process).
	Open(ctx context.Context) error

	// Close tears down the connection. Blocked reads return pkg.ErrClosed
	// or an underlying close error after Close.
	Close() error

	// Write sends buf in its entirety.
	Write(buf []byte) (int, error)

	// Read fills buf with available bytes, blocking until at least one
	// byte arrives or the read deadline expires.
	Read(buf []byte) (int, error)

	// SetReadDeadline bounds subsequent Read calls. A zero time means
	// reads do not time out.
	SetReadDeadline(t time.Time) error

	// String describes the endpoint (port path, pipe name) for logging.
	String() string
}
