package pipe

import (
	"context"
	"sync"
	"time"

	"github.com/ardnew/nanokvm/pkg"
)

// queue is one direction of the duplex pipe: an unbounded byte buffer
// with blocking, deadline-aware reads.
type queue struct {
	mu     sync.Mutex
	buf    []byte
	notify chan struct{}
	closed bool
}

func newQueue() *queue {
	return &queue{notify: make(chan struct{}, 1)}
}

func (q *queue) write(p []byte) (int, error) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return 0, pkg.ErrClosed
	}
	q.buf = append(q.buf, p...)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
	return len(p), nil
}

func (q *queue) read(p []byte, deadline time.Time) (int, error) {
	var timer *time.Timer
	var timeout <-chan time.Time
	if !deadline.IsZero() {
		d := time.Until(deadline)
		if d <= 0 {
			d = time.Millisecond
		}
		timer = time.NewTimer(d)
		timeout = timer.C
		defer timer.Stop()
	}

	for {
		q.mu.Lock()
		if len(q.buf) > 0 {
			n := copy(p, q.buf)
			q.buf = q.buf[n:]
			q.mu.Unlock()
			return n, nil
		}
		if q.closed {
			q.mu.Unlock()
			return 0, pkg.ErrClosed
		}
		q.mu.Unlock()

		select {
		case <-q.notify:
		case <-timeout:
			return 0, pkg.ErrTimeout
		}
	}
}

func (q *queue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// End is one side of an in-memory duplex pipe. Both ends implement the
// transport interface.
type End struct {
	name string
	rd   *queue // Bytes written by the peer
	wr   *queue // Bytes read by the peer

	mu       sync.Mutex
	deadline time.Time
}

// New creates a connected pair of pipe ends. Bytes written to one end
// are readable at the other.
func New() (*End, *End) {
	ab := newQueue()
	ba := newQueue()
	a := &End{name: "pipe:a", rd: ba, wr: ab}
	b := &End{name: "pipe:b", rd: ab, wr: ba}
	return a, b
}

// Open is a no-op; pipe ends are connected at creation.
func (e *End) Open(ctx context.Context) error {
	return ctx.Err()
}

// Close closes both directions. The peer's blocked reads return
// pkg.ErrClosed once its buffer drains.
func (e *End) Close() error {
	e.rd.close()
	e.wr.close()
	return nil
}

// Write sends buf to the peer.
func (e *End) Write(buf []byte) (int, error) {
	return e.wr.write(buf)
}

// Read fills buf with bytes from the peer, honoring the read deadline.
func (e *End) Read(buf []byte) (int, error) {
	e.mu.Lock()
	deadline := e.deadline
	e.mu.Unlock()
	return e.rd.read(buf, deadline)
}

// SetReadDeadline bounds subsequent Read calls.
func (e *End) SetReadDeadline(t time.Time) error {
	e.mu.Lock()
	e.deadline = t
	e.mu.Unlock()
	return nil
}

// String returns the end's name.
func (e *End) String() string {
	return e.name
}
