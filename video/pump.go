package video

import (
	"context"
	"io"
	"sync"

	"github.com/pkg/errors"

	"github.com/ardnew/nanokvm/pkg"
)

// Pump drains a Source through a Splitter and keeps the most recent
// complete frame in a single-slot mailbox. A slow consumer never backs
// up the capture stream; superseded frames are counted as dropped.
type Pump struct {
	src      Source
	splitter *Splitter

	mu        sync.Mutex
	latest    []byte // Owned copy of the newest frame
	delivered uint64
	dropped   uint64
	err       error

	notify chan struct{} // 1-buffered frame availability signal
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// PumpStats is a snapshot of pump counters.
type PumpStats struct {
	Delivered uint64 // Frames split from the stream
	Dropped   uint64 // Frames superseded before being taken
}

// NewPump creates a pump over the given source. maxFrame bounds a
// single JPEG frame, or DefaultMaxFrameSize if zero.
func NewPump(src Source, maxFrame int) *Pump {
	return &Pump{
		src:      src,
		splitter: NewSplitter(maxFrame),
		notify:   make(chan struct{}, 1),
	}
}

// Start begins pumping frames until ctx is cancelled, Stop is called,
// or the source fails.
func (p *Pump) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.wg.Add(1)
	go p.run(ctx)
	pkg.LogInfo(pkg.ComponentVideo, "pump started", "source", p.src.String())
}

// Stop cancels the pump and waits for the capture goroutine to exit.
// The source is closed.
func (p *Pump) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.src.Close()
	p.wg.Wait()
}

// Next blocks until a frame newer than the last one taken is
// available, then returns an owned copy of it. It fails when ctx is
// cancelled or the pump has stopped.
func (p *Pump) Next(ctx context.Context) ([]byte, error) {
	for {
		var stopped bool
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case _, ok := <-p.notify:
			stopped = !ok
		}

		p.mu.Lock()
		frame := p.latest
		p.latest = nil
		p.mu.Unlock()
		if frame != nil {
			return frame, nil
		}
		if stopped {
			if err := p.Err(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
	}
}

// Latest returns an owned copy of the newest frame without waiting, or
// nil if no frame has arrived since the last take.
func (p *Pump) Latest() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	frame := p.latest
	p.latest = nil
	return frame
}

// Stats returns a snapshot of the pump counters.
func (p *Pump) Stats() PumpStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PumpStats{Delivered: p.delivered, Dropped: p.dropped}
}

// Err returns the error that stopped the pump, or nil while running.
// io.EOF is reported as nil; the stream simply ended.
func (p *Pump) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if errors.Is(p.err, io.EOF) {
		return nil
	}
	return p.err
}

// run is the capture loop.
func (p *Pump) run(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.notify)

	buf := make([]byte, 64<<10)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		n, err := p.src.Read(buf)
		if n > 0 {
			p.splitter.Write(buf[:n])
			p.drainFrames()
		}
		if err != nil {
			p.mu.Lock()
			p.err = err
			p.mu.Unlock()
			if !errors.Is(err, io.EOF) {
				pkg.LogError(pkg.ComponentVideo, "capture stream failed",
					"source", p.src.String(), "error", err)
			}
			return
		}
	}
}

// drainFrames moves every complete buffered frame into the mailbox.
func (p *Pump) drainFrames() {
	for {
		frame, err := p.splitter.Next()
		if err != nil {
			pkg.LogWarn(pkg.ComponentVideo, "discarding oversized frame",
				"source", p.src.String(), "error", err)
			continue
		}
		if frame == nil {
			return
		}

		p.mu.Lock()
		if p.latest != nil {
			p.dropped++
		}
		p.latest = Clone(frame)
		p.delivered++
		p.mu.Unlock()

		select {
		case p.notify <- struct{}{}:
		default:
		}
	}
}
