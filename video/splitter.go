package video

import (
	"github.com/pkg/errors"

	"github.com/ardnew/nanokvm/pkg"
)

// JPEG stream markers.
const (
	soi0 = 0xFF // Start-of-image, first byte
	soi1 = 0xD8 // Start-of-image, second byte
	eoi0 = 0xFF // End-of-image, first byte
	eoi1 = 0xD9 // End-of-image, second byte
)

// DefaultMaxFrameSize bounds a single JPEG frame. A frame growing past
// the bound indicates a corrupt stream (a lost EOI marker), not a
// legitimately large image.
const DefaultMaxFrameSize = 8 << 20

// Splitter is an incremental MJPEG framer. Bytes are appended with
// Write and complete JPEG images are drained with Next.
//
// Next returns each frame as a subslice of the splitter's internal
// buffer, valid only until the following Write call; callers that
// retain frames must Clone them.
type Splitter struct {
	acc      []byte
	scanFrom int // Resume offset for the EOI scan
	maxFrame int
}

// NewSplitter creates a splitter with the given frame size bound, or
// DefaultMaxFrameSize if max is zero.
func NewSplitter(max int) *Splitter {
	if max <= 0 {
		max = DefaultMaxFrameSize
	}
	return &Splitter{maxFrame: max}
}

// Write appends stream bytes to the splitter. It never fails; the
// io.Writer shape lets a splitter terminate an io.Copy chain.
func (s *Splitter) Write(p []byte) (int, error) {
	s.acc = append(s.acc, p...)
	return len(p), nil
}

// Next returns the next complete frame in the buffered stream, or nil
// if none is buffered yet. Bytes preceding the first start-of-image
// marker are discarded. A buffered partial frame exceeding the size
// bound is discarded and reported as ErrFrameTooLarge.
func (s *Splitter) Next() ([]byte, error) {
	// Drop noise before the first SOI marker.
	start := findMarker(s.acc, soi0, soi1)
	if start < 0 {
		// Keep a trailing 0xFF; it may be half a marker.
		keep := 0
		if n := len(s.acc); n > 0 && s.acc[n-1] == soi0 {
			keep = 1
		}
		s.acc = s.acc[:copy(s.acc, s.acc[len(s.acc)-keep:])]
		s.scanFrom = 0
		return nil, nil
	}
	if start > 0 {
		s.acc = s.acc[:copy(s.acc, s.acc[start:])]
		s.scanFrom = 0
	}

	// Scan for EOI, resuming where the previous call left off.
	if s.scanFrom < 2 {
		s.scanFrom = 2
	}
	end := findMarker(s.acc[s.scanFrom:], eoi0, eoi1)
	if end < 0 {
		if len(s.acc) > s.maxFrame {
			n := len(s.acc)
			s.acc = s.acc[:0]
			s.scanFrom = 0
			return nil, errors.Wrapf(pkg.ErrFrameTooLarge,
				"no end-of-image marker within %d bytes", n)
		}
		// Resume past the scanned region, backing up one byte in case
		// the buffer ends mid-marker.
		s.scanFrom = len(s.acc)
		if s.scanFrom > 2 {
			s.scanFrom--
		}
		return nil, nil
	}

	frameEnd := s.scanFrom + end + 2
	frame := s.acc[:frameEnd]
	s.acc = s.acc[frameEnd:]
	s.scanFrom = 0
	return frame, nil
}

// Reset discards all buffered stream bytes.
func (s *Splitter) Reset() {
	s.acc = s.acc[:0]
	s.scanFrom = 0
}

// Buffered returns the number of bytes awaiting a frame boundary.
func (s *Splitter) Buffered() int {
	return len(s.acc)
}

// Clone copies a frame out of the splitter's buffer so it survives
// subsequent Write calls.
func Clone(frame []byte) []byte {
	return append([]byte(nil), frame...)
}

// findMarker returns the index of the first two-byte marker in buf, or
// -1 if absent.
func findMarker(buf []byte, b0, b1 byte) int {
	for i := 0; i+1 < len(buf); i++ {
		if buf[i] == b0 && buf[i+1] == b1 {
			return i
		}
	}
	return -1
}
