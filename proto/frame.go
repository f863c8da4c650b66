package proto

import (
	"github.com/ardnew/nanokvm/pkg"
)

// Frame header bytes.
const (
	Head1 = 0x57
	Head2 = 0xAB
)

// Frame layout sizes.
const (
	// HeaderSize is the number of bytes before the payload
	// (HEAD1, HEAD2, ADDR, CMD, LEN).
	HeaderSize = 5

	// MinFrameSize is the smallest possible frame (empty payload).
	MinFrameSize = HeaderSize + 1

	// MaxDataLen is the largest payload carried by a single frame.
	MaxDataLen = 255

	// MaxFrameSize is the largest possible frame.
	MaxFrameSize = HeaderSize + MaxDataLen + 1
)

// Frame is a single protocol frame.
//
// Data is not copied by ParseFrame; it aliases the parse buffer and is
// only valid until the buffer is reused.
type Frame struct {
	Addr uint8  // Device address (0x00 unless reconfigured)
	Cmd  Cmd    // Command or reply code
	Data []byte // Payload (LEN bytes)
}

// EncodedLen returns the number of bytes MarshalTo will write.
func (f *Frame) EncodedLen() int {
	return HeaderSize + len(f.Data) + 1
}

// MarshalTo writes the encoded frame to buf, computing the checksum.
// Returns the number of bytes written, or 0 if buf is too small or the
// payload exceeds MaxDataLen.
func (f *Frame) MarshalTo(buf []byte) int {
	if len(f.Data) > MaxDataLen {
		return 0
	}
	n := f.EncodedLen()
	if len(buf) < n {
		return 0
	}
	buf[0] = Head1
	buf[1] = Head2
	buf[2] = f.Addr
	buf[3] = uint8(f.Cmd)
	buf[4] = uint8(len(f.Data))
	copy(buf[HeaderSize:], f.Data)
	buf[n-1] = Checksum(buf[:n-1])
	return n
}

// Checksum returns the low byte of the arithmetic sum of data.
func Checksum(data []byte) uint8 {
	var sum int
	for _, b := range data {
		sum += int(b)
	}
	return uint8(sum)
}

// findHead returns the index of the first HEAD1 HEAD2 sequence in buf.
// If no complete sequence is found but buf ends with HEAD1, the index
// of that trailing byte is returned with found=false so the caller can
// preserve it for the next read.
func findHead(buf []byte) (idx int, found bool) {
	for i := 0; i < len(buf)-1; i++ {
		if buf[i] == Head1 && buf[i+1] == Head2 {
			return i, true
		}
	}
	if len(buf) > 0 && buf[len(buf)-1] == Head1 {
		return len(buf) - 1, false
	}
	return len(buf), false
}

// ParseFrame scans buf for a complete frame and fills out.
//
// The returned count tells the caller how many bytes to discard from the
// front of its accumulation buffer:
//
//   - nil error: count spans through the end of the parsed frame, and
//     out.Data aliases buf.
//   - pkg.ErrShortFrame: a header was found but the frame is incomplete;
//     count spans the garbage before the header. Keep the rest and read
//     more input.
//   - pkg.ErrHeadNotFound: no header in buf; count spans everything except
//     a possible trailing HEAD1 byte.
//   - pkg.ErrChecksum: a framed region failed its checksum; count spans
//     past the bad header so a rescan can make progress.
func ParseFrame(buf []byte, out *Frame) (int, error) {
	start, found := findHead(buf)
	if !found {
		return start, pkg.ErrHeadNotFound
	}

	if len(buf)-start < MinFrameSize {
		return start, pkg.ErrShortFrame
	}

	addr := buf[start+2]
	cmd := buf[start+3]
	dataLen := int(buf[start+4])

	end := start + HeaderSize + dataLen + 1
	if len(buf) < end {
		return start, pkg.ErrShortFrame
	}

	sum := buf[end-1]
	if Checksum(buf[start:end-1]) != sum {
		// Skip the bad header so the next scan can resync.
		return start + 2, pkg.ErrChecksum
	}

	out.Addr = addr
	out.Cmd = Cmd(cmd)
	out.Data = buf[start+HeaderSize : end-1]
	return end, nil
}

// NewFrame constructs a frame with the given payload. The payload is
// stored by reference.
func NewFrame(addr uint8, cmd Cmd, data []byte) Frame {
	return Frame{Addr: addr, Cmd: cmd, Data: data}
}
