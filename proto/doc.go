// Package proto implements the serial wire protocol spoken by the
// NanoKVM-USB controller chip.
//
// # Frame Format
//
// Every command and reply travels in a single frame:
//
//	[0x57][0xAB][ADDR][CMD][LEN][DATA...][SUM]
//
// SUM is the low byte of the arithmetic sum of every preceding byte.
// Replies echo the command code with bit 7 set (CMD | 0x80) and most
// carry a single status byte; see [github.com/ardnew/nanokvm/pkg.Status].
//
// # Zero-Allocation Design
//
// Packet types follow a MarshalTo/Parse pattern with caller-provided
// buffers. [ParseFrame] returns payload data as a subslice of the input
// buffer; callers that retain frames across reads must copy.
//
// # Stream Resynchronization
//
// [ParseFrame] reports how many input bytes it consumed, allowing a
// stream reader to discard noise before the header sequence and to
// accumulate partial frames across short reads:
//
//	n, err := proto.ParseFrame(buf[:fill], &frame)
//	switch {
//	case err == nil:
//	    // frame is valid; buf[n:fill] holds any trailing bytes
//	case errors.Is(err, pkg.ErrShortFrame):
//	    // keep buf[n:fill], read more
//	case errors.Is(err, pkg.ErrChecksum):
//	    // drop buf[:n], rescan
//	}
package proto
