package video

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/nanokvm/pkg"
)

// jpegFrame builds a minimal synthetic JPEG: SOI, payload, EOI.
func jpegFrame(payload ...byte) []byte {
	frame := []byte{0xFF, 0xD8}
	frame = append(frame, payload...)
	return append(frame, 0xFF, 0xD9)
}

func TestSplitter_SingleFrame(t *testing.T) {
	s := NewSplitter(0)
	want := jpegFrame(0x01, 0x02, 0x03)

	s.Write(want)
	got, err := s.Next()
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Zero(t, s.Buffered())

	got, err = s.Next()
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSplitter_BackToBackFrames(t *testing.T) {
	s := NewSplitter(0)
	first := jpegFrame(0xAA)
	second := jpegFrame(0xBB, 0xCC)

	s.Write(append(append([]byte(nil), first...), second...))

	got, err := s.Next()
	require.NoError(t, err)
	require.Equal(t, first, Clone(got))

	got, err = s.Next()
	require.NoError(t, err)
	require.Equal(t, second, got)
}

func TestSplitter_DiscardsLeadingGarbage(t *testing.T) {
	s := NewSplitter(0)
	want := jpegFrame(0x42)

	s.Write([]byte{0x00, 0x13, 0x37})
	s.Write(want)

	got, err := s.Next()
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestSplitter_MarkerSplitAcrossWrites(t *testing.T) {
	s := NewSplitter(0)
	want := jpegFrame(0x10, 0x20, 0x30)

	for i := range want {
		s.Write(want[i : i+1])
		got, err := s.Next()
		require.NoError(t, err)
		if i < len(want)-1 {
			require.Nil(t, got, "byte %d", i)
		} else {
			require.Equal(t, want, got)
		}
	}
}

func TestSplitter_PartialFrameWaits(t *testing.T) {
	s := NewSplitter(0)

	s.Write([]byte{0xFF, 0xD8, 0x01, 0x02})
	got, err := s.Next()
	require.NoError(t, err)
	require.Nil(t, got)
	require.Equal(t, 4, s.Buffered())

	s.Write([]byte{0xFF, 0xD9})
	got, err = s.Next()
	require.NoError(t, err)
	require.Equal(t, jpegFrame(0x01, 0x02), got)
}

func TestSplitter_OversizedFrame(t *testing.T) {
	s := NewSplitter(16)

	// SOI followed by more than 16 bytes without an EOI.
	s.Write([]byte{0xFF, 0xD8})
	s.Write(make([]byte, 32))

	_, err := s.Next()
	require.ErrorIs(t, err, pkg.ErrFrameTooLarge)
	require.Zero(t, s.Buffered())

	// The stream recovers on the next complete frame.
	want := jpegFrame(0x55)
	s.Write(want)
	got, err := s.Next()
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestSplitter_Reset(t *testing.T) {
	s := NewSplitter(0)
	s.Write([]byte{0xFF, 0xD8, 0x01})
	s.Reset()
	require.Zero(t, s.Buffered())

	want := jpegFrame(0x99)
	s.Write(want)
	got, err := s.Next()
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestSplitter_TrailingFFPreserved(t *testing.T) {
	s := NewSplitter(0)

	// Garbage ending in 0xFF: the byte may be half an SOI marker.
	s.Write([]byte{0x00, 0x01, 0xFF})
	got, err := s.Next()
	require.NoError(t, err)
	require.Nil(t, got)
	require.Equal(t, 1, s.Buffered())

	s.Write([]byte{0xD8, 0x07, 0xFF, 0xD9})
	got, err = s.Next()
	require.NoError(t, err)
	require.Equal(t, jpegFrame(0x07), got)
}
