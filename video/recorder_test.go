package video

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRecorder_WritesSessionStream(t *testing.T) {
	root := t.TempDir()
	r, err := NewRecorder(root)
	require.NoError(t, err)

	first := jpegFrame(0x01)
	second := jpegFrame(0x02, 0x03)
	require.NoError(t, r.WriteFrame(first))
	require.NoError(t, r.WriteFrame(second))
	require.NoError(t, r.Close())

	require.Equal(t, 2, r.Frames())
	require.Equal(t, int64(len(first)+len(second)), r.Bytes())

	// Session directory is uuid-named under the root.
	_, err = uuid.Parse(r.Session())
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, r.Session()), r.Dir())

	stream, err := os.ReadFile(filepath.Join(r.Dir(), "stream.mjpeg"))
	require.NoError(t, err)
	require.Equal(t, append(append([]byte(nil), first...), second...), stream)
}

func TestRecorder_CloseReportsFlushFailure(t *testing.T) {
	r, err := NewRecorder(t.TempDir())
	require.NoError(t, err)

	// A stream file that fails to flush must fail the session; callers
	// rely on Close surfacing the error.
	require.NoError(t, r.f.Close())
	require.Error(t, r.Close())
}

func TestRecorder_BadRoot(t *testing.T) {
	// A root path blocked by a regular file cannot hold sessions.
	root := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(root, nil, 0o644))

	_, err := NewRecorder(root)
	require.Error(t, err)
}
