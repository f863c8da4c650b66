package video

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ardnew/nanokvm/pkg"
)

// streamFileName is the capture stream file within a session directory.
const streamFileName = "stream.mjpeg"

// Recorder writes captured frames to a per-session directory. Each
// session gets a uuid-named directory under the recorder root holding
// a single concatenated MJPEG stream file.
type Recorder struct {
	session string
	dir     string
	f       *os.File
	frames  int
	bytes   int64
}

// NewRecorder starts a capture session under root, creating the
// session directory and stream file.
func NewRecorder(root string) (*Recorder, error) {
	session := uuid.NewString()
	dir := filepath.Join(root, session)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create session directory %s", dir)
	}
	f, err := os.Create(filepath.Join(dir, streamFileName))
	if err != nil {
		return nil, errors.Wrap(err, "create stream file")
	}
	pkg.LogInfo(pkg.ComponentVideo, "capture session started",
		"session", session, "dir", dir)
	return &Recorder{session: session, dir: dir, f: f}, nil
}

// WriteFrame appends one frame to the stream file.
func (r *Recorder) WriteFrame(frame []byte) error {
	n, err := r.f.Write(frame)
	r.bytes += int64(n)
	if err != nil {
		return errors.Wrap(err, "write frame")
	}
	r.frames++
	return nil
}

// Close flushes and closes the stream file.
func (r *Recorder) Close() error {
	pkg.LogInfo(pkg.ComponentVideo, "capture session finished",
		"session", r.session, "frames", r.frames, "bytes", r.bytes)
	return errors.Wrap(r.f.Close(), "close stream file")
}

// Session returns the session identifier.
func (r *Recorder) Session() string { return r.session }

// Dir returns the session directory path.
func (r *Recorder) Dir() string { return r.dir }

// Frames returns the number of frames written.
func (r *Recorder) Frames() int { return r.frames }

// Bytes returns the number of stream bytes written.
func (r *Recorder) Bytes() int64 { return r.bytes }
