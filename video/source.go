package video

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// Source produces raw MJPEG stream bytes.
type Source interface {
	io.ReadCloser

	// String identifies the source for logging.
	String() string
}

// DeviceSource reads an MJPEG byte stream from a device node or file,
// such as a V4L2 capture device configured for MJPEG output.
type DeviceSource struct {
	path string
	f    *os.File
}

var _ Source = (*DeviceSource)(nil)

// NewDeviceSource creates a source for the given path. The device is
// not opened until the first Read.
func NewDeviceSource(path string) *DeviceSource {
	return &DeviceSource{path: path}
}

// Read opens the device on first use and reads stream bytes.
func (s *DeviceSource) Read(p []byte) (int, error) {
	if s.f == nil {
		f, err := os.Open(s.path)
		if err != nil {
			return 0, errors.Wrapf(err, "open capture device %s", s.path)
		}
		s.f = f
	}
	return s.f.Read(p)
}

// Close closes the device if it was opened.
func (s *DeviceSource) Close() error {
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}

// String returns the device path.
func (s *DeviceSource) String() string {
	return s.path
}

// ReaderSource adapts any io.Reader into a Source, for piped streams
// and tests.
type ReaderSource struct {
	r    io.Reader
	name string
}

var _ Source = (*ReaderSource)(nil)

// NewReaderSource wraps r as a Source identified by name.
func NewReaderSource(r io.Reader, name string) *ReaderSource {
	return &ReaderSource{r: r, name: name}
}

// Read reads stream bytes from the wrapped reader.
func (s *ReaderSource) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// Close closes the wrapped reader if it is an io.Closer.
func (s *ReaderSource) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// String returns the source name.
func (s *ReaderSource) String() string {
	return s.name
}
