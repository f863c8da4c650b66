package pkg

import "errors"

// Serial protocol errors.
var (
	// ErrHeadNotFound indicates the frame header sequence was not found.
	ErrHeadNotFound = errors.New("frame header not found")

	// ErrShortFrame indicates the buffer ends before a complete frame.
	ErrShortFrame = errors.New("incomplete frame")

	// ErrChecksum indicates a frame checksum mismatch.
	ErrChecksum = errors.New("checksum mismatch")

	// ErrFrameTooLarge indicates the frame payload exceeds the maximum length.
	ErrFrameTooLarge = errors.New("frame payload too large")

	// ErrReplyMismatch indicates a reply did not echo the outstanding command.
	ErrReplyMismatch = errors.New("reply command mismatch")

	// ErrTimeout indicates a request timed out waiting for a reply.
	ErrTimeout = errors.New("request timeout")

	// ErrNotConnected indicates the transport is not open.
	ErrNotConnected = errors.New("transport not connected")

	// ErrClosed indicates the transport or client has been closed.
	ErrClosed = errors.New("closed")

	// ErrBufferTooSmall indicates the provided buffer is too small.
	ErrBufferTooSmall = errors.New("buffer too small")

	// ErrInvalidParameter indicates an invalid parameter was provided.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnknownKey indicates a key name with no HID usage mapping.
	ErrUnknownKey = errors.New("unknown key name")

	// ErrVersion indicates an unrecognized chip version byte.
	ErrVersion = errors.New("unrecognized chip version")
)

// Controller status errors, mapped from the status byte carried in
// command replies.
var (
	// ErrStatusTimeout indicates the controller timed out on serial receive.
	ErrStatusTimeout = errors.New("controller: serial receive timeout")

	// ErrStatusHead indicates the controller rejected the frame header.
	ErrStatusHead = errors.New("controller: bad frame header")

	// ErrStatusCommand indicates the controller rejected the command code.
	ErrStatusCommand = errors.New("controller: unknown command")

	// ErrStatusChecksum indicates the controller computed a different checksum.
	ErrStatusChecksum = errors.New("controller: checksum mismatch")

	// ErrStatusParameter indicates the controller rejected a parameter.
	ErrStatusParameter = errors.New("controller: bad parameter")

	// ErrStatusOperate indicates the controller could not execute the command.
	ErrStatusOperate = errors.New("controller: operation failed")
)

// Status represents the status byte returned in command replies.
type Status uint8

// Status byte values.
const (
	StatusSuccess   Status = 0x00 // Command executed
	StatusTimeout   Status = 0xE1 // Serial receive timeout
	StatusHead      Status = 0xE2 // Bad frame header
	StatusCommand   Status = 0xE3 // Unknown command code
	StatusChecksum  Status = 0xE4 // Checksum mismatch
	StatusParameter Status = 0xE5 // Bad parameter
	StatusOperate   Status = 0xE6 // Execution failure
)

// String returns a string representation of the status byte.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusTimeout:
		return "timeout"
	case StatusHead:
		return "bad head"
	case StatusCommand:
		return "bad command"
	case StatusChecksum:
		return "bad checksum"
	case StatusParameter:
		return "bad parameter"
	case StatusOperate:
		return "operation failed"
	default:
		return "unknown"
	}
}

// Error returns the corresponding error for the status byte.
func (s Status) Error() error {
	switch s {
	case StatusSuccess:
		return nil
	case StatusTimeout:
		return ErrStatusTimeout
	case StatusHead:
		return ErrStatusHead
	case StatusCommand:
		return ErrStatusCommand
	case StatusChecksum:
		return ErrStatusChecksum
	case StatusParameter:
		return ErrStatusParameter
	case StatusOperate:
		return ErrStatusOperate
	default:
		return ErrStatusOperate
	}
}
