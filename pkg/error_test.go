package pkg

import (
	"errors"
	"testing"
)

// =============================================================================
// Status Tests
// =============================================================================

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status   Status
		expected string
	}{
		{StatusSuccess, "success"},
		{StatusTimeout, "timeout"},
		{StatusHead, "bad head"},
		{StatusCommand, "bad command"},
		{StatusChecksum, "bad checksum"},
		{StatusParameter, "bad parameter"},
		{StatusOperate, "operation failed"},
		{Status(0x42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.status.String(); got != tt.expected {
				t.Errorf("Status(0x%02X).String() = %q, want %q", uint8(tt.status), got, tt.expected)
			}
		})
	}
}

func TestStatus_Error(t *testing.T) {
	tests := []struct {
		status   Status
		expected error
	}{
		{StatusSuccess, nil},
		{StatusTimeout, ErrStatusTimeout},
		{StatusHead, ErrStatusHead},
		{StatusCommand, ErrStatusCommand},
		{StatusChecksum, ErrStatusChecksum},
		{StatusParameter, ErrStatusParameter},
		{StatusOperate, ErrStatusOperate},
		{Status(0xFF), ErrStatusOperate},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			if got := tt.status.Error(); !errors.Is(got, tt.expected) && got != tt.expected {
				t.Errorf("Status(0x%02X).Error() = %v, want %v", uint8(tt.status), got, tt.expected)
			}
		})
	}
}

// =============================================================================
// Sentinel Error Tests
// =============================================================================

func TestSentinelErrors_Distinct(t *testing.T) {
	sentinels := []error{
		ErrHeadNotFound,
		ErrShortFrame,
		ErrChecksum,
		ErrFrameTooLarge,
		ErrReplyMismatch,
		ErrTimeout,
		ErrNotConnected,
		ErrClosed,
		ErrBufferTooSmall,
		ErrInvalidParameter,
		ErrUnknownKey,
		ErrVersion,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %d and %d are not distinct: %v / %v", i, j, a, b)
			}
		}
	}
}
