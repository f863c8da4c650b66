package proto

import (
	"github.com/ardnew/nanokvm/pkg"
)

// StringType selects which USB string descriptor to read or write.
type StringType uint8

// USB string descriptor selectors.
const (
	StringManufacturer StringType = 0x00
	StringProduct      StringType = 0x01
	StringSerial       StringType = 0x02
)

// String returns the descriptor selector name.
func (t StringType) String() string {
	switch t {
	case StringManufacturer:
		return "manufacturer"
	case StringProduct:
		return "product"
	case StringSerial:
		return "serial"
	default:
		return "unknown"
	}
}

// MaxUSBStringLen is the longest descriptor string the controller stores.
const MaxUSBStringLen = 23

// USBString is a custom USB string descriptor payload:
// selector byte, length byte, ASCII bytes.
type USBString struct {
	Type  StringType // Descriptor selector
	Value string     // ASCII contents, at most MaxUSBStringLen bytes
}

// MarshalTo writes the descriptor payload to buf.
// Returns the number of bytes written, or 0 if buf is too small or the
// string exceeds MaxUSBStringLen.
func (s *USBString) MarshalTo(buf []byte) int {
	if len(s.Value) > MaxUSBStringLen {
		return 0
	}
	n := 2 + len(s.Value)
	if len(buf) < n {
		return 0
	}
	buf[0] = uint8(s.Type)
	buf[1] = uint8(len(s.Value))
	copy(buf[2:], s.Value)
	return n
}

// ParseUSBString decodes a descriptor payload into out.
func ParseUSBString(data []byte, out *USBString) error {
	if len(data) < 2 {
		return pkg.ErrShortFrame
	}
	strLen := int(data[1])
	if strLen > MaxUSBStringLen {
		return pkg.ErrInvalidParameter
	}
	if len(data) < 2+strLen {
		return pkg.ErrShortFrame
	}
	out.Type = StringType(data[0])
	out.Value = string(data[2 : 2+strLen])
	return nil
}
