package proto

import (
	"github.com/ardnew/nanokvm/pkg"
)

// ParaCfgSize is the payload size of GET_PARA_CFG replies and
// SET_PARA_CFG requests.
const ParaCfgSize = 50

// ParaCfg is the controller's persistent parameter configuration.
//
// Offsets within the 50-byte payload:
//
//	 0      working mode
//	 1      serial communication mode
//	 2      device address
//	 3-6    baud rate, big-endian
//	 7-8    reserved
//	 9-10   serial packet interval (ms), big-endian
//	11-12   USB vendor ID, little-endian
//	13-14   USB product ID, little-endian
//	15-16   keyboard upload interval (ms), big-endian
//	17-18   keyboard release delay (ms), big-endian
//	19      auto-enter flag
//	20-23   enter character block
//	24-27   filter character block
//	28      custom USB descriptor enable bits
//	29      keyboard fast upload flag
//	30-49   reserved
type ParaCfg struct {
	WorkMode         uint8    // Composite HID / keyboard-only / custom
	SerialMode       uint8    // Protocol framing mode on the serial side
	Addr             uint8    // Frame address field
	Baud             uint32   // Serial baud rate
	SerialInterval   uint16   // Inter-packet interval in ms
	VID              uint16   // USB vendor ID presented to the target
	PID              uint16   // USB product ID presented to the target
	KeyboardInterval uint16   // Keyboard report upload interval in ms
	ReleaseDelay     uint16   // Automatic key release delay in ms
	AutoEnter        bool     // Append Enter after ASCII mode input
	EnterChars       [4]uint8 // Characters treated as Enter
	FilterChars      [4]uint8 // Characters dropped from ASCII input
	CustomDescriptor uint8    // Per-string custom descriptor enable bits
	FastUpload       bool     // Keyboard fast upload mode

	// Reserved regions, carried verbatim so a read-modify-write cycle
	// hands undocumented chip state back unchanged.
	Reserved7  [2]uint8  // Offsets 7-8
	Reserved30 [20]uint8 // Offsets 30-49
}

// DefaultParaCfg returns the configuration the controller ships with,
// as observed on NanoKVM-USB hardware.
func DefaultParaCfg() ParaCfg {
	return ParaCfg{
		WorkMode:         0x00,
		SerialMode:       0x00,
		Addr:             0x00,
		Baud:             57600,
		SerialInterval:   3,
		VID:              0x1A86,
		PID:              0xE129,
		KeyboardInterval: 1,
		ReleaseDelay:     1,
		EnterChars:       [4]uint8{0x0D, 0x00, 0x00, 0x00},
	}
}

// MarshalTo writes the configuration payload to buf.
// Returns the number of bytes written, or 0 if buf is too small.
func (c *ParaCfg) MarshalTo(buf []byte) int {
	if len(buf) < ParaCfgSize {
		return 0
	}
	for i := 0; i < ParaCfgSize; i++ {
		buf[i] = 0
	}

	buf[0] = c.WorkMode
	buf[1] = c.SerialMode
	buf[2] = c.Addr
	buf[3] = byte(c.Baud >> 24)
	buf[4] = byte(c.Baud >> 16)
	buf[5] = byte(c.Baud >> 8)
	buf[6] = byte(c.Baud)
	copy(buf[7:9], c.Reserved7[:])
	buf[9] = byte(c.SerialInterval >> 8)
	buf[10] = byte(c.SerialInterval)
	buf[11] = byte(c.VID)
	buf[12] = byte(c.VID >> 8)
	buf[13] = byte(c.PID)
	buf[14] = byte(c.PID >> 8)
	buf[15] = byte(c.KeyboardInterval >> 8)
	buf[16] = byte(c.KeyboardInterval)
	buf[17] = byte(c.ReleaseDelay >> 8)
	buf[18] = byte(c.ReleaseDelay)
	if c.AutoEnter {
		buf[19] = 1
	}
	copy(buf[20:24], c.EnterChars[:])
	copy(buf[24:28], c.FilterChars[:])
	buf[28] = c.CustomDescriptor
	if c.FastUpload {
		buf[29] = 1
	}
	copy(buf[30:ParaCfgSize], c.Reserved30[:])
	return ParaCfgSize
}

// ParseParaCfg decodes a configuration payload into out.
func ParseParaCfg(data []byte, out *ParaCfg) error {
	if len(data) < ParaCfgSize {
		return pkg.ErrShortFrame
	}

	out.WorkMode = data[0]
	out.SerialMode = data[1]
	out.Addr = data[2]
	out.Baud = uint32(data[3])<<24 | uint32(data[4])<<16 | uint32(data[5])<<8 | uint32(data[6])
	copy(out.Reserved7[:], data[7:9])
	out.SerialInterval = uint16(data[9])<<8 | uint16(data[10])
	out.VID = uint16(data[11]) | uint16(data[12])<<8
	out.PID = uint16(data[13]) | uint16(data[14])<<8
	out.KeyboardInterval = uint16(data[15])<<8 | uint16(data[16])
	out.ReleaseDelay = uint16(data[17])<<8 | uint16(data[18])
	out.AutoEnter = data[19] != 0
	copy(out.EnterChars[:], data[20:24])
	copy(out.FilterChars[:], data[24:28])
	out.CustomDescriptor = data[28]
	out.FastUpload = data[29] != 0
	copy(out.Reserved30[:], data[30:ParaCfgSize])
	return nil
}
