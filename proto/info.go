package proto

import (
	"fmt"

	"github.com/ardnew/nanokvm/pkg"
)

// InfoSize is the payload size of a GET_INFO reply.
const InfoSize = 8

// Info is the decoded payload of a GET_INFO reply.
type Info struct {
	ChipVersion     string // Firmware version, e.g. "V1.1"
	TargetConnected bool   // Target USB enumeration state
	NumLock         bool   // Target Num Lock LED
	CapsLock        bool   // Target Caps Lock LED
	ScrollLock      bool   // Target Scroll Lock LED
}

// ParseInfo decodes a GET_INFO reply payload into out.
//
// The version byte is encoded as an offset from ASCII '0'; values below
// 0x30 are rejected with pkg.ErrVersion.
func ParseInfo(data []byte, out *Info) error {
	if len(data) < 3 {
		return pkg.ErrShortFrame
	}
	if data[0] < 0x30 {
		return pkg.ErrVersion
	}

	out.ChipVersion = fmt.Sprintf("V%.1f", 1.0+float64(data[0]-0x30)/10.0)
	out.TargetConnected = data[1] != 0
	out.NumLock = data[2]&(1<<0) != 0
	out.CapsLock = data[2]&(1<<1) != 0
	out.ScrollLock = data[2]&(1<<2) != 0
	return nil
}

// MarshalTo writes a GET_INFO reply payload for this Info.
// Returns the number of bytes written, or 0 if buf is too small or the
// chip version cannot be encoded.
func (i *Info) MarshalTo(buf []byte) int {
	if len(buf) < InfoSize {
		return 0
	}

	var major, minor int
	if _, err := fmt.Sscanf(i.ChipVersion, "V%d.%d", &major, &minor); err != nil || major < 1 {
		return 0
	}

	buf[0] = 0x30 + uint8((major-1)*10+minor)
	buf[1] = 0
	if i.TargetConnected {
		buf[1] = 1
	}
	buf[2] = 0
	if i.NumLock {
		buf[2] |= 1 << 0
	}
	if i.CapsLock {
		buf[2] |= 1 << 1
	}
	if i.ScrollLock {
		buf[2] |= 1 << 2
	}
	for n := 3; n < InfoSize; n++ {
		buf[n] = 0
	}
	return InfoSize
}

// String returns a human-readable summary.
func (i *Info) String() string {
	lock := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	return fmt.Sprintf("chip %s, target connected=%t, num=%s caps=%s scroll=%s",
		i.ChipVersion, i.TargetConnected,
		lock(i.NumLock), lock(i.CapsLock), lock(i.ScrollLock))
}
