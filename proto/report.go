package proto

// KeyboardReport is the 8-byte payload of SEND_KB_GENERAL_DATA:
// modifier byte, reserved byte, and six key slots.
type KeyboardReport struct {
	Modifiers uint8    // Modifier key state
	Reserved  uint8    // Reserved (always 0)
	Keys      [6]uint8 // Up to 6 simultaneous key codes
}

// KeyboardReportSize is the size of a keyboard report in bytes.
const KeyboardReportSize = 8

// MarshalTo writes the keyboard report to buf.
// Returns the number of bytes written, or 0 if buf is too small.
func (r *KeyboardReport) MarshalTo(buf []byte) int {
	if len(buf) < KeyboardReportSize {
		return 0
	}
	buf[0] = r.Modifiers
	buf[1] = r.Reserved
	copy(buf[2:], r.Keys[:])
	return KeyboardReportSize
}

// ParseKeyboardReport decodes a keyboard report payload into out.
// Returns false if data is too short.
func ParseKeyboardReport(data []byte, out *KeyboardReport) bool {
	if len(data) < KeyboardReportSize {
		return false
	}
	out.Modifiers = data[0]
	out.Reserved = data[1]
	copy(out.Keys[:], data[2:KeyboardReportSize])
	return true
}

// Clear resets the keyboard report to all keys released.
func (r *KeyboardReport) Clear() {
	r.Modifiers = 0
	r.Reserved = 0
	r.Keys = [6]uint8{}
}

// SetKey adds a key to the key array.
// Returns false if no slot is available.
func (r *KeyboardReport) SetKey(key uint8) bool {
	for i := range r.Keys {
		if r.Keys[i] == key {
			return true // Already set
		}
		if r.Keys[i] == 0 {
			r.Keys[i] = key
			return true
		}
	}
	return false
}

// ClearKey removes a key from the key array, compacting remaining slots.
func (r *KeyboardReport) ClearKey(key uint8) {
	for i := range r.Keys {
		if r.Keys[i] == key {
			copy(r.Keys[i:], r.Keys[i+1:])
			r.Keys[len(r.Keys)-1] = 0
			return
		}
	}
}

// IsEmpty returns true if no modifier or key is held.
func (r *KeyboardReport) IsEmpty() bool {
	if r.Modifiers != 0 {
		return false
	}
	for _, k := range r.Keys {
		if k != 0 {
			return false
		}
	}
	return true
}

// MediaReport is the payload of SEND_KB_MEDIA_DATA: a consumer-control
// report ID followed by a 3-byte usage bitmap.
type MediaReport struct {
	Bitmap [3]uint8 // Consumer usage bitmap
}

// MediaReportSize is the size of a media report payload in bytes.
const MediaReportSize = 4

// mediaReportID is the report ID prefix byte of a media report.
const mediaReportID = 0x02

// MarshalTo writes the media report to buf.
// Returns the number of bytes written, or 0 if buf is too small.
func (r *MediaReport) MarshalTo(buf []byte) int {
	if len(buf) < MediaReportSize {
		return 0
	}
	buf[0] = mediaReportID
	copy(buf[1:], r.Bitmap[:])
	return MediaReportSize
}

// ParseMediaReport decodes a media report payload into out.
// Returns false if data is too short or the report ID is wrong.
func ParseMediaReport(data []byte, out *MediaReport) bool {
	if len(data) < MediaReportSize || data[0] != mediaReportID {
		return false
	}
	copy(out.Bitmap[:], data[1:MediaReportSize])
	return true
}

// Clear resets the media report.
func (r *MediaReport) Clear() {
	r.Bitmap = [3]uint8{}
}
