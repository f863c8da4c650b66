package hid

// Keyboard modifier bits.
const (
	ModLeftCtrl   = 1 << 0
	ModLeftShift  = 1 << 1
	ModLeftAlt    = 1 << 2
	ModLeftGUI    = 1 << 3
	ModRightCtrl  = 1 << 4
	ModRightShift = 1 << 5
	ModRightAlt   = 1 << 6
	ModRightGUI   = 1 << 7
)

// Keyboard LED bits (lock state reported by the controller).
const (
	LEDNumLock    = 1 << 0
	LEDCapsLock   = 1 << 1
	LEDScrollLock = 1 << 2
	LEDCompose    = 1 << 3
	LEDKana       = 1 << 4
)

// Keyboard usage codes (USB HID Usage Tables, page 0x07).
const (
	KeyNone        = 0x00
	KeyA           = 0x04
	KeyB           = 0x05
	KeyC           = 0x06
	KeyD           = 0x07
	KeyE           = 0x08
	KeyF           = 0x09
	KeyG           = 0x0A
	KeyH           = 0x0B
	KeyI           = 0x0C
	KeyJ           = 0x0D
	KeyK           = 0x0E
	KeyL           = 0x0F
	KeyM           = 0x10
	KeyN           = 0x11
	KeyO           = 0x12
	KeyP           = 0x13
	KeyQ           = 0x14
	KeyR           = 0x15
	KeyS           = 0x16
	KeyT           = 0x17
	KeyU           = 0x18
	KeyV           = 0x19
	KeyW           = 0x1A
	KeyX           = 0x1B
	KeyY           = 0x1C
	KeyZ           = 0x1D
	Key1           = 0x1E
	Key2           = 0x1F
	Key3           = 0x20
	Key4           = 0x21
	Key5           = 0x22
	Key6           = 0x23
	Key7           = 0x24
	Key8           = 0x25
	Key9           = 0x26
	Key0           = 0x27
	KeyEnter       = 0x28
	KeyEscape      = 0x29
	KeyBackspace   = 0x2A
	KeyTab         = 0x2B
	KeySpace       = 0x2C
	KeyMinus       = 0x2D
	KeyEqual       = 0x2E
	KeyLeftBrace   = 0x2F
	KeyRightBrace  = 0x30
	KeyBackslash   = 0x31
	KeySemicolon   = 0x33
	KeyQuote       = 0x34
	KeyGrave       = 0x35
	KeyComma       = 0x36
	KeyDot         = 0x37
	KeySlash       = 0x38
	KeyCapsLock    = 0x39
	KeyF1          = 0x3A
	KeyF2          = 0x3B
	KeyF3          = 0x3C
	KeyF4          = 0x3D
	KeyF5          = 0x3E
	KeyF6          = 0x3F
	KeyF7          = 0x40
	KeyF8          = 0x41
	KeyF9          = 0x42
	KeyF10         = 0x43
	KeyF11         = 0x44
	KeyF12         = 0x45
	KeyPrintScreen = 0x46
	KeyScrollLock  = 0x47
	KeyPause       = 0x48
	KeyInsert      = 0x49
	KeyHome        = 0x4A
	KeyPageUp      = 0x4B
	KeyDelete      = 0x4C
	KeyEnd         = 0x4D
	KeyPageDown    = 0x4E
	KeyRight       = 0x4F
	KeyLeft        = 0x50
	KeyDown        = 0x51
	KeyUp          = 0x52
	KeyNumLock     = 0x53
	KeyKPSlash     = 0x54
	KeyKPAsterisk  = 0x55
	KeyKPMinus     = 0x56
	KeyKPPlus      = 0x57
	KeyKPEnter     = 0x58
	KeyKP1         = 0x59
	KeyKP2         = 0x5A
	KeyKP3         = 0x5B
	KeyKP4         = 0x5C
	KeyKP5         = 0x5D
	KeyKP6         = 0x5E
	KeyKP7         = 0x5F
	KeyKP8         = 0x60
	KeyKP9         = 0x61
	KeyKP0         = 0x62
	KeyKPDot       = 0x63
	KeyApplication = 0x65
)

// Modifier keys as usage codes (used by the key name table; when one of
// these appears in a chord it folds into the modifier byte instead of a
// key slot).
const (
	KeyLeftCtrl   = 0xE0
	KeyLeftShift  = 0xE1
	KeyLeftAlt    = 0xE2
	KeyLeftGUI    = 0xE3
	KeyRightCtrl  = 0xE4
	KeyRightShift = 0xE5
	KeyRightAlt   = 0xE6
	KeyRightGUI   = 0xE7
)

// Mouse button bits.
const (
	MouseButtonLeft   = 1 << 0
	MouseButtonRight  = 1 << 1
	MouseButtonMiddle = 1 << 2
	MouseButtonBack   = 1 << 3
	MouseButtonFwd    = 1 << 4
)

// MediaKey identifies a consumer-control key as a position in the
// 3-byte media report bitmap.
type MediaKey struct {
	Byte uint8 // Bitmap byte index (0-2)
	Bit  uint8 // Bit within the byte (0-7)
}

// Consumer-control keys carried in the media report bitmap.
var (
	MediaVolumeUp   = MediaKey{0, 0}
	MediaVolumeDown = MediaKey{0, 1}
	MediaMute       = MediaKey{0, 2}
	MediaPlayPause  = MediaKey{0, 3}
	MediaNextTrack  = MediaKey{0, 4}
	MediaPrevTrack  = MediaKey{0, 5}
	MediaStop       = MediaKey{0, 6}
	MediaEject      = MediaKey{0, 7}
	MediaWWWHome    = MediaKey{1, 0}
	MediaWWWBack    = MediaKey{1, 1}
	MediaWWWForward = MediaKey{1, 2}
	MediaWWWRefresh = MediaKey{1, 3}
	MediaMail       = MediaKey{1, 4}
	MediaCalculator = MediaKey{1, 5}
)

// Set sets this key's bit in a media report bitmap.
func (k MediaKey) Set(bitmap *[3]uint8) {
	if k.Byte < 3 && k.Bit < 8 {
		bitmap[k.Byte] |= 1 << k.Bit
	}
}

// IsModifierUsage returns true if usage is a modifier key (0xE0-0xE7).
func IsModifierUsage(usage uint8) bool {
	return usage >= KeyLeftCtrl && usage <= KeyRightGUI
}

// ModifierBit returns the modifier byte bit for a modifier usage code,
// or 0 if the usage is not a modifier.
func ModifierBit(usage uint8) uint8 {
	if !IsModifierUsage(usage) {
		return 0
	}
	return 1 << (usage - KeyLeftCtrl)
}
