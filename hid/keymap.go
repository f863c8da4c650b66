package hid

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/ardnew/nanokvm/pkg"
)

// Key is a single resolved key: a usage code plus any modifier bits that
// must be held with it (Shift for the upper-case and symbol characters).
type Key struct {
	Usage     uint8 // HID usage code (page 0x07)
	Modifiers uint8 // Modifier bits implied by the key itself
}

// keyNames maps lower-case key names to usage codes. Letters, digits,
// navigation, function, keypad, and modifier keys are all addressable
// by name; aliases cover the common spellings.
var keyNames = map[string]uint8{
	"a": KeyA, "b": KeyB, "c": KeyC, "d": KeyD, "e": KeyE, "f": KeyF,
	"g": KeyG, "h": KeyH, "i": KeyI, "j": KeyJ, "k": KeyK, "l": KeyL,
	"m": KeyM, "n": KeyN, "o": KeyO, "p": KeyP, "q": KeyQ, "r": KeyR,
	"s": KeyS, "t": KeyT, "u": KeyU, "v": KeyV, "w": KeyW, "x": KeyX,
	"y": KeyY, "z": KeyZ,

	"1": Key1, "2": Key2, "3": Key3, "4": Key4, "5": Key5,
	"6": Key6, "7": Key7, "8": Key8, "9": Key9, "0": Key0,

	"enter": KeyEnter, "return": KeyEnter,
	"esc": KeyEscape, "escape": KeyEscape,
	"backspace": KeyBackspace,
	"tab":       KeyTab,
	"space":     KeySpace,
	"minus":     KeyMinus, "-": KeyMinus,
	"equal": KeyEqual, "=": KeyEqual,
	"leftbrace": KeyLeftBrace, "[": KeyLeftBrace,
	"rightbrace": KeyRightBrace, "]": KeyRightBrace,
	"backslash": KeyBackslash, `\`: KeyBackslash,
	"semicolon": KeySemicolon, ";": KeySemicolon,
	"quote": KeyQuote, "'": KeyQuote,
	"grave": KeyGrave, "`": KeyGrave,
	"comma": KeyComma, ",": KeyComma,
	"dot": KeyDot, "period": KeyDot, ".": KeyDot,
	"slash": KeySlash, "/": KeySlash,
	"capslock": KeyCapsLock,

	"f1": KeyF1, "f2": KeyF2, "f3": KeyF3, "f4": KeyF4,
	"f5": KeyF5, "f6": KeyF6, "f7": KeyF7, "f8": KeyF8,
	"f9": KeyF9, "f10": KeyF10, "f11": KeyF11, "f12": KeyF12,

	"printscreen": KeyPrintScreen, "sysrq": KeyPrintScreen,
	"scrolllock": KeyScrollLock,
	"pause":      KeyPause,
	"insert":     KeyInsert,
	"home":       KeyHome,
	"pageup":     KeyPageUp, "pgup": KeyPageUp,
	"delete": KeyDelete, "del": KeyDelete,
	"end":      KeyEnd,
	"pagedown": KeyPageDown, "pgdn": KeyPageDown,
	"right": KeyRight, "left": KeyLeft, "down": KeyDown, "up": KeyUp,

	"numlock": KeyNumLock,
	"kpslash": KeyKPSlash,
	"kpstar":  KeyKPAsterisk,
	"kpminus": KeyKPMinus,
	"kpplus":  KeyKPPlus,
	"kpenter": KeyKPEnter,
	"kp1":     KeyKP1,
	"kp2":     KeyKP2,
	"kp3":     KeyKP3,
	"kp4":     KeyKP4,
	"kp5":     KeyKP5,
	"kp6":     KeyKP6,
	"kp7":     KeyKP7,
	"kp8":     KeyKP8,
	"kp9":     KeyKP9,
	"kp0":     KeyKP0,
	"kpdot":   KeyKPDot,
	"menu":    KeyApplication,
	"app":     KeyApplication,

	"ctrl": KeyLeftCtrl, "control": KeyLeftCtrl, "lctrl": KeyLeftCtrl,
	"shift": KeyLeftShift, "lshift": KeyLeftShift,
	"alt": KeyLeftAlt, "lalt": KeyLeftAlt,
	"meta": KeyLeftGUI, "gui": KeyLeftGUI, "win": KeyLeftGUI,
	"super": KeyLeftGUI, "cmd": KeyLeftGUI,
	"rctrl":  KeyRightCtrl,
	"rshift": KeyRightShift,
	"ralt":   KeyRightAlt, "altgr": KeyRightAlt,
	"rgui": KeyRightGUI, "rwin": KeyRightGUI,
}

// shiftedRunes maps shifted US-layout characters to their unshifted key.
var shiftedRunes = map[rune]rune{
	'!': '1', '@': '2', '#': '3', '$': '4', '%': '5',
	'^': '6', '&': '7', '*': '8', '(': '9', ')': '0',
	'_': '-', '+': '=', '{': '[', '}': ']', '|': '\\',
	':': ';', '"': '\'', '~': '`', '<': ',', '>': '.', '?': '/',
}

// LookupName resolves a key name to its usage code.
func LookupName(name string) (uint8, error) {
	usage, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, errors.Wrap(pkg.ErrUnknownKey, name)
	}
	return usage, nil
}

// LookupRune resolves a printable character to a Key, setting the Shift
// modifier for upper-case letters and shifted symbols. Only the US
// layout is supported.
func LookupRune(r rune) (Key, error) {
	switch {
	case r >= 'a' && r <= 'z':
		return Key{Usage: KeyA + uint8(r-'a')}, nil
	case r >= 'A' && r <= 'Z':
		return Key{Usage: KeyA + uint8(r-'A'), Modifiers: ModLeftShift}, nil
	case r >= '1' && r <= '9':
		return Key{Usage: Key1 + uint8(r-'1')}, nil
	case r == '0':
		return Key{Usage: Key0}, nil
	case r == ' ':
		return Key{Usage: KeySpace}, nil
	case r == '\n':
		return Key{Usage: KeyEnter}, nil
	case r == '\t':
		return Key{Usage: KeyTab}, nil
	}

	if base, ok := shiftedRunes[r]; ok {
		k, err := LookupRune(base)
		if err != nil {
			return Key{}, err
		}
		k.Modifiers |= ModLeftShift
		return k, nil
	}

	if usage, ok := keyNames[string(r)]; ok {
		return Key{Usage: usage}, nil
	}

	return Key{}, errors.Wrapf(pkg.ErrUnknownKey, "rune %q", r)
}

// Chord is a parsed key combination: the folded modifier byte plus at
// most six concurrently pressed keys.
type Chord struct {
	Modifiers uint8   // Folded modifier bits
	Keys      []uint8 // Non-modifier usage codes, in order
}

// ParseChord parses a combination like "ctrl+alt+del" or "shift+f5".
// Modifier names fold into the modifier byte; at most six non-modifier
// keys are allowed. Names are case-insensitive and separated by '+'.
func ParseChord(combo string) (Chord, error) {
	var chord Chord

	parts := strings.Split(combo, "+")
	if len(parts) == 0 || combo == "" {
		return Chord{}, errors.Wrap(pkg.ErrInvalidParameter, "empty chord")
	}

	for _, part := range parts {
		usage, err := LookupName(part)
		if err != nil {
			return Chord{}, err
		}
		if IsModifierUsage(usage) {
			chord.Modifiers |= ModifierBit(usage)
			continue
		}
		if len(chord.Keys) >= 6 {
			return Chord{}, errors.Wrap(pkg.ErrInvalidParameter, "more than 6 keys in chord")
		}
		chord.Keys = append(chord.Keys, usage)
	}

	if chord.Modifiers == 0 && len(chord.Keys) == 0 {
		return Chord{}, errors.Wrap(pkg.ErrInvalidParameter, "chord resolves to nothing")
	}
	return chord, nil
}
