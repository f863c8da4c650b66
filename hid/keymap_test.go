package hid

import (
	"errors"
	"testing"

	"github.com/ardnew/nanokvm/pkg"
)

// =============================================================================
// Key Name Tests
// =============================================================================

func TestLookupName(t *testing.T) {
	tests := []struct {
		name     string
		expected uint8
	}{
		{"a", KeyA},
		{"A", KeyA},
		{" enter ", KeyEnter},
		{"return", KeyEnter},
		{"esc", KeyEscape},
		{"f12", KeyF12},
		{"pgup", KeyPageUp},
		{"del", KeyDelete},
		{"ctrl", KeyLeftCtrl},
		{"win", KeyLeftGUI},
		{"altgr", KeyRightAlt},
		{"kp5", KeyKP5},
		{"/", KeySlash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LookupName(tt.name)
			if err != nil {
				t.Fatalf("LookupName(%q): %v", tt.name, err)
			}
			if got != tt.expected {
				t.Errorf("LookupName(%q) = 0x%02X, want 0x%02X", tt.name, got, tt.expected)
			}
		})
	}
}

func TestLookupName_Unknown(t *testing.T) {
	_, err := LookupName("hyperkey")
	if !errors.Is(err, pkg.ErrUnknownKey) {
		t.Errorf("err = %v, want ErrUnknownKey", err)
	}
}

// =============================================================================
// Rune Tests
// =============================================================================

func TestLookupRune(t *testing.T) {
	tests := []struct {
		r     rune
		usage uint8
		mods  uint8
	}{
		{'a', KeyA, 0},
		{'Z', KeyZ, ModLeftShift},
		{'0', Key0, 0},
		{'7', Key7, 0},
		{'!', Key1, ModLeftShift},
		{'?', KeySlash, ModLeftShift},
		{'_', KeyMinus, ModLeftShift},
		{'"', KeyQuote, ModLeftShift},
		{' ', KeySpace, 0},
		{'\n', KeyEnter, 0},
		{'\t', KeyTab, 0},
		{'-', KeyMinus, 0},
		{'.', KeyDot, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			k, err := LookupRune(tt.r)
			if err != nil {
				t.Fatalf("LookupRune(%q): %v", tt.r, err)
			}
			if k.Usage != tt.usage {
				t.Errorf("Usage = 0x%02X, want 0x%02X", k.Usage, tt.usage)
			}
			if k.Modifiers != tt.mods {
				t.Errorf("Modifiers = 0x%02X, want 0x%02X", k.Modifiers, tt.mods)
			}
		})
	}
}

func TestLookupRune_Unknown(t *testing.T) {
	_, err := LookupRune('é')
	if !errors.Is(err, pkg.ErrUnknownKey) {
		t.Errorf("err = %v, want ErrUnknownKey", err)
	}
}

// =============================================================================
// Chord Tests
// =============================================================================

func TestParseChord(t *testing.T) {
	tests := []struct {
		combo string
		mods  uint8
		keys  []uint8
	}{
		{"ctrl+alt+del", ModLeftCtrl | ModLeftAlt, []uint8{KeyDelete}},
		{"shift+f5", ModLeftShift, []uint8{KeyF5}},
		{"ctrl+shift+esc", ModLeftCtrl | ModLeftShift, []uint8{KeyEscape}},
		{"win+d", ModLeftGUI, []uint8{KeyD}},
		{"CTRL+C", ModLeftCtrl, []uint8{KeyC}},
		{"ctrl", ModLeftCtrl, nil},
		{"a", 0, []uint8{KeyA}},
		{"ralt+tab", ModRightAlt, []uint8{KeyTab}},
	}

	for _, tt := range tests {
		t.Run(tt.combo, func(t *testing.T) {
			chord, err := ParseChord(tt.combo)
			if err != nil {
				t.Fatalf("ParseChord(%q): %v", tt.combo, err)
			}
			if chord.Modifiers != tt.mods {
				t.Errorf("Modifiers = 0x%02X, want 0x%02X", chord.Modifiers, tt.mods)
			}
			if len(chord.Keys) != len(tt.keys) {
				t.Fatalf("Keys = %v, want %v", chord.Keys, tt.keys)
			}
			for i := range tt.keys {
				if chord.Keys[i] != tt.keys[i] {
					t.Errorf("Keys[%d] = 0x%02X, want 0x%02X", i, chord.Keys[i], tt.keys[i])
				}
			}
		})
	}
}

func TestParseChord_Errors(t *testing.T) {
	tests := []struct {
		name  string
		combo string
	}{
		{"empty", ""},
		{"unknown key", "ctrl+bogus"},
		{"too many keys", "a+b+c+d+e+f+g"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseChord(tt.combo); err == nil {
				t.Errorf("ParseChord(%q) should fail", tt.combo)
			}
		})
	}
}

// =============================================================================
// Modifier Helper Tests
// =============================================================================

func TestModifierBit(t *testing.T) {
	tests := []struct {
		usage    uint8
		expected uint8
	}{
		{KeyLeftCtrl, ModLeftCtrl},
		{KeyLeftShift, ModLeftShift},
		{KeyLeftAlt, ModLeftAlt},
		{KeyLeftGUI, ModLeftGUI},
		{KeyRightCtrl, ModRightCtrl},
		{KeyRightGUI, ModRightGUI},
		{KeyA, 0},
		{KeyEnter, 0},
	}

	for _, tt := range tests {
		if got := ModifierBit(tt.usage); got != tt.expected {
			t.Errorf("ModifierBit(0x%02X) = 0x%02X, want 0x%02X", tt.usage, got, tt.expected)
		}
	}
}

func TestMediaKey_Set(t *testing.T) {
	var bitmap [3]uint8
	MediaVolumeUp.Set(&bitmap)
	MediaMute.Set(&bitmap)
	MediaWWWHome.Set(&bitmap)

	if bitmap[0] != 0x05 {
		t.Errorf("bitmap[0] = 0x%02X, want 0x05", bitmap[0])
	}
	if bitmap[1] != 0x01 {
		t.Errorf("bitmap[1] = 0x%02X, want 0x01", bitmap[1])
	}
	if bitmap[2] != 0x00 {
		t.Errorf("bitmap[2] = 0x%02X, want 0x00", bitmap[2])
	}
}
