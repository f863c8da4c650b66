// Package hid provides USB HID usage tables and key name resolution for
// the nanokvm client.
//
// The controller chip forwards standard HID reports to the target, so
// every key sent through it is addressed by its usage code (USB HID
// Usage Tables, keyboard page 0x07). This package carries:
//
//   - Usage code constants for keyboard, keypad, and modifier keys
//   - Modifier byte and lock LED bit definitions
//   - Mouse button bits and consumer-control (media) key positions
//   - A key name table ("enter", "f5", "pgup", ...) with aliases
//   - Rune resolution for typing text (US layout, Shift implied)
//   - Chord parsing for hotkey combinations ("ctrl+alt+del")
//
// Chords exist for hotkeys the local desktop would otherwise intercept:
// the combination is resolved here and delivered to the target through
// the controller, never through the local window system.
package hid
