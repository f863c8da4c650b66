package kvm

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ardnew/nanokvm/hid"
	"github.com/ardnew/nanokvm/proto"
)

// errTooManyKeys reports more than six simultaneous non-modifier keys.
var errTooManyKeys = errors.New("too many keys held")

// SendKeyboardReport sends a raw 8-byte keyboard report. The held-key
// state tracked by KeyPress/KeyRelease is replaced by the report.
func (c *Client) SendKeyboardReport(ctx context.Context, report *proto.KeyboardReport) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keyboard = *report
	return c.sendKeyboard(ctx)
}

// KeyPress adds a key to the held-key state and sends the updated
// report. Modifier usages (0xE0..0xE7) fold into the modifier byte;
// other usages occupy one of the six key slots.
func (c *Client) KeyPress(ctx context.Context, usage uint8) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if hid.IsModifierUsage(usage) {
		c.keyboard.Modifiers |= hid.ModifierBit(usage)
	} else if !c.keyboard.SetKey(usage) {
		return errors.Wrapf(errTooManyKeys, "usage 0x%02X", usage)
	}
	return c.sendKeyboard(ctx)
}

// KeyRelease removes a key from the held-key state and sends the
// updated report. Releasing a key that is not held is a no-op report.
func (c *Client) KeyRelease(ctx context.Context, usage uint8) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if hid.IsModifierUsage(usage) {
		c.keyboard.Modifiers &^= hid.ModifierBit(usage)
	} else {
		c.keyboard.ClearKey(usage)
	}
	return c.sendKeyboard(ctx)
}

// ReleaseAll clears all held keys and modifiers and sends the all-zero
// report. Always send this after a sequence of presses; the controller
// latches the last report it saw.
func (c *Client) ReleaseAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keyboard.Clear()
	return c.sendKeyboard(ctx)
}

// Tap presses and releases a single key with the given modifiers held,
// leaving the keyboard idle afterward.
func (c *Client) Tap(ctx context.Context, modifiers, usage uint8) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keyboard.Clear()
	c.keyboard.Modifiers = modifiers
	c.keyboard.SetKey(usage)
	if err := c.sendKeyboard(ctx); err != nil {
		return err
	}
	c.keyboard.Clear()
	return c.sendKeyboard(ctx)
}

// SendChord presses every key of the chord simultaneously, then
// releases them all. Use hid.ParseChord to build chords from strings
// like "ctrl+alt+del".
func (c *Client) SendChord(ctx context.Context, chord hid.Chord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keyboard.Clear()
	c.keyboard.Modifiers = chord.Modifiers
	for _, usage := range chord.Keys {
		if !c.keyboard.SetKey(usage) {
			return errors.Wrapf(errTooManyKeys, "usage 0x%02X", usage)
		}
	}
	if err := c.sendKeyboard(ctx); err != nil {
		return err
	}
	c.keyboard.Clear()
	return c.sendKeyboard(ctx)
}

// TypeText types a string of text, one tap per rune, using the US
// layout mapping. Runes with no mapping fail with ErrUnknownKey.
func (c *Client) TypeText(ctx context.Context, text string) error {
	for _, r := range text {
		k, err := hid.LookupRune(r)
		if err != nil {
			return err
		}
		if err := c.Tap(ctx, k.Modifiers, k.Usage); err != nil {
			return errors.Wrapf(err, "rune %q", r)
		}
	}
	return nil
}

// SendMediaReport sends a raw consumer-control report.
func (c *Client) SendMediaReport(ctx context.Context, report *proto.MediaReport) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var buf [proto.MediaReportSize]byte
	report.MarshalTo(buf[:])
	return c.statusExchange(ctx, proto.CmdSendMedia, buf[:])
}

// TapMedia presses and releases the given consumer-control keys
// (volume, playback, and similar).
func (c *Client) TapMedia(ctx context.Context, keys ...hid.MediaKey) error {
	var report proto.MediaReport
	for _, k := range keys {
		k.Set(&report.Bitmap)
	}
	if err := c.SendMediaReport(ctx, &report); err != nil {
		return err
	}
	report = proto.MediaReport{}
	return c.SendMediaReport(ctx, &report)
}

// sendKeyboard sends the current held-key state.
//
// Caller must hold c.mu.
func (c *Client) sendKeyboard(ctx context.Context) error {
	var buf [proto.KeyboardReportSize]byte
	c.keyboard.MarshalTo(buf[:])
	return c.statusExchange(ctx, proto.CmdSendKeyboard, buf[:])
}
