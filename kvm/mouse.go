package kvm

import (
	"context"

	"github.com/ardnew/nanokvm/proto"
)

// MouseMoveRelative moves the pointer by (dx, dy) pixels. Movements
// beyond the single-report range are split across multiple reports.
// Held buttons remain held through the movement.
func (c *Client) MouseMoveRelative(ctx context.Context, dx, dy int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for dx != 0 || dy != 0 {
		sx, sy := clampStep(dx), clampStep(dy)
		dx -= int(sx)
		dy -= int(sy)
		report := proto.MouseRel{Buttons: c.buttons, X: sx, Y: sy}
		if err := c.sendMouseRel(ctx, &report); err != nil {
			return err
		}
	}
	return nil
}

// MouseMoveAbsolute positions the pointer at pixel (x, y) on a target
// of the given resolution. Held buttons remain held.
func (c *Client) MouseMoveAbsolute(ctx context.Context, width, height, x, y int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	report := proto.MouseAbs{
		Buttons: c.buttons,
		Width:   width,
		Height:  height,
		X:       x,
		Y:       y,
	}
	return c.sendMouseAbs(ctx, &report)
}

// MouseButtonPress holds a button (hid.MouseButtonLeft and friends)
// without moving the pointer.
func (c *Client) MouseButtonPress(ctx context.Context, button uint8) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buttons |= button
	report := proto.MouseRel{Buttons: c.buttons}
	return c.sendMouseRel(ctx, &report)
}

// MouseButtonRelease releases a held button.
func (c *Client) MouseButtonRelease(ctx context.Context, button uint8) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buttons &^= button
	report := proto.MouseRel{Buttons: c.buttons}
	return c.sendMouseRel(ctx, &report)
}

// MouseClick presses and releases a button.
func (c *Client) MouseClick(ctx context.Context, button uint8) error {
	if err := c.MouseButtonPress(ctx, button); err != nil {
		return err
	}
	return c.MouseButtonRelease(ctx, button)
}

// MouseDoubleClick clicks a button twice.
func (c *Client) MouseDoubleClick(ctx context.Context, button uint8) error {
	if err := c.MouseClick(ctx, button); err != nil {
		return err
	}
	return c.MouseClick(ctx, button)
}

// MouseScroll turns the wheel by delta detents (positive scrolls up).
// Large deltas are split across multiple reports.
func (c *Client) MouseScroll(ctx context.Context, delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for delta != 0 {
		step := clampStep(delta)
		delta -= int(step)
		report := proto.MouseRel{Buttons: c.buttons, Wheel: step}
		if err := c.sendMouseRel(ctx, &report); err != nil {
			return err
		}
	}
	return nil
}

// SendMouseRelReport sends a raw relative mouse report. The held-button
// state tracked by MouseButtonPress is replaced by the report.
func (c *Client) SendMouseRelReport(ctx context.Context, report *proto.MouseRel) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buttons = report.Buttons
	return c.sendMouseRel(ctx, report)
}

// SendHIDData sends a custom HID payload (SEND_MY_HID_DATA).
func (c *Client) SendHIDData(ctx context.Context, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusExchange(ctx, proto.CmdSendHID, data)
}

// clampStep limits a movement delta to the signed single-byte range.
func clampStep(v int) int8 {
	if v > 127 {
		return 127
	}
	if v < -127 {
		return -127
	}
	return int8(v)
}

// sendMouseRel sends one relative report.
//
// Caller must hold c.mu.
func (c *Client) sendMouseRel(ctx context.Context, report *proto.MouseRel) error {
	var buf [proto.MouseRelSize]byte
	report.MarshalTo(buf[:])
	return c.statusExchange(ctx, proto.CmdSendMouseRel, buf[:])
}

// sendMouseAbs sends one absolute report.
//
// Caller must hold c.mu.
func (c *Client) sendMouseAbs(ctx context.Context, report *proto.MouseAbs) error {
	var buf [proto.MouseAbsSize]byte
	report.MarshalTo(buf[:])
	return c.statusExchange(ctx, proto.CmdSendMouseAbs, buf[:])
}
