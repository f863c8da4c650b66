package kvm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/nanokvm/hid"
	"github.com/ardnew/nanokvm/proto"
)

func TestClient_MouseMoveRelative(t *testing.T) {
	c, emu := newTestClient(t)

	require.NoError(t, c.MouseMoveRelative(context.Background(), 10, -20))

	reports := emu.MouseRelReports()
	require.Len(t, reports, 1)
	require.Equal(t, proto.MouseRel{X: 10, Y: -20}, reports[0])
}

func TestClient_MouseMoveRelative_SplitsLargeDelta(t *testing.T) {
	c, emu := newTestClient(t)

	require.NoError(t, c.MouseMoveRelative(context.Background(), 300, -130))

	reports := emu.MouseRelReports()
	require.Len(t, reports, 3)
	require.Equal(t, proto.MouseRel{X: 127, Y: -127}, reports[0])
	require.Equal(t, proto.MouseRel{X: 127, Y: -3}, reports[1])
	require.Equal(t, proto.MouseRel{X: 46}, reports[2])

	// Net movement is preserved.
	var dx, dy int
	for _, r := range reports {
		dx += int(r.X)
		dy += int(r.Y)
	}
	require.Equal(t, 300, dx)
	require.Equal(t, -130, dy)
}

func TestClient_MouseMoveAbsolute(t *testing.T) {
	c, emu := newTestClient(t)

	require.NoError(t, c.MouseMoveAbsolute(context.Background(), 1920, 1080, 960, 540))

	reports := emu.MouseAbsReports()
	require.Len(t, reports, 1)
	require.Equal(t, uint16(2048), reports[0].X)
	require.Equal(t, uint16(2048), reports[0].Y)
}

func TestClient_MouseClick(t *testing.T) {
	c, emu := newTestClient(t)

	require.NoError(t, c.MouseClick(context.Background(), hid.MouseButtonLeft))

	reports := emu.MouseRelReports()
	require.Len(t, reports, 2)
	require.Equal(t, uint8(hid.MouseButtonLeft), reports[0].Buttons)
	require.Zero(t, reports[1].Buttons)
}

func TestClient_DragKeepsButtonHeld(t *testing.T) {
	c, emu := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.MouseButtonPress(ctx, hid.MouseButtonLeft))
	require.NoError(t, c.MouseMoveRelative(ctx, 5, 5))
	require.NoError(t, c.MouseButtonRelease(ctx, hid.MouseButtonLeft))

	reports := emu.MouseRelReports()
	require.Len(t, reports, 3)
	require.Equal(t, uint8(hid.MouseButtonLeft), reports[0].Buttons)
	require.Equal(t, uint8(hid.MouseButtonLeft), reports[1].Buttons)
	require.Equal(t, int8(5), reports[1].X)
	require.Zero(t, reports[2].Buttons)
}

func TestClient_MouseScroll(t *testing.T) {
	c, emu := newTestClient(t)

	require.NoError(t, c.MouseScroll(context.Background(), -3))

	reports := emu.MouseRelReports()
	require.Len(t, reports, 1)
	require.Equal(t, int8(-3), reports[0].Wheel)
}

func TestClient_SendHIDData(t *testing.T) {
	c, emu := newTestClient(t)

	payload := []byte{0x01, 0x02, 0x03}
	require.NoError(t, c.SendHIDData(context.Background(), payload))

	reports := emu.HIDReports()
	require.Len(t, reports, 1)
	require.Equal(t, payload, reports[0])
}
