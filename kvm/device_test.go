package kvm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/nanokvm/pkg"
	"github.com/ardnew/nanokvm/proto"
)

func TestClient_ParaCfgRoundTrip(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	cfg, err := c.ParaCfg(ctx)
	require.NoError(t, err)
	require.Equal(t, proto.DefaultParaCfg(), cfg)

	cfg.Baud = 115200
	cfg.VID = 0x1234
	cfg.PID = 0x5678
	require.NoError(t, c.SetParaCfg(ctx, &cfg))

	got, err := c.ParaCfg(ctx)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}

func TestClient_USBStrings(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	mfr, err := c.USBString(ctx, proto.StringManufacturer)
	require.NoError(t, err)
	require.Equal(t, "Sipeed", mfr)

	product, err := c.USBString(ctx, proto.StringProduct)
	require.NoError(t, err)
	require.Equal(t, "NanoKVM-USB", product)

	require.NoError(t, c.SetUSBString(ctx, proto.StringSerial, "KVM-42"))
	serial, err := c.USBString(ctx, proto.StringSerial)
	require.NoError(t, err)
	require.Equal(t, "KVM-42", serial)
}

func TestClient_SetUSBString_TooLong(t *testing.T) {
	c, _ := newTestClient(t)

	err := c.SetUSBString(context.Background(), proto.StringSerial,
		"this string is much too long for the descriptor")
	require.ErrorIs(t, err, pkg.ErrInvalidParameter)
}

func TestClient_SetDefaultCfg(t *testing.T) {
	c, emu := newTestClient(t)
	ctx := context.Background()

	cfg, err := c.ParaCfg(ctx)
	require.NoError(t, err)
	cfg.Baud = 9600
	require.NoError(t, c.SetParaCfg(ctx, &cfg))

	require.NoError(t, c.SetDefaultCfg(ctx))
	require.Equal(t, 1, emu.Defaults())
	require.Equal(t, proto.DefaultParaCfg(), emu.ParaCfg())
}

func TestClient_Reset(t *testing.T) {
	c, emu := newTestClient(t)

	require.NoError(t, c.Reset(context.Background()))
	require.Equal(t, 1, emu.Resets())
}
