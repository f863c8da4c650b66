package emulator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/nanokvm/pkg"
	"github.com/ardnew/nanokvm/proto"
	"github.com/ardnew/nanokvm/transport/pipe"
)

// =============================================================================
// Test helpers
// =============================================================================

// startEmulator wires an emulator to one end of a pipe and returns the
// host end for driving raw frames.
func startEmulator(t *testing.T, opts ...Option) (*pipe.End, *Emulator) {
	t.Helper()
	host, dev := pipe.New()
	emu := New(dev, opts...)
	require.NoError(t, emu.Start(context.Background()))
	t.Cleanup(emu.Stop)
	return host, emu
}

// roundTrip writes a request frame and reads back one reply frame.
func roundTrip(t *testing.T, host *pipe.End, cmd proto.Cmd, data []byte) proto.Frame {
	t.Helper()
	f := proto.NewFrame(0x00, cmd, data)
	var buf [proto.MaxFrameSize]byte
	n := f.MarshalTo(buf[:])
	require.NotZero(t, n)
	_, err := host.Write(buf[:n])
	require.NoError(t, err)
	return readReply(t, host)
}

// readReply reads bytes until a complete frame parses.
func readReply(t *testing.T, host *pipe.End) proto.Frame {
	t.Helper()
	require.NoError(t, host.SetReadDeadline(time.Now().Add(2*time.Second)))
	var acc [4 * proto.MaxFrameSize]byte
	fill := 0
	for {
		var reply proto.Frame
		if _, err := proto.ParseFrame(acc[:fill], &reply); err == nil {
			return reply
		}
		n, err := host.Read(acc[fill:])
		require.NoError(t, err)
		fill += n
	}
}

// =============================================================================
// Service loop
// =============================================================================

func TestEmulator_GetInfo(t *testing.T) {
	host, _ := startEmulator(t)

	reply := roundTrip(t, host, proto.CmdGetInfo, nil)
	require.Equal(t, proto.CmdGetInfo.Reply(), reply.Cmd)

	var info proto.Info
	require.NoError(t, proto.ParseInfo(reply.Data, &info))
	require.Equal(t, "V1.1", info.ChipVersion)
	require.True(t, info.TargetConnected)
}

func TestEmulator_RecordsKeyboardReports(t *testing.T) {
	host, emu := startEmulator(t)

	report := proto.KeyboardReport{Modifiers: 0x01, Keys: [6]uint8{0x04}}
	var data [proto.KeyboardReportSize]byte
	report.MarshalTo(data[:])

	reply := roundTrip(t, host, proto.CmdSendKeyboard, data[:])
	require.Equal(t, proto.CmdSendKeyboard.Reply(), reply.Cmd)
	require.Equal(t, []byte{uint8(pkg.StatusSuccess)}, reply.Data)

	reports := emu.KeyboardReports()
	require.Len(t, reports, 1)
	require.Equal(t, report, reports[0])
}

func TestEmulator_SplitFrameDelivery(t *testing.T) {
	host, _ := startEmulator(t)

	f := proto.NewFrame(0x00, proto.CmdGetInfo, nil)
	var buf [proto.MaxFrameSize]byte
	n := f.MarshalTo(buf[:])

	// Deliver the frame one byte at a time.
	for i := 0; i < n; i++ {
		_, err := host.Write(buf[i : i+1])
		require.NoError(t, err)
	}

	reply := readReply(t, host)
	require.Equal(t, proto.CmdGetInfo.Reply(), reply.Cmd)
}

func TestEmulator_ResyncAfterGarbage(t *testing.T) {
	host, _ := startEmulator(t)

	_, err := host.Write([]byte{0xDE, 0xAD, 0x57, 0xBE, 0xEF})
	require.NoError(t, err)

	reply := roundTrip(t, host, proto.CmdGetInfo, nil)
	require.Equal(t, proto.CmdGetInfo.Reply(), reply.Cmd)
}

func TestEmulator_FailNext(t *testing.T) {
	host, emu := startEmulator(t)
	emu.FailNext(pkg.StatusOperate)

	var data [proto.KeyboardReportSize]byte
	reply := roundTrip(t, host, proto.CmdSendKeyboard, data[:])
	require.Equal(t, []byte{uint8(pkg.StatusOperate)}, reply.Data)

	// The fault applies to a single reply.
	reply = roundTrip(t, host, proto.CmdSendKeyboard, data[:])
	require.Equal(t, []byte{uint8(pkg.StatusSuccess)}, reply.Data)
}

func TestEmulator_IgnoresOtherAddress(t *testing.T) {
	host, _ := startEmulator(t)

	f := proto.NewFrame(0x42, proto.CmdGetInfo, nil)
	var buf [proto.MaxFrameSize]byte
	n := f.MarshalTo(buf[:])
	_, err := host.Write(buf[:n])
	require.NoError(t, err)

	// No reply for the wrong address; the next correctly addressed
	// request is serviced normally.
	reply := roundTrip(t, host, proto.CmdGetInfo, nil)
	require.Equal(t, proto.CmdGetInfo.Reply(), reply.Cmd)
	require.Equal(t, uint8(0x00), reply.Addr)
}
