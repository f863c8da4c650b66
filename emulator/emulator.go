package emulator

import (
	"context"
	"errors"
	"sync"

	"github.com/ardnew/nanokvm/pkg"
	"github.com/ardnew/nanokvm/proto"
	"github.com/ardnew/nanokvm/transport"
)

// Option configures an Emulator.
type Option func(*Emulator)

// WithInfo sets the info reported by GET_INFO.
func WithInfo(info proto.Info) Option {
	return func(e *Emulator) { e.info = info }
}

// WithParaCfg sets the initial parameter configuration.
func WithParaCfg(cfg proto.ParaCfg) Option {
	return func(e *Emulator) { e.cfg = cfg }
}

// WithAddr sets the frame address the emulator answers on.
func WithAddr(addr uint8) Option {
	return func(e *Emulator) { e.addr = addr }
}

// Emulator services the controller side of the frame protocol over a
// transport, for tests and offline development. It answers every
// command the real chip answers and records the input reports it
// receives so tests can assert on what reached the "target".
type Emulator struct {
	tr   transport.Transport
	addr uint8

	mu      sync.Mutex
	info    proto.Info
	cfg     proto.ParaCfg
	strings map[proto.StringType]string

	keyboard []proto.KeyboardReport
	media    []proto.MediaReport
	mouseRel []proto.MouseRel
	mouseAbs []proto.AbsReport
	hid      [][]byte

	// Fault injection for the next reply.
	failStatus pkg.Status
	dropNext   bool
	corrupt    bool

	resets   int
	defaults int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates an emulator bound to the given transport.
func New(tr transport.Transport, opts ...Option) *Emulator {
	e := &Emulator{
		tr: tr,
		info: proto.Info{
			ChipVersion:     "V1.1",
			TargetConnected: true,
		},
		cfg:     proto.DefaultParaCfg(),
		strings: make(map[proto.StringType]string),
	}
	e.strings[proto.StringManufacturer] = "Sipeed"
	e.strings[proto.StringProduct] = "NanoKVM-USB"
	e.strings[proto.StringSerial] = "0001"
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start begins servicing frames until ctx is cancelled or Stop is called.
func (e *Emulator) Start(ctx context.Context) error {
	e.ctx, e.cancel = context.WithCancel(ctx)
	e.wg.Add(1)
	go e.serve()
	pkg.LogInfo(pkg.ComponentEmulator, "emulator started", "transport", e.tr.String())
	return nil
}

// Stop cancels the service loop and waits for it to exit.
func (e *Emulator) Stop() {
	if e.cancel != nil {
		e.cancel()
	}
	e.tr.Close()
	e.wg.Wait()
}

// serve is the frame service loop.
func (e *Emulator) serve() {
	defer e.wg.Done()

	var acc [4 * proto.MaxFrameSize]byte
	fill := 0

	for {
		select {
		case <-e.ctx.Done():
			return
		default:
		}

		n, err := e.tr.Read(acc[fill:])
		if err != nil {
			if errors.Is(err, pkg.ErrTimeout) {
				continue
			}
			return
		}
		fill += n

		for {
			var frame proto.Frame
			consumed, err := proto.ParseFrame(acc[:fill], &frame)
			if err == nil {
				e.handle(&frame)
			}

			// Discard consumed bytes (parsed frame, leading noise, or a
			// corrupted region) and keep the remainder for the next scan.
			copy(acc[:], acc[consumed:fill])
			fill -= consumed

			if errors.Is(err, pkg.ErrShortFrame) || errors.Is(err, pkg.ErrHeadNotFound) {
				break // Need more input
			}
		}
	}
}

// handle dispatches one request frame and writes the reply.
func (e *Emulator) handle(f *proto.Frame) {
	e.mu.Lock()
	if f.Addr != e.addr {
		e.mu.Unlock()
		return
	}
	if e.dropNext {
		e.dropNext = false
		e.mu.Unlock()
		return
	}
	fail := e.failStatus
	e.failStatus = pkg.StatusSuccess
	e.mu.Unlock()

	if fail != pkg.StatusSuccess {
		e.replyStatus(f.Cmd, fail)
		return
	}

	switch f.Cmd {
	case proto.CmdGetInfo:
		var data [proto.InfoSize]byte
		e.mu.Lock()
		e.info.MarshalTo(data[:])
		e.mu.Unlock()
		e.reply(f.Cmd, data[:])

	case proto.CmdSendKeyboard:
		var r proto.KeyboardReport
		if !proto.ParseKeyboardReport(f.Data, &r) {
			e.replyStatus(f.Cmd, pkg.StatusParameter)
			return
		}
		e.mu.Lock()
		e.keyboard = append(e.keyboard, r)
		e.mu.Unlock()
		e.replyStatus(f.Cmd, pkg.StatusSuccess)

	case proto.CmdSendMedia:
		var r proto.MediaReport
		if !proto.ParseMediaReport(f.Data, &r) {
			e.replyStatus(f.Cmd, pkg.StatusParameter)
			return
		}
		e.mu.Lock()
		e.media = append(e.media, r)
		e.mu.Unlock()
		e.replyStatus(f.Cmd, pkg.StatusSuccess)

	case proto.CmdSendMouseRel:
		var r proto.MouseRel
		if !proto.ParseMouseRel(f.Data, &r) {
			e.replyStatus(f.Cmd, pkg.StatusParameter)
			return
		}
		e.mu.Lock()
		e.mouseRel = append(e.mouseRel, r)
		e.mu.Unlock()
		e.replyStatus(f.Cmd, pkg.StatusSuccess)

	case proto.CmdSendMouseAbs:
		var r proto.AbsReport
		if !proto.ParseMouseAbs(f.Data, &r) {
			e.replyStatus(f.Cmd, pkg.StatusParameter)
			return
		}
		e.mu.Lock()
		e.mouseAbs = append(e.mouseAbs, r)
		e.mu.Unlock()
		e.replyStatus(f.Cmd, pkg.StatusSuccess)

	case proto.CmdSendHID:
		e.mu.Lock()
		e.hid = append(e.hid, append([]byte(nil), f.Data...))
		e.mu.Unlock()
		e.replyStatus(f.Cmd, pkg.StatusSuccess)

	case proto.CmdGetParaCfg:
		var data [proto.ParaCfgSize]byte
		e.mu.Lock()
		e.cfg.MarshalTo(data[:])
		e.mu.Unlock()
		e.reply(f.Cmd, data[:])

	case proto.CmdSetParaCfg:
		var cfg proto.ParaCfg
		if err := proto.ParseParaCfg(f.Data, &cfg); err != nil {
			e.replyStatus(f.Cmd, pkg.StatusParameter)
			return
		}
		e.mu.Lock()
		e.cfg = cfg
		e.mu.Unlock()
		e.replyStatus(f.Cmd, pkg.StatusSuccess)

	case proto.CmdGetUSBString:
		if len(f.Data) < 1 {
			e.replyStatus(f.Cmd, pkg.StatusParameter)
			return
		}
		typ := proto.StringType(f.Data[0])
		e.mu.Lock()
		value, ok := e.strings[typ]
		e.mu.Unlock()
		if !ok {
			e.replyStatus(f.Cmd, pkg.StatusParameter)
			return
		}
		s := proto.USBString{Type: typ, Value: value}
		var data [2 + proto.MaxUSBStringLen]byte
		n := s.MarshalTo(data[:])
		e.reply(f.Cmd, data[:n])

	case proto.CmdSetUSBString:
		var s proto.USBString
		if err := proto.ParseUSBString(f.Data, &s); err != nil {
			e.replyStatus(f.Cmd, pkg.StatusParameter)
			return
		}
		e.mu.Lock()
		e.strings[s.Type] = s.Value
		e.mu.Unlock()
		e.replyStatus(f.Cmd, pkg.StatusSuccess)

	case proto.CmdSetDefaultCfg:
		e.mu.Lock()
		e.cfg = proto.DefaultParaCfg()
		e.defaults++
		e.mu.Unlock()
		e.replyStatus(f.Cmd, pkg.StatusSuccess)

	case proto.CmdReset:
		e.mu.Lock()
		e.resets++
		e.mu.Unlock()
		e.replyStatus(f.Cmd, pkg.StatusSuccess)

	default:
		e.replyStatus(f.Cmd, pkg.StatusCommand)
	}
}

// reply writes a reply frame carrying data.
func (e *Emulator) reply(cmd proto.Cmd, data []byte) {
	f := proto.NewFrame(e.addr, cmd.Reply(), data)
	var buf [proto.MaxFrameSize]byte
	n := f.MarshalTo(buf[:])
	if n == 0 {
		return
	}

	e.mu.Lock()
	corrupt := e.corrupt
	e.corrupt = false
	e.mu.Unlock()
	if corrupt {
		buf[n-1] ^= 0xFF
	}

	if _, err := e.tr.Write(buf[:n]); err != nil {
		pkg.LogWarn(pkg.ComponentEmulator, "reply write failed",
			"cmd", cmd.String(), "error", err)
	}
}

// replyStatus writes a reply frame carrying a single status byte.
func (e *Emulator) replyStatus(cmd proto.Cmd, status pkg.Status) {
	e.reply(cmd, []byte{uint8(status)})
}

// FailNext makes the next reply carry the given error status.
func (e *Emulator) FailNext(status pkg.Status) {
	e.mu.Lock()
	e.failStatus = status
	e.mu.Unlock()
}

// DropNext makes the emulator swallow the next request without replying.
func (e *Emulator) DropNext() {
	e.mu.Lock()
	e.dropNext = true
	e.mu.Unlock()
}

// CorruptNext makes the next reply carry a bad checksum.
func (e *Emulator) CorruptNext() {
	e.mu.Lock()
	e.corrupt = true
	e.mu.Unlock()
}

// SetInfo replaces the info reported by GET_INFO.
func (e *Emulator) SetInfo(info proto.Info) {
	e.mu.Lock()
	e.info = info
	e.mu.Unlock()
}

// KeyboardReports returns every keyboard report received so far.
func (e *Emulator) KeyboardReports() []proto.KeyboardReport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]proto.KeyboardReport(nil), e.keyboard...)
}

// MediaReports returns every media report received so far.
func (e *Emulator) MediaReports() []proto.MediaReport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]proto.MediaReport(nil), e.media...)
}

// MouseRelReports returns every relative mouse report received so far.
func (e *Emulator) MouseRelReports() []proto.MouseRel {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]proto.MouseRel(nil), e.mouseRel...)
}

// MouseAbsReports returns every absolute mouse report received so far.
func (e *Emulator) MouseAbsReports() []proto.AbsReport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]proto.AbsReport(nil), e.mouseAbs...)
}

// HIDReports returns every custom HID payload received so far.
func (e *Emulator) HIDReports() [][]byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([][]byte, len(e.hid))
	for i, d := range e.hid {
		out[i] = append([]byte(nil), d...)
	}
	return out
}

// ParaCfg returns the current parameter configuration.
func (e *Emulator) ParaCfg() proto.ParaCfg {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// USBString returns the stored descriptor string for the selector.
func (e *Emulator) USBString(typ proto.StringType) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.strings[typ]
}

// Resets returns how many RESET commands have been received.
func (e *Emulator) Resets() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resets
}

// Defaults returns how many SET_DEFAULT_CFG commands have been received.
func (e *Emulator) Defaults() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.defaults
}
