// Package emulator implements an in-process NanoKVM-USB controller.
//
// The emulator services the same frame protocol the hardware speaks,
// usually over a [github.com/ardnew/nanokvm/transport/pipe] pair: the
// client drives one end, the emulator the other. It answers every
// command the chip answers, stores parameter configuration and USB
// descriptor strings, and records received input reports so tests can
// assert on exactly what would have reached the target machine.
//
// Fault injection hooks ([Emulator.FailNext], [Emulator.DropNext],
// [Emulator.CorruptNext]) exercise the client's status, timeout, and
// resynchronization paths without hardware.
package emulator
