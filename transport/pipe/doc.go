// Package pipe provides an in-memory duplex byte transport.
//
// A pipe pair plays the role of the serial line in tests and when
// running against the controller emulator: one end wires into the
// client, the other into [github.com/ardnew/nanokvm/emulator]. Reads
// honor deadlines the same way the serial transport does, so timing
// behavior is exercised without hardware.
package pipe
