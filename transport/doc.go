// Package transport defines the byte transport abstraction between the
// nanokvm client and the controller chip.
//
// The controller speaks its frame protocol over a serial line; the
// [Transport] interface isolates the client from how that line is
// realized. Two implementations ship with the module:
//
//   - [github.com/ardnew/nanokvm/transport/serialport] drives a real
//     serial device (the NanoKVM-USB's CDC-ACM port).
//   - [github.com/ardnew/nanokvm/transport/pipe] is an in-memory duplex
//     pipe used by tests and the controller emulator.
//
// Implementations expose deadline-based reads rather than context-based
// ones; the client layer converts its per-request context into read
// deadlines at the edge.
package transport
