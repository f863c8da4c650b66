// Package kvm implements the host-side client for a NanoKVM-USB
// controller.
//
// A Client wraps a transport.Transport and exposes the controller's
// operations as synchronous request/reply calls: device information,
// keyboard and consumer-control input, relative and absolute mouse
// input, custom HID payloads, and parameter configuration.
//
// # Exchanges
//
// Every operation sends exactly one command frame and waits for the
// matching reply (the command code with the reply bit set). Stale
// replies from timed-out exchanges and unsolicited HID pushes found in
// the stream are consumed without disturbing the pending exchange.
// Deadlines come from the caller's context when it carries one, or
// from the client's configured timeout.
//
// # Input state
//
// The client tracks held keys and mouse buttons so that incremental
// operations (KeyPress, MouseButtonPress) compose: pressing a second
// key reports both, and moving the mouse mid-drag keeps the button
// held. ReleaseAll and the raw report senders replace this state.
//
// All methods are safe for concurrent use.
package kvm
