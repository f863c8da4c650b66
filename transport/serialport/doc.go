// Package serialport implements the byte transport over a local serial
// device using go.bug.st/serial.
//
// The NanoKVM-USB controller enumerates as a CDC-ACM serial port and
// speaks its frame protocol at 57600 baud, 8N1. The DTR and RTS control
// lines are deasserted after open; the controller treats an asserted
// line as a terminal attach and may reset.
//
// [Enumerate] lists candidate ports with USB vendor/product identity
// where the platform exposes it, for the CLI's port discovery.
package serialport
