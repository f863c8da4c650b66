//go:build linux

// Package usbid resolves USB vendor and product IDs to the names
// registered in the system usb.ids database, so serial port listings
// can show "QinHeng Electronics CH340 serial converter" instead of
// bare hex IDs.
//
// The database file ships with usbutils on most distributions; see
// DefaultPaths for the searched locations. Lookups on a database that
// could not be loaded return empty strings, and Describe falls back to
// hex IDs, so callers need no error handling.
//
// All methods are safe for concurrent use.
package usbid
