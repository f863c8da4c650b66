//go:build !linux

package cli

import (
	"github.com/ardnew/nanokvm/transport/serialport"
)

// describePort names a USB serial port from the enumerator's product
// string; no ID database is consulted off Linux.
func describePort(info serialport.PortInfo) string {
	return info.Product
}
