//go:build linux

package cli

import (
	"github.com/ardnew/nanokvm/pkg/linux/usbid"
	"github.com/ardnew/nanokvm/transport/serialport"
)

// describePort names a USB serial port. The enumerator's product
// string wins when present; otherwise the system usb.ids database
// resolves the VID/PID pair.
func describePort(info serialport.PortInfo) string {
	if info.Product != "" {
		return info.Product
	}
	return usbid.Describe(info.VID, info.PID)
}
