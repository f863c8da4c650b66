package proto

// Cmd identifies a controller command code.
type Cmd uint8

// Controller command codes.
const (
	CmdGetInfo       Cmd = 0x01 // Query chip version and target state
	CmdSendKeyboard  Cmd = 0x02 // Send a general keyboard report
	CmdSendMedia     Cmd = 0x03 // Send a media (consumer control) report
	CmdSendMouseAbs  Cmd = 0x04 // Send an absolute mouse report
	CmdSendMouseRel  Cmd = 0x05 // Send a relative mouse report
	CmdSendHID       Cmd = 0x06 // Send a custom HID report
	CmdReadHID       Cmd = 0x87 // Custom HID data pushed by the controller
	CmdGetParaCfg    Cmd = 0x08 // Read parameter configuration
	CmdSetParaCfg    Cmd = 0x09 // Write parameter configuration
	CmdGetUSBString  Cmd = 0x0A // Read a USB string descriptor
	CmdSetUSBString  Cmd = 0x0B // Write a USB string descriptor
	CmdSetDefaultCfg Cmd = 0x0C // Restore factory configuration
	CmdReset         Cmd = 0x0F // Reset the controller chip
)

// ReplyBit is set on the command code of every reply frame.
const ReplyBit Cmd = 0x80

// Reply returns the reply code for this command.
func (c Cmd) Reply() Cmd {
	return c | ReplyBit
}

// IsReply returns true if this code has the reply bit set.
func (c Cmd) IsReply() bool {
	return c&ReplyBit != 0
}

// Base returns the command code with the reply bit cleared.
func (c Cmd) Base() Cmd {
	return c &^ ReplyBit
}

// String returns a human-readable command name.
func (c Cmd) String() string {
	switch c.Base() {
	case CmdGetInfo:
		return "GET_INFO"
	case CmdSendKeyboard:
		return "SEND_KB_GENERAL_DATA"
	case CmdSendMedia:
		return "SEND_KB_MEDIA_DATA"
	case CmdSendMouseAbs:
		return "SEND_MS_ABS_DATA"
	case CmdSendMouseRel:
		return "SEND_MS_REL_DATA"
	case CmdSendHID:
		return "SEND_MY_HID_DATA"
	case CmdReadHID.Base():
		return "READ_MY_HID_DATA"
	case CmdGetParaCfg:
		return "GET_PARA_CFG"
	case CmdSetParaCfg:
		return "SET_PARA_CFG"
	case CmdGetUSBString:
		return "GET_USB_STRING"
	case CmdSetUSBString:
		return "SET_USB_STRING"
	case CmdSetDefaultCfg:
		return "SET_DEFAULT_CFG"
	case CmdReset:
		return "RESET"
	default:
		return "UNKNOWN"
	}
}
