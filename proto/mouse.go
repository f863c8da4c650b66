package proto

// Report ID bytes distinguishing the two mouse report shapes.
const (
	mouseRelID = 0x01 // Relative report
	mouseAbsID = 0x02 // Absolute report
)

// AbsRange is the coordinate space of absolute mouse reports. Pixel
// coordinates are scaled into 0..AbsRange over the target resolution.
const AbsRange = 4096

// MouseRel is the 5-byte payload of SEND_MS_REL_DATA.
type MouseRel struct {
	Buttons uint8 // Button state bits
	X       int8  // X movement (-127 to 127)
	Y       int8  // Y movement (-127 to 127)
	Wheel   int8  // Wheel movement (-127 to 127)
}

// MouseRelSize is the size of a relative mouse report payload.
const MouseRelSize = 5

// MarshalTo writes the relative report to buf.
// Returns the number of bytes written, or 0 if buf is too small.
func (r *MouseRel) MarshalTo(buf []byte) int {
	if len(buf) < MouseRelSize {
		return 0
	}
	buf[0] = mouseRelID
	buf[1] = r.Buttons
	buf[2] = byte(r.X)
	buf[3] = byte(r.Y)
	buf[4] = byte(r.Wheel)
	return MouseRelSize
}

// ParseMouseRel decodes a relative report payload into out.
// Returns false if data is too short or the report ID is wrong.
func ParseMouseRel(data []byte, out *MouseRel) bool {
	if len(data) < MouseRelSize || data[0] != mouseRelID {
		return false
	}
	out.Buttons = data[1]
	out.X = int8(data[2])
	out.Y = int8(data[3])
	out.Wheel = int8(data[4])
	return true
}

// MouseAbs is the 7-byte payload of SEND_MS_ABS_DATA. X and Y are pixel
// coordinates on a Width x Height target; MarshalTo scales them into the
// controller's 0..AbsRange space.
type MouseAbs struct {
	Buttons uint8 // Button state bits
	Width   int   // Target horizontal resolution in pixels
	Height  int   // Target vertical resolution in pixels
	X       int   // Pointer X in pixels
	Y       int   // Pointer Y in pixels
	Wheel   int8  // Wheel movement (-127 to 127)
}

// MouseAbsSize is the size of an absolute mouse report payload.
const MouseAbsSize = 7

// scaleAbs maps a pixel coordinate into the controller coordinate space.
// A zero extent scales to 0, matching the controller's treatment of an
// unknown resolution.
func scaleAbs(v, extent int) uint16 {
	if extent <= 0 {
		return 0
	}
	scaled := v * AbsRange / extent
	if scaled < 0 {
		return 0
	}
	if scaled > AbsRange {
		return AbsRange
	}
	return uint16(scaled)
}

// MarshalTo writes the absolute report to buf, scaling coordinates.
// Returns the number of bytes written, or 0 if buf is too small.
func (r *MouseAbs) MarshalTo(buf []byte) int {
	if len(buf) < MouseAbsSize {
		return 0
	}
	x := scaleAbs(r.X, r.Width)
	y := scaleAbs(r.Y, r.Height)
	buf[0] = mouseAbsID
	buf[1] = r.Buttons
	buf[2] = byte(x)
	buf[3] = byte(x >> 8)
	buf[4] = byte(y)
	buf[5] = byte(y >> 8)
	buf[6] = byte(r.Wheel)
	return MouseAbsSize
}

// ScaledX returns the X coordinate as it will appear on the wire.
func (r *MouseAbs) ScaledX() uint16 { return scaleAbs(r.X, r.Width) }

// ScaledY returns the Y coordinate as it will appear on the wire.
func (r *MouseAbs) ScaledY() uint16 { return scaleAbs(r.Y, r.Height) }

// AbsReport is the wire-level form of an absolute report, used when
// decoding traffic (the pixel resolution is not recoverable).
type AbsReport struct {
	Buttons uint8  // Button state bits
	X       uint16 // Scaled X (0..AbsRange)
	Y       uint16 // Scaled Y (0..AbsRange)
	Wheel   int8   // Wheel movement
}

// ParseMouseAbs decodes an absolute report payload into out.
// Returns false if data is too short or the report ID is wrong.
func ParseMouseAbs(data []byte, out *AbsReport) bool {
	if len(data) < MouseAbsSize || data[0] != mouseAbsID {
		return false
	}
	out.Buttons = data[1]
	out.X = uint16(data[2]) | uint16(data[3])<<8
	out.Y = uint16(data[4]) | uint16(data[5])<<8
	out.Wheel = int8(data[6])
	return true
}
