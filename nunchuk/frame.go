package nunchuk

import "math"

// FrameSize is the length of one data frame in bytes.
const FrameSize = 6

// Calibration zero points.
const (
	JoystickZeroX = 128
	JoystickZeroY = 128

	AccelZeroX = 512
	AccelZeroY = 512
	AccelZeroZ = 512
)

// Byte positions inside a frame.
const (
	idxJoyX   = 0
	idxJoyY   = 1
	idxAccelX = 2
	idxAccelY = 3
	idxAccelZ = 4
	idxMisc   = 5
)

// Bit offsets inside byte 5.
const (
	bitButtonZ    = 0
	bitButtonC    = 1
	shiftAccelXLo = 2
	shiftAccelYLo = 4
	shiftAccelZLo = 6
)

// Frame is one decoded 6-byte report. The zero value is a valid, if
// meaningless, frame: all axes at their minimum and both buttons pressed.
type Frame [FrameSize]byte

// accelRaw joins the high 8 bits with the 2-bit field of lo at shift
// into a 10-bit sample.
func accelRaw(hi, lo byte, shift uint) uint16 {
	return uint16(hi)<<2 | uint16((lo>>shift)&0x03)
}

// activeLow reports whether bit is cleared in b.
// The bit is inverted, shifted down, masked with 1 and compared to 1.
func activeLow(b byte, bit uint) bool {
	return (^b>>bit)&1 == 1
}

// JoystickRawX returns the unscaled X position, 0-255.
func (f Frame) JoystickRawX() uint8 { return f[idxJoyX] }

// JoystickRawY returns the unscaled Y position, 0-255.
func (f Frame) JoystickRawY() uint8 { return f[idxJoyY] }

// AccelRawX returns the 10-bit X acceleration, 0-1023.
func (f Frame) AccelRawX() uint16 { return accelRaw(f[idxAccelX], f[idxMisc], shiftAccelXLo) }

// AccelRawY returns the 10-bit Y acceleration, 0-1023.
func (f Frame) AccelRawY() uint16 { return accelRaw(f[idxAccelY], f[idxMisc], shiftAccelYLo) }

// AccelRawZ returns the 10-bit Z acceleration, 0-1023.
func (f Frame) AccelRawZ() uint16 { return accelRaw(f[idxAccelZ], f[idxMisc], shiftAccelZLo) }

// JoystickX returns the centered X position in [-128, 127].
func (f Frame) JoystickX() int8 {
	return int8(int16(f.JoystickRawX()) - JoystickZeroX)
}

// JoystickY returns the centered Y position in [-128, 127].
func (f Frame) JoystickY() int8 {
	return int8(int16(f.JoystickRawY()) - JoystickZeroY)
}

// JoystickAngle returns atan2(y, x) of the centered joystick, in radians.
func (f Frame) JoystickAngle() float64 {
	return math.Atan2(float64(f.JoystickY()), float64(f.JoystickX()))
}

// AccelX returns the centered X acceleration in [-512, 511].
func (f Frame) AccelX() int16 { return int16(f.AccelRawX()) - AccelZeroX }

// AccelY returns the centered Y acceleration in [-512, 511].
func (f Frame) AccelY() int16 { return int16(f.AccelRawY()) - AccelZeroY }

// AccelZ returns the centered Z acceleration in [-512, 511].
func (f Frame) AccelZ() int16 { return int16(f.AccelRawZ()) - AccelZeroZ }

// Pitch returns atan2(accelY, accelZ) in radians.
func (f Frame) Pitch() float64 {
	return math.Atan2(float64(f.AccelY()), float64(f.AccelZ()))
}

// Roll returns atan2(accelX, accelZ) in radians.
func (f Frame) Roll() float64 {
	return math.Atan2(float64(f.AccelX()), float64(f.AccelZ()))
}

// ButtonC reports whether the C button is pressed.
func (f Frame) ButtonC() bool { return activeLow(f[idxMisc], bitButtonC) }

// ButtonZ reports whether the Z button is pressed.
func (f Frame) ButtonZ() bool { return activeLow(f[idxMisc], bitButtonZ) }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
