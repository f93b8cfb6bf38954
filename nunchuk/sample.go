package nunchuk

import "strconv"

// Sample is every calibrated reading of one frame, computed on demand.
type Sample struct {
	JoystickX     int8    `json:"joystick_x"`
	JoystickY     int8    `json:"joystick_y"`
	JoystickAngle float64 `json:"joystick_angle"`
	AccelX        int16   `json:"accel_x"`
	AccelY        int16   `json:"accel_y"`
	AccelZ        int16   `json:"accel_z"`
	Pitch         float64 `json:"pitch"`
	Roll          float64 `json:"roll"`
	ButtonC       bool    `json:"button_c"`
	ButtonZ       bool    `json:"button_z"`
}

// Sample decodes all fields of f.
func (f Frame) Sample() Sample {
	return Sample{
		JoystickX:     f.JoystickX(),
		JoystickY:     f.JoystickY(),
		JoystickAngle: f.JoystickAngle(),
		AccelX:        f.AccelX(),
		AccelY:        f.AccelY(),
		AccelZ:        f.AccelZ(),
		Pitch:         f.Pitch(),
		Roll:          f.Roll(),
		ButtonC:       f.ButtonC(),
		ButtonZ:       f.ButtonZ(),
	}
}

// String renders the sample on one line. Avoids fmt so it stays cheap on
// TinyGo targets.
func (s Sample) String() string {
	buf := make([]byte, 0, 128)
	buf = append(buf, "Joystick: x: "...)
	buf = strconv.AppendInt(buf, int64(s.JoystickX), 10)
	buf = append(buf, ", y: "...)
	buf = strconv.AppendInt(buf, int64(s.JoystickY), 10)
	buf = append(buf, ", Acceleration: x: "...)
	buf = strconv.AppendInt(buf, int64(s.AccelX), 10)
	buf = append(buf, ", y: "...)
	buf = strconv.AppendInt(buf, int64(s.AccelY), 10)
	buf = append(buf, ", z: "...)
	buf = strconv.AppendInt(buf, int64(s.AccelZ), 10)
	buf = append(buf, ", pitch: "...)
	buf = strconv.AppendFloat(buf, s.Pitch, 'f', 2, 64)
	buf = append(buf, ", roll: "...)
	buf = strconv.AppendFloat(buf, s.Roll, 'f', 2, 64)
	buf = append(buf, ", Button: c: "...)
	buf = strconv.AppendBool(buf, s.ButtonC)
	buf = append(buf, ", z: "...)
	buf = strconv.AppendBool(buf, s.ButtonZ)
	return string(buf)
}
