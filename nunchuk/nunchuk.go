package nunchuk

import (
	"nunchuk/bus"
)

// Address is the fixed 7-bit bus address of the controller.
const Address bus.Address = 0x52

// ClockHz is the bus speed used with the controller (fast mode).
const ClockHz = bus.FastMode

// Device polls one controller over an injected bus.
// It is not safe for concurrent use.
type Device[M Mode] struct {
	bus  bus.I2C
	mode M
	data Frame
}

// New creates a device in mode M. The frame buffer starts zeroed.
func New[M Mode](b bus.I2C) *Device[M] {
	return &Device[M]{bus: b}
}

// Mode returns the name of the configured mode.
func (d *Device[M]) Mode() string {
	return d.mode.String()
}

// Initialize sets the bus clock and sends the mode handshake.
// Write counts are not checked; a missing controller shows up as
// failing ReadFrame calls.
func (d *Device[M]) Initialize() {
	d.bus.SetClock(ClockHz)
	for _, r := range d.mode.handshake() {
		d.bus.Start(Address)
		d.bus.Write(r.addr, r.value)
		d.bus.Stop()
	}
}

// ReadFrame fetches and decodes the next frame, then re-arms the controller.
// It returns false if fewer than FrameSize bytes arrived. In that case the
// leading bytes hold the new data and the rest is left from the previous
// frame.
func (d *Device[M]) ReadFrame() bool {
	d.bus.RequestFrom(Address, FrameSize)
	i := 0
	for ; i < FrameSize && d.bus.Available() > 0; i++ {
		d.data[i] = d.mode.DecodeByte(d.bus.Read())
	}
	d.rearm()
	return i == FrameSize
}

// rearm points the controller back at register 0 so it prepares a new frame.
func (d *Device[M]) rearm() {
	d.bus.Start(Address)
	d.bus.Write(0x00)
	d.bus.Stop()
}

// errorRecorder is implemented by buses that keep the last transfer error,
// such as bus.Tx.
type errorRecorder interface {
	LastError() error
}

// LastError returns and clears the bus error behind the most recent failed
// transfer. It is always nil when the bus does not record errors.
func (d *Device[M]) LastError() error {
	if r, ok := d.bus.(errorRecorder); ok {
		return r.LastError()
	}
	return nil
}

// Frame returns a copy of the current frame buffer.
func (d *Device[M]) Frame() Frame {
	return d.data
}

// Sample decodes every field of the current frame.
func (d *Device[M]) Sample() Sample {
	return d.data.Sample()
}

func (d *Device[M]) JoystickX() int8 { return d.data.JoystickX() }
func (d *Device[M]) JoystickY() int8 { return d.data.JoystickY() }
func (d *Device[M]) JoystickAngle() float64 { return d.data.JoystickAngle() }
func (d *Device[M]) AccelX() int16 { return d.data.AccelX() }
func (d *Device[M]) AccelY() int16 { return d.data.AccelY() }
func (d *Device[M]) AccelZ() int16 { return d.data.AccelZ() }
func (d *Device[M]) Pitch() float64 { return d.data.Pitch() }
func (d *Device[M]) Roll() float64 { return d.data.Roll() }
func (d *Device[M]) ButtonC() bool { return d.data.ButtonC() }
func (d *Device[M]) ButtonZ() bool { return d.data.ButtonZ() }
