// Package nunchuk provides a driver for Wii Nunchuk style controllers on I2C.
//
// The controller answers at address 0x52 with a 6-byte frame holding an
// analog joystick, a 10-bit three-axis accelerometer and two buttons:
//
//	Byte | Bits 7..0
//	-----|----------------------------------------------
//	0    | joystick X (0-255, center 128)
//	1    | joystick Y (0-255, center 128)
//	2    | accel X bits 9..2
//	3    | accel Y bits 9..2
//	4    | accel Z bits 9..2
//	5    | Z1 Z0 Y1 Y0 X1 X0 C Z  (accel low bits, buttons active low)
//
// # Modes
//
// Genuine controllers scramble every byte unless the "unencrypted" handshake
// (0xF0=0x55, 0xFB=0x00) is used. Many clones only understand that handshake,
// so Plain is the recommended mode. Legacy sends the older 0x40=0x00
// handshake and de-scrambles each byte with (b ^ 0x17) + 0x17.
//
// The mode is a type parameter so a device can never mix the handshake of one
// mode with the byte transform of the other:
//
//	chuk := nunchuk.New[nunchuk.Plain](bus.NewTx(machine.I2C0))
//	chuk.Initialize()
//
//	for {
//	    if chuk.ReadFrame() {
//	        println(chuk.JoystickX(), chuk.JoystickY(), chuk.ButtonZ())
//	    }
//	    time.Sleep(20 * time.Millisecond)
//	}
//
// ReadFrame returning false means a short transfer; the caller decides
// whether to re-poll. Accessors never touch the bus and always decode
// whatever the frame buffer currently holds.
package nunchuk
