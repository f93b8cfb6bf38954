//go:build rp2040 || rp2350

package main

import "machine"

// InitUSB initializes USB serial communication.
// machine.Serial is USB CDC-ACM on RP2040/RP2350 with the default
// -serial=usb build.
func InitUSB() {
	err := machine.Serial.Configure(machine.UARTConfig{})
	if err != nil {
		return
	}
}

// usbLink streams blocks to the host over USB CDC.
type usbLink struct{}

func (usbLink) Write(p []byte) (int, error) {
	return machine.Serial.Write(p)
}
