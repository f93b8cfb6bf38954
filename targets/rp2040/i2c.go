//go:build rp2040 || rp2350

package main

import (
	"machine"

	"nunchuk/bus"
)

// Controller wiring: I2C0 on SDA=GP4, SCL=GP5.
var (
	i2cBus = machine.I2C0
	i2cSDA = machine.GPIO4
	i2cSCL = machine.GPIO5
)

// InitI2C configures the controller bus in standard mode. The driver raises
// it to fast mode during the handshake.
func InitI2C() (*machine.I2C, error) {
	err := i2cBus.Configure(machine.I2CConfig{
		Frequency: bus.StandardMode,
		SDA:       i2cSDA,
		SCL:       i2cSCL,
	})
	if err != nil {
		return nil, err
	}
	return i2cBus, nil
}
