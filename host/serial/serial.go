// Package serial opens the USB CDC port the controller firmware streams on.
package serial

import (
	"io"
)

// Port is an open serial connection.
// Implementations:
// - NativePort over github.com/tarm/serial
// - any io.ReadWriteCloser in tests
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate. USB CDC ignores it but the OS driver still wants one.
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultBaud is used when no baud rate is configured.
const DefaultBaud = 115200

// DefaultConfig returns the configuration used when only a device is given.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: 100,
	}
}
