// Package bus defines the byte-queue I2C capability that device drivers
// consume, plus an adapter onto TinyGo's transaction-style I2C buses.
package bus

// Address is a 7-bit I2C peer address.
type Address uint8

// I2C is the abstract bus interface that driver code uses.
//
// Writes are queued between Start and Stop and go out as one transaction.
// Reads are two-step: RequestFrom fills an internal buffer, Read pops from it.
// None of the operations report errors; counts are the only signal.
type I2C interface {
	// SetClock sets the bus clock in Hertz. Best-effort.
	SetClock(hz uint32)

	// Start begins an addressed write transaction.
	Start(addr Address)

	// Stop ends the current transaction and releases the bus.
	Stop()

	// Write queues bytes for the current transaction.
	// Returns the number of bytes accepted.
	Write(data ...byte) int

	// RequestFrom reads up to n bytes from a peer into the receive buffer.
	// Returns the number of bytes received.
	RequestFrom(addr Address, n int) int

	// Read pops the next received byte. Callers must check Available first.
	Read() byte

	// Available returns the number of received bytes not yet read.
	Available() int
}

// Standard bus speeds in Hertz.
const (
	StandardMode uint32 = 100000
	FastMode     uint32 = 400000
)
