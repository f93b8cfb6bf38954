package bus

import (
	"tinygo.org/x/drivers"
)

// BufferSize is the per-transaction queue depth, matching the Arduino Wire buffer.
const BufferSize = 32

// baudRater is implemented by machine.I2C on TinyGo targets.
type baudRater interface {
	SetBaudRate(br uint32) error
}

// Tx implements I2C on top of a transaction-style drivers.I2C bus.
// Queued writes are flushed with a single Tx call on Stop.
type Tx struct {
	dev drivers.I2C

	addr    Address
	started bool
	tx      [BufferSize]byte
	txLen   int

	rx    [BufferSize]byte
	rxLen int
	rxPos int

	lastErr error
}

// NewTx wraps a TinyGo I2C bus (machine.I2C0, machine.I2C1, ...).
func NewTx(dev drivers.I2C) *Tx {
	return &Tx{dev: dev}
}

// SetClock updates the bus frequency when the underlying bus supports it.
func (t *Tx) SetClock(hz uint32) {
	if br, ok := t.dev.(baudRater); ok {
		if err := br.SetBaudRate(hz); err != nil {
			t.lastErr = err
		}
	}
}

// Start begins queueing a write transaction to addr.
func (t *Tx) Start(addr Address) {
	t.addr = addr & 0x7F
	t.started = true
	t.txLen = 0
}

// Write queues bytes until the transaction buffer is full.
func (t *Tx) Write(data ...byte) int {
	if !t.started {
		return 0
	}
	n := copy(t.tx[t.txLen:], data)
	t.txLen += n
	return n
}

// Stop flushes the queued bytes as one write transaction.
func (t *Tx) Stop() {
	if !t.started {
		return
	}
	t.started = false
	// TinyGo's Tx handles start, address, data and stop
	if err := t.dev.Tx(uint16(t.addr), t.tx[:t.txLen], nil); err != nil {
		t.lastErr = err
	}
	t.txLen = 0
}

// RequestFrom performs a read-only transaction of up to n bytes.
// On a bus error nothing is buffered and 0 is returned.
func (t *Tx) RequestFrom(addr Address, n int) int {
	if n > BufferSize {
		n = BufferSize
	}
	if n < 0 {
		n = 0
	}
	t.rxPos = 0
	t.rxLen = 0
	if err := t.dev.Tx(uint16(addr&0x7F), nil, t.rx[:n]); err != nil {
		t.lastErr = err
		return 0
	}
	t.rxLen = n
	return n
}

// Read pops the next received byte, or 0 when the buffer is empty.
func (t *Tx) Read() byte {
	if t.rxPos >= t.rxLen {
		return 0
	}
	b := t.rx[t.rxPos]
	t.rxPos++
	return b
}

// Available returns the number of unread received bytes.
func (t *Tx) Available() int {
	return t.rxLen - t.rxPos
}

// LastError returns and clears the most recent bus error.
// The I2C interface itself never reports errors, so this is the only place
// they surface.
func (t *Tx) LastError() error {
	err := t.lastErr
	t.lastErr = nil
	return err
}
