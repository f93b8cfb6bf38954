// Package bustest provides an in-memory bus.I2C for driver tests.
package bustest

import (
	"fmt"
	"strings"

	"nunchuk/bus"
)

// Transaction is one completed write transaction.
type Transaction struct {
	Addr bus.Address
	Data []byte
}

// Fake is a scripted bus.I2C. Responses queued with QueueResponse are handed
// out one per RequestFrom call; every bus operation is appended to Events in
// a compact text form so tests can assert ordering.
type Fake struct {
	Clock  uint32
	Writes []Transaction
	Events []string

	// Err is handed out once by LastError, like bus.Tx does.
	Err error

	responses [][]byte
	rx        []byte
	cur       *Transaction
}

// New returns an empty fake bus.
func New() *Fake {
	return &Fake{}
}

// QueueResponse schedules the bytes returned by the next RequestFrom.
// Fewer bytes than requested simulates a truncated transfer.
func (f *Fake) QueueResponse(data ...byte) {
	f.responses = append(f.responses, append([]byte(nil), data...))
}

func (f *Fake) SetClock(hz uint32) {
	f.Clock = hz
	f.Events = append(f.Events, fmt.Sprintf("clock %d", hz))
}

func (f *Fake) Start(addr bus.Address) {
	f.cur = &Transaction{Addr: addr}
}

func (f *Fake) Write(data ...byte) int {
	if f.cur == nil {
		return 0
	}
	f.cur.Data = append(f.cur.Data, data...)
	return len(data)
}

func (f *Fake) Stop() {
	if f.cur == nil {
		return
	}
	f.Writes = append(f.Writes, *f.cur)
	f.Events = append(f.Events, "write "+hexBytes(f.cur.Addr, f.cur.Data))
	f.cur = nil
}

func (f *Fake) RequestFrom(addr bus.Address, n int) int {
	f.Events = append(f.Events, fmt.Sprintf("request %02x %d", uint8(addr), n))
	f.rx = nil
	if len(f.responses) == 0 {
		return 0
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	if len(resp) > n {
		resp = resp[:n]
	}
	f.rx = resp
	return len(resp)
}

func (f *Fake) Read() byte {
	if len(f.rx) == 0 {
		return 0
	}
	b := f.rx[0]
	f.rx = f.rx[1:]
	return b
}

func (f *Fake) Available() int {
	return len(f.rx)
}

// LastError returns and clears Err.
func (f *Fake) LastError() error {
	err := f.Err
	f.Err = nil
	return err
}

// Pending reports how many queued responses have not been requested yet.
func (f *Fake) Pending() int {
	return len(f.responses)
}

func hexBytes(addr bus.Address, data []byte) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%02x", uint8(addr))
	for _, b := range data {
		fmt.Fprintf(&sb, " %02x", b)
	}
	return sb.String()
}

var _ bus.I2C = (*Fake)(nil)
