package core

import (
	"nunchuk/nunchuk"
	"nunchuk/protocol"
)

// Link is where the firmware streams encoded blocks, normally USB CDC.
type Link interface {
	Write(p []byte) (int, error)
}

// MaxWriteFailures is the number of consecutive failed writes after which
// the host is considered gone.
const MaxWriteFailures = 10

// PollerStats counts what the poll loop has done since boot.
type PollerStats struct {
	Polls   uint32
	Short   uint32 // polls whose ReadFrame came back incomplete
	Sent    uint32 // blocks fully written to the link
	Dropped uint32 // blocks lost to encode or write failures

	BusErrors uint32 // polls during which the bus reported an error
}

// Poller drives a controller and streams identify and sample messages.
type Poller[M nunchuk.Mode] struct {
	dev   *nunchuk.Device[M]
	link  Link
	clock func() uint32
	enc   *protocol.Encoder

	identity     protocol.Identify
	busErr       error
	failures     uint32
	disconnected bool
	reidentify   bool

	stats PollerStats
}

// NewPoller creates a poller. clock returns milliseconds since boot and is
// stamped on every sample.
func NewPoller[M nunchuk.Mode](dev *nunchuk.Device[M], link Link, clock func() uint32) *Poller[M] {
	return &Poller[M]{
		dev:   dev,
		link:  link,
		clock: clock,
		enc:   protocol.NewEncoder(),
	}
}

// Start runs the handshake, reads the device id and sends it to the host.
// The caller must have waited for the controller to power up.
func (p *Poller[M]) Start() protocol.Identify {
	p.dev.Initialize()
	id, ok := p.dev.Identify()
	if err := p.dev.LastError(); err != nil {
		DebugPrintln("nunchuk: bus error during identify: " + err.Error())
	}

	p.identity = protocol.Identify{
		Version: protocol.Version,
		Mode:    p.dev.Mode(),
		OK:      ok,
		ID:      id,
	}
	DebugPrintln("nunchuk: mode=" + p.identity.Mode + " id=" + hexBytes(id[:]))
	if !ok {
		DebugPrintln("nunchuk: identify read came back short")
	} else if !id.IsNunchuk() {
		DebugPrintln("nunchuk: unexpected device id")
	}

	p.sendIdentify()
	return p.identity
}

// Poll reads one frame and sends it, incomplete or not. It reports whether
// the frame was complete.
func (p *Poller[M]) Poll() bool {
	if p.reidentify {
		p.reidentify = false
		p.sendIdentify()
	}

	ok := p.dev.ReadFrame()
	p.stats.Polls++
	err := p.dev.LastError()
	if err != nil {
		p.busErr = err
		p.stats.BusErrors++
	}
	if !ok {
		p.stats.Short++
		msg := "nunchuk: short read at poll " + utoa(p.stats.Polls)
		if err != nil {
			msg += ": " + err.Error()
		}
		DebugAsync(msg)
	}

	block, err := p.enc.EncodeSample(protocol.Sample{
		Clock: p.clock(),
		OK:    ok,
		Frame: p.dev.Frame(),
	})
	p.send(block, err)
	return ok
}

// Stats returns the counters.
func (p *Poller[M]) Stats() PollerStats {
	return p.stats
}

// BusError returns the most recent bus error seen while polling, or nil if
// there has been none.
func (p *Poller[M]) BusError() error {
	return p.busErr
}

// Connected reports whether the last write reached the host.
func (p *Poller[M]) Connected() bool {
	return !p.disconnected
}

func (p *Poller[M]) sendIdentify() {
	block, err := p.enc.EncodeIdentify(p.identity)
	p.send(block, err)
}

func (p *Poller[M]) send(block []byte, err error) {
	if err != nil {
		p.stats.Dropped++
		DebugAsync("link: encode failed: " + err.Error())
		return
	}

	written := 0
	for written < len(block) {
		n, err := p.link.Write(block[written:])
		if err != nil || n == 0 {
			p.writeFailed()
			return
		}
		written += n
	}

	p.failures = 0
	p.stats.Sent++
	if p.disconnected {
		// a host that reconnects has missed the identify message
		p.disconnected = false
		p.reidentify = true
		DebugAsync("link: host reconnected")
	}
}

func (p *Poller[M]) writeFailed() {
	p.stats.Dropped++
	p.failures++
	if p.failures > MaxWriteFailures && !p.disconnected {
		p.disconnected = true
		DebugAsync("link: host gone after " + utoa(p.failures) + " failed writes")
	}
}
