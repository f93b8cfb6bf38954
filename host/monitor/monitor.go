// Package monitor follows the firmware's sample stream and keeps the latest
// controller state.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"nunchuk/nunchuk"
	"nunchuk/protocol"
)

// Reading is one sample as seen by the host.
type Reading struct {
	Clock    uint32 // firmware milliseconds
	OK       bool   // false after a short I2C read
	Frame    nunchuk.Frame
	Received time.Time
}

// Sink receives every sample in arrival order. Observe runs on the read
// loop and must not block.
type Sink interface {
	Observe(Reading)
}

// IdentityObserver is implemented by sinks that want identify messages.
type IdentityObserver interface {
	ObserveIdentity(protocol.Identify)
}

// LinkDelta holds link error counts accumulated since the previous delta.
type LinkDelta struct {
	Errors      uint64
	Lost        uint64
	BadMessages uint64
}

// LinkObserver is implemented by sinks that want link error deltas.
type LinkObserver interface {
	ObserveLink(LinkDelta)
}

// Stats are the monitor's running counters.
type Stats struct {
	FramesOK    uint64 `json:"frames_ok"`
	FramesShort uint64 `json:"frames_short"`
	Errors      uint64 `json:"decode_errors"`
	Lost        uint64 `json:"lost"`
	BadMessages uint64 `json:"bad_messages"`
}

// Monitor decodes the link stream. Feed and Run must not be used from more
// than one goroutine; the query methods are safe for concurrent use.
type Monitor struct {
	port       io.Reader
	log        *zap.Logger
	sinks      []Sink
	staleAfter time.Duration
	now        func() time.Time

	dec *protocol.Decoder

	mu         sync.RWMutex
	latest     Reading
	haveSample bool
	identity   protocol.Identify
	identified bool
	stats      Stats
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(m *Monitor) { m.log = log }
}

// WithSink adds a sink.
func WithSink(s Sink) Option {
	return func(m *Monitor) { m.sinks = append(m.sinks, s) }
}

// WithStaleAfter sets how old the latest sample may be while Ready.
func WithStaleAfter(d time.Duration) Option {
	return func(m *Monitor) { m.staleAfter = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) { m.now = now }
}

// DefaultStaleAfter is used when WithStaleAfter is not given.
const DefaultStaleAfter = 2 * time.Second

// New creates a monitor reading from port. port may be nil when the caller
// only uses Feed.
func New(port io.Reader, opts ...Option) *Monitor {
	m := &Monitor{
		port:       port,
		log:        zap.NewNop(),
		staleAfter: DefaultStaleAfter,
		now:        time.Now,
		dec:        protocol.NewDecoder(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run reads the port until ctx is done or the port returns io.EOF. A read
// that returns no data and no error is treated as a timeout.
func (m *Monitor) Run(ctx context.Context) error {
	buf := make([]byte, 256)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		n, err := m.port.Read(buf)
		if n > 0 {
			m.Feed(buf[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				m.log.Info("serial stream closed")
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read serial: %w", err)
		}
	}
}

// Feed processes raw bytes from the link.
func (m *Monitor) Feed(p []byte) {
	errs, lost := m.dec.Errors(), m.dec.Lost()
	msgs := m.dec.Feed(p)

	var delta LinkDelta
	delta.Errors = m.dec.Errors() - errs
	delta.Lost = m.dec.Lost() - lost

	for _, msg := range msgs {
		switch msg.ID {
		case protocol.MsgSample:
			s, err := protocol.DecodeSample(msg)
			if err != nil {
				delta.BadMessages++
				m.log.Warn("bad sample message", zap.Error(err))
				continue
			}
			m.handleSample(s)
		case protocol.MsgIdentify:
			id, err := protocol.DecodeIdentify(msg)
			if err != nil {
				delta.BadMessages++
				m.log.Warn("bad identify message", zap.Error(err))
				continue
			}
			m.handleIdentify(id)
		default:
			delta.BadMessages++
			m.log.Debug("unknown message", zap.Uint32("id", msg.ID))
		}
	}

	if delta == (LinkDelta{}) {
		return
	}
	m.mu.Lock()
	m.stats.Errors += delta.Errors
	m.stats.Lost += delta.Lost
	m.stats.BadMessages += delta.BadMessages
	m.mu.Unlock()

	if delta.Errors > 0 || delta.Lost > 0 {
		m.log.Warn("link errors",
			zap.Uint64("errors", delta.Errors),
			zap.Uint64("lost", delta.Lost))
	}
	for _, s := range m.sinks {
		if lo, ok := s.(LinkObserver); ok {
			lo.ObserveLink(delta)
		}
	}
}

func (m *Monitor) handleSample(s protocol.Sample) {
	r := Reading{Clock: s.Clock, OK: s.OK, Frame: s.Frame, Received: m.now()}

	m.mu.Lock()
	if r.OK {
		m.stats.FramesOK++
	} else {
		m.stats.FramesShort++
	}
	m.latest = r
	m.haveSample = true
	m.mu.Unlock()

	for _, sink := range m.sinks {
		sink.Observe(r)
	}
}

func (m *Monitor) handleIdentify(id protocol.Identify) {
	m.mu.Lock()
	m.identity = id
	m.identified = true
	m.mu.Unlock()

	m.log.Info("controller identified",
		zap.Uint32("version", id.Version),
		zap.String("mode", id.Mode),
		zap.Bool("ok", id.OK),
		zap.String("id", fmt.Sprintf("% x", id.ID[:])),
		zap.Bool("nunchuk", id.ID.IsNunchuk()))
	if id.Version != protocol.Version {
		m.log.Warn("firmware protocol version differs",
			zap.Uint32("firmware", id.Version),
			zap.Uint32("host", protocol.Version))
	}

	for _, s := range m.sinks {
		if obs, ok := s.(IdentityObserver); ok {
			obs.ObserveIdentity(id)
		}
	}
}

// Latest returns the most recent sample, including short reads.
func (m *Monitor) Latest() (Reading, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest, m.haveSample
}

// Identity returns the last identify message.
func (m *Monitor) Identity() (protocol.Identify, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.identity, m.identified
}

// Stats returns a snapshot of the counters.
func (m *Monitor) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

// Ready reports whether a sample arrived within the stale window.
func (m *Monitor) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.haveSample && m.now().Sub(m.latest.Received) <= m.staleAfter
}
