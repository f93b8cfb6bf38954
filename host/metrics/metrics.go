// Package metrics exposes controller readings as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nunchuk/host/monitor"
	"nunchuk/nunchuk"
	"nunchuk/protocol"
)

// NewRegistry creates a registry with the Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler returns the HTTP handler for reg.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// Metrics holds the controller gauges and link counters.
type Metrics struct {
	Joystick   *prometheus.GaugeVec   // labels: axis=x|y
	Accel      *prometheus.GaugeVec   // labels: axis=x|y|z
	Angle      *prometheus.GaugeVec   // labels: kind=pitch|roll|joystick
	Button     *prometheus.GaugeVec   // labels: button=c|z
	Frames     *prometheus.CounterVec // labels: result=ok|short
	Identified prometheus.Gauge
	LinkErrors prometheus.Counter
	LinkLost   prometheus.Counter
	BadMessage prometheus.Counter
}

// New registers and returns the controller metrics.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Joystick: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "nunchuk_joystick",
			Help: "Centered joystick position.",
		}, []string{"axis"}),
		Accel: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "nunchuk_accel",
			Help: "Centered accelerometer reading.",
		}, []string{"axis"}),
		Angle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "nunchuk_angle_radians",
			Help: "Derived angles in radians.",
		}, []string{"kind"}),
		Button: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "nunchuk_button_pressed",
			Help: "1 while the button is held.",
		}, []string{"button"}),
		Frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nunchuk_frames_total",
			Help: "Frames reported by the firmware.",
		}, []string{"result"}),
		Identified: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nunchuk_identified",
			Help: "1 when the attached device reported a nunchuk id.",
		}),
		LinkErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nunchuk_link_errors_total",
			Help: "Serial blocks dropped for framing or CRC errors.",
		}),
		LinkLost: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nunchuk_link_lost_total",
			Help: "Serial blocks missing according to sequence gaps.",
		}),
		BadMessage: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nunchuk_bad_messages_total",
			Help: "Blocks with a valid CRC but an unparseable payload.",
		}),
	}
	// both results are exported from the first scrape
	m.Frames.WithLabelValues("ok")
	m.Frames.WithLabelValues("short")

	reg.MustRegister(m.Joystick, m.Accel, m.Angle, m.Button, m.Frames,
		m.Identified, m.LinkErrors, m.LinkLost, m.BadMessage)
	return m
}

// Observe implements monitor.Sink.
func (m *Metrics) Observe(r monitor.Reading) {
	m.ObserveFrame(r.Frame, r.OK)
}

// ObserveFrame records one polled frame. Gauges only move on a complete
// frame so a short read does not publish stale bytes.
func (m *Metrics) ObserveFrame(f nunchuk.Frame, ok bool) {
	if !ok {
		m.Frames.WithLabelValues("short").Inc()
		return
	}
	m.Frames.WithLabelValues("ok").Inc()

	m.Joystick.WithLabelValues("x").Set(float64(f.JoystickX()))
	m.Joystick.WithLabelValues("y").Set(float64(f.JoystickY()))
	m.Accel.WithLabelValues("x").Set(float64(f.AccelX()))
	m.Accel.WithLabelValues("y").Set(float64(f.AccelY()))
	m.Accel.WithLabelValues("z").Set(float64(f.AccelZ()))
	m.Angle.WithLabelValues("pitch").Set(f.Pitch())
	m.Angle.WithLabelValues("roll").Set(f.Roll())
	m.Angle.WithLabelValues("joystick").Set(f.JoystickAngle())
	m.Button.WithLabelValues("c").Set(boolGauge(f.ButtonC()))
	m.Button.WithLabelValues("z").Set(boolGauge(f.ButtonZ()))
}

// ObserveIdentity records whether the device identified as a nunchuk.
func (m *Metrics) ObserveIdentity(id protocol.Identify) {
	m.Identified.Set(boolGauge(id.OK && id.ID.IsNunchuk()))
}

// ObserveLink adds link error deltas.
func (m *Metrics) ObserveLink(d monitor.LinkDelta) {
	add(m.LinkErrors, d.Errors)
	add(m.LinkLost, d.Lost)
	add(m.BadMessage, d.BadMessages)
}

func add(c prometheus.Counter, n uint64) {
	if n > 0 {
		c.Add(float64(n))
	}
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
