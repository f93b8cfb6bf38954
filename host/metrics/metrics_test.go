package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nunchuk/host/monitor"
	"nunchuk/nunchuk"
	"nunchuk/protocol"
)

func value(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var out dto.Metric
	require.NoError(t, m.Write(&out))
	switch {
	case out.Gauge != nil:
		return out.Gauge.GetValue()
	case out.Counter != nil:
		return out.Counter.GetValue()
	}
	t.Fatalf("unsupported metric %v", m.Desc())
	return 0
}

func TestObserveFrame(t *testing.T) {
	reg := NewRegistry()
	m := New(reg)

	f := nunchuk.Frame{130, 120, 255, 0, 128, 0b00010100}
	m.ObserveFrame(f, true)

	assert.Equal(t, 2.0, value(t, m.Joystick.WithLabelValues("x")))
	assert.Equal(t, -8.0, value(t, m.Joystick.WithLabelValues("y")))
	assert.Equal(t, 509.0, value(t, m.Accel.WithLabelValues("x")))
	assert.Equal(t, -511.0, value(t, m.Accel.WithLabelValues("y")))
	assert.Equal(t, 0.0, value(t, m.Accel.WithLabelValues("z")))
	assert.Equal(t, 1.0, value(t, m.Button.WithLabelValues("c")))
	assert.Equal(t, 1.0, value(t, m.Button.WithLabelValues("z")))
	assert.Equal(t, 1.0, value(t, m.Frames.WithLabelValues("ok")))
}

func TestObserveShortFrameKeepsGauges(t *testing.T) {
	m := New(NewRegistry())

	m.Observe(monitor.Reading{OK: true, Frame: nunchuk.Frame{130, 128, 0, 0, 0, 0xFF}})
	m.Observe(monitor.Reading{OK: false, Frame: nunchuk.Frame{255, 128, 0, 0, 0, 0xFF}})

	assert.Equal(t, 2.0, value(t, m.Joystick.WithLabelValues("x")))
	assert.Equal(t, 1.0, value(t, m.Frames.WithLabelValues("short")))
}

func TestObserveIdentityAndLink(t *testing.T) {
	m := New(NewRegistry())

	m.ObserveIdentity(protocol.Identify{OK: true, ID: nunchuk.ID{0, 0, 0xA4, 0x20, 0, 0}})
	assert.Equal(t, 1.0, value(t, m.Identified))
	m.ObserveIdentity(protocol.Identify{OK: true, ID: nunchuk.ID{0, 0, 0xA4, 0x20, 0x01, 0x01}})
	assert.Equal(t, 0.0, value(t, m.Identified))
	m.ObserveIdentity(protocol.Identify{OK: false, ID: nunchuk.ID{0, 0, 0xA4, 0x20, 0, 0}})
	assert.Equal(t, 0.0, value(t, m.Identified))

	m.ObserveLink(monitor.LinkDelta{Errors: 3})
	m.ObserveLink(monitor.LinkDelta{Lost: 2, BadMessages: 1})
	assert.Equal(t, 3.0, value(t, m.LinkErrors))
	assert.Equal(t, 2.0, value(t, m.LinkLost))
	assert.Equal(t, 1.0, value(t, m.BadMessage))
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := NewRegistry()
	m := New(reg)
	m.ObserveFrame(nunchuk.Frame{128, 128, 128, 128, 128, 0x03}, true)

	rr := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "nunchuk_frames_total")
	assert.Contains(t, rr.Body.String(), "nunchuk_joystick")
}

func TestFrameCountersExportedBeforeFirstFrame(t *testing.T) {
	reg := NewRegistry()
	New(reg)

	rr := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `nunchuk_frames_total{result="ok"} 0`)
	assert.Contains(t, rr.Body.String(), `nunchuk_frames_total{result="short"} 0`)
}
