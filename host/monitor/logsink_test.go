package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogSinkThrottles(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink := NewLogSink(zap.New(core), 1)

	start := time.Unix(0, 0)
	for i := 0; i < 10; i++ {
		sink.Observe(Reading{Clock: uint32(i), OK: true, Frame: scenario, Received: start.Add(time.Duration(i) * 100 * time.Millisecond)})
	}
	sink.Observe(Reading{Clock: 10, OK: true, Frame: scenario, Received: start.Add(1100 * time.Millisecond)})

	entries := logs.FilterMessage("sample").All()
	assert.Len(t, entries, 2)
	assert.Equal(t, int8(2), entries[0].ContextMap()["jx"])
}

func TestLogSinkShortFrames(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink := NewLogSink(zap.New(core), 1)

	now := time.Unix(0, 0)
	sink.Observe(Reading{OK: false, Received: now})
	sink.Observe(Reading{OK: true, Frame: scenario, Received: now})

	assert.Equal(t, 1, logs.FilterMessage("short frame").Len())
	assert.Equal(t, 1, logs.FilterMessage("sample").Len())
	assert.Equal(t, zapcore.WarnLevel, logs.FilterMessage("short frame").All()[0].Level)
}

func TestLogSinkDisabled(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink := NewLogSink(zap.New(core), 0)

	sink.Observe(Reading{OK: true, Frame: scenario, Received: time.Unix(0, 0)})
	assert.Zero(t, logs.Len())
}

func TestLogSinkNegativeRateDisables(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink := NewLogSink(zap.New(core), -1)

	sink.Observe(Reading{OK: true, Frame: scenario, Received: time.Unix(0, 0)})
	sink.Observe(Reading{OK: false, Received: time.Unix(1, 0)})
	assert.Zero(t, logs.Len())
}
