package monitor

import (
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// LogSink logs samples at info level, at most hz per second. Short reads
// are logged at warn level under a separate limit of the same rate.
type LogSink struct {
	log   *zap.Logger
	ok    *rate.Limiter
	short *rate.Limiter
}

// NewLogSink creates a LogSink. hz <= 0 disables sample logging; the host
// config passes a negative rate for that.
func NewLogSink(log *zap.Logger, hz float64) *LogSink {
	return &LogSink{
		log:   log,
		ok:    newLimiter(hz),
		short: newLimiter(hz),
	}
}

func newLimiter(hz float64) *rate.Limiter {
	if hz <= 0 {
		return rate.NewLimiter(0, 0)
	}
	return rate.NewLimiter(rate.Limit(hz), 1)
}

// Observe implements Sink.
func (l *LogSink) Observe(r Reading) {
	if !r.OK {
		if l.short.AllowN(r.Received, 1) {
			l.log.Warn("short frame", zap.Uint32("clock", r.Clock))
		}
		return
	}
	if !l.ok.AllowN(r.Received, 1) {
		return
	}
	s := r.Frame.Sample()
	l.log.Info("sample",
		zap.Uint32("clock", r.Clock),
		zap.Int8("jx", s.JoystickX),
		zap.Int8("jy", s.JoystickY),
		zap.Int16("ax", s.AccelX),
		zap.Int16("ay", s.AccelY),
		zap.Int16("az", s.AccelZ),
		zap.Float64("pitch", s.Pitch),
		zap.Float64("roll", s.Roll),
		zap.Bool("c", s.ButtonC),
		zap.Bool("z", s.ButtonZ))
}
