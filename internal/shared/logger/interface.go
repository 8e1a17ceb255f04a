package logger

import "log/slog"

// Interface is the logging contract handed to every component. Methods take
// a message followed by alternating key/value pairs.
type Interface interface {
	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
	With(keysAndValues ...any) Interface
}

type slogLogger struct {
	l *slog.Logger
}

// FromSlog adapts l to Interface.
func FromSlog(l *slog.Logger) Interface {
	return slogLogger{l: l}
}

func (s slogLogger) Debugw(msg string, kv ...any) { s.l.Debug(msg, kv...) }
func (s slogLogger) Infow(msg string, kv ...any)  { s.l.Info(msg, kv...) }
func (s slogLogger) Warnw(msg string, kv ...any)  { s.l.Warn(msg, kv...) }
func (s slogLogger) Errorw(msg string, kv ...any) { s.l.Error(msg, kv...) }

func (s slogLogger) With(kv ...any) Interface {
	return slogLogger{l: s.l.With(kv...)}
}
