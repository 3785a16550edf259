package events

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/ghuser/organcare/pkg/logger"
)

// slogAdapter routes Watermill's logging into the module logger, tagged
// component=watermill. Watermill's trace level maps to debug.
type slogAdapter struct{ log logger.Logger }

func newLogAdapter(log logger.Logger) *slogAdapter {
	return &slogAdapter{log: log.With("component", "watermill")}
}

func (a *slogAdapter) emit(level slog.Level, msg string, fields watermill.LogFields, extra ...slog.Attr) {
	attrs := make([]slog.Attr, 0, len(fields)+len(extra))
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	attrs = append(attrs, extra...)
	a.log.ToSlog().LogAttrs(context.Background(), level, msg, attrs...)
}

func (a *slogAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.emit(slog.LevelError, msg, fields, slog.Any("error", err))
}

func (a *slogAdapter) Info(msg string, fields watermill.LogFields) {
	a.emit(slog.LevelInfo, msg, fields)
}

func (a *slogAdapter) Debug(msg string, fields watermill.LogFields) {
	a.emit(slog.LevelDebug, msg, fields)
}

func (a *slogAdapter) Trace(msg string, fields watermill.LogFields) {
	a.emit(slog.LevelDebug, msg, fields)
}

func (a *slogAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &slogAdapter{log: a.log.With(args...)}
}
