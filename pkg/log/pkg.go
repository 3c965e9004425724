package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

var defaultLogger atomic.Pointer[Logger]

func init() {
	l := Make(os.Stderr)
	defaultLogger.Store(&l)
}

// Default returns the package-level logger.
func Default() Logger {
	return *defaultLogger.Load()
}

// SetDefault replaces the package-level logger.
func SetDefault(l Logger) {
	defaultLogger.Store(&l)
}

// Config reconfigures the package-level logger with opts.
func Config(opts ...Option) {
	SetDefault(Default().Wrap(opts...))
}

func Trace(msg string, attrs ...slog.Attr) {
	Default().logContext(context.TODO(), LevelTrace, msg, attrs...)
}

func Debug(msg string, attrs ...slog.Attr) {
	Default().logContext(context.TODO(), LevelDebug, msg, attrs...)
}

func Info(msg string, attrs ...slog.Attr) {
	Default().logContext(context.TODO(), LevelInfo, msg, attrs...)
}

func Warn(msg string, attrs ...slog.Attr) {
	Default().logContext(context.TODO(), LevelWarn, msg, attrs...)
}

func Error(msg string, attrs ...slog.Attr) {
	Default().logContext(context.TODO(), LevelError, msg, attrs...)
}

func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logContext(ctx, LevelDebug, msg, attrs...)
}

func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logContext(ctx, LevelError, msg, attrs...)
}
