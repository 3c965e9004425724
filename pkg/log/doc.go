// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Loggers are created with [Make] and configured with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON))
//	logger.Info("script finished", slog.String("file", name))
//
// The zero [Logger] discards everything, so it can be embedded in other
// types without setup. A package-level logger writing to stderr backs the
// [Debug], [Info], [Warn] and [Error] functions; [Config] reconfigures it.
//
// Besides the slog levels there is [LevelTrace], below debug, used for
// per-call tracing inside the interpreter.
package log
