package main

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/posidron/rusty/pkg/log"
)

// logLevel configures the default logger as soon as kong decodes it, so
// messages logged while parsing flags already honour it.
type logLevel string

func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))
	return nil
}

type logFormat string

func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))
	return nil
}

type logConfig struct {
	Level      logLevel  `default:"warn"    enum:"trace,debug,info,warn,error" help:"Set log level."`
	Format     logFormat `default:"text"    enum:"text,json"                   help:"Set log format."`
	TimeLayout string    `default:"RFC3339"                                    help:"Set timestamp format."`
	Caller     bool      `default:"false"                                      help:"Include caller information." negatable:""`
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// scan applies --log-level and --log-format before kong runs, wherever
// they appear on the command line.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		name, value, assigned := strings.Cut(args[i], "=")
		if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			value = args[i+1]
		}
		switch name {
		case "--log-level":
			_ = f.Level.UnmarshalText([]byte(value))
		case "--log-format":
			_ = f.Format.UnmarshalText([]byte(value))
		}
	}
}

// start finalizes the default logger from the parsed flags and returns it.
func (f *logConfig) start(ctx context.Context) log.Logger {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
	)
	logger := log.Default()
	logger.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.Bool("caller", f.Caller),
	)
	return logger
}
