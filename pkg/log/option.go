package log

import (
	"io"
	"sync"
)

// Option applies a configuration option to config.
type Option func(config) config

// apply applies multiple options to a config.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// locked runs fn with the config's mutex held, creating one if needed.
func locked(fn func(*config)) Option {
	return func(c config) config {
		if c.mutex == nil {
			c.mutex = &sync.RWMutex{}
		} else {
			c.mutex.Lock()
			defer c.mutex.Unlock()
		}

		fn(&c)

		return c
	}
}

// WithDefaults sets [DefaultLevel], [DefaultFormat], [DefaultTimeLayout]
// and disables caller info.
func WithDefaults(w io.Writer) Option {
	return locked(func(c *config) {
		if w == nil {
			w = io.Discard
		}

		c.output = w
		c.timeLayout = DefaultTimeLayout
		c.level = DefaultLevel
		c.format = DefaultFormat
		c.caller = false
	})
}

// WithOutput sets the output writer. A nil writer discards output.
func WithOutput(w io.Writer) Option {
	return locked(func(c *config) {
		if w == nil {
			w = io.Discard
		}

		c.output = w
	})
}

// WithLevel sets the minimum log level.
func WithLevel(level Level) Option {
	return locked(func(c *config) {
		c.level = level
	})
}

// WithFormat sets the output format.
func WithFormat(format Format) Option {
	return locked(func(c *config) {
		c.format = format
	})
}

// WithTimeLayout sets the timestamp layout. Named layouts such as
// "rfc3339" or "kitchen" are recognized; an empty layout or "none"
// disables timestamps.
func WithTimeLayout(layout string) Option {
	return locked(func(c *config) {
		c.timeLayout = resolveTimeLayout(layout)
	})
}

// WithCaller controls whether caller information is included.
func WithCaller(enable bool) Option {
	return locked(func(c *config) {
		c.caller = enable
	})
}
