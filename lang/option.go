package lang

import (
	"io"
	"os"

	"github.com/ardnew/pcalc/log"
)

// settings holds configuration shared by [Parser] and [Environment].
type settings struct {
	logger log.Logger
	output io.Writer
}

func makeSettings(opts ...Option) settings {
	s := settings{output: os.Stdout}
	for _, opt := range opts {
		opt(&s)
	}

	return s
}

// Option configures a [Parser] or an [Environment].
type Option func(*settings)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithOutput sets the writer that receives xprint output.
// The default is [os.Stdout]; a nil writer discards output.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		if w == nil {
			w = io.Discard
		}

		s.output = w
	}
}
