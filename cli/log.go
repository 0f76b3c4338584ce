package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/pcalc/log"
)

// logFormat configures the default logger's format as a side effect of
// parsing, so kong's own diagnostics already use it.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel configures the default logger's level as a side effect of
// parsing.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"${logLevelDefault}"  enum:"${logLevelEnum}"  help:"Set log level."`
	Format     logFormat `default:"${logFormatDefault}" enum:"${logFormatEnum}" help:"Set log format."`
	TimeLayout string    `default:"RFC3339"                                     help:"Set timestamp format."`
	Caller     bool      `default:"false"                                       help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                                        help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelDefault":  log.DefaultLevel.String(),
		"logLevelEnum":     strings.Join(slices.Collect(log.Levels()), ","),
		"logFormatDefault": log.DefaultFormat.String(),
		"logFormatEnum":    strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

// start installs the fully parsed configuration as the default logger.
func (f *logConfig) start(ctx context.Context) {
	log.Config(f.options()...)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

func (f *logConfig) options() []log.Option {
	return []log.Option{
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	}
}

// scan applies logger flags found in args before kong parses them.
//
// The level and format types configure the logger while kong parses, but
// boolean flags never pass through a TextUnmarshaler, and kong may report
// errors before reaching any of them.
func (f *logConfig) scan(args []string) {
	f.Level = logLevel(log.DefaultLevel.String())
	f.Format = logFormat(log.DefaultFormat.String())
	f.TimeLayout = log.DefaultTimeLayout
	f.Caller = log.DefaultCaller
	f.Pretty = log.DefaultPretty

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}

		name, value, assigned := strings.Cut(arg, "=")

		// next returns the flag's argument, consuming the next arg if the
		// flag was not written as name=value.
		next := func() string {
			if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++

				return args[i]
			}

			return value
		}

		// flag parses an optional boolean assignment.
		flag := func(negate bool) bool {
			b := true
			if assigned {
				if v, err := strconv.ParseBool(value); err == nil {
					b = v
				}
			}

			return b != negate
		}

		switch name {
		case "--log-level":
			f.Level = logLevel(next())
		case "--log-format":
			f.Format = logFormat(next())
		case "--log-time-layout":
			f.TimeLayout = next()
		case "--log-caller", "--no-log-caller":
			f.Caller = flag(name == "--no-log-caller")
		case "--log-pretty", "--no-log-pretty":
			f.Pretty = flag(name == "--no-log-pretty")
		}
	}

	log.Config(f.options()...)
}
