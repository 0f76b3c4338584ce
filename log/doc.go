// Package log provides leveled structured logging built on [log/slog].
//
// A [Logger] is configured once with functional options and is safe for
// concurrent use. The zero Logger discards everything, which lets library
// types hold one without requiring callers to configure logging.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("kitchen"),
//		log.WithCaller(true))
//
//	logger.Debug("parsed", slog.String("code", "+ 1 2"))
//
// Levels are [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn], and
// [LevelError]. Trace sits below slog's debug level and is where the
// calculator core reports tokenizing, parsing, and definitions.
//
// Output is either [FormatText] or [FormatJSON]. Text output is styled with
// lipgloss when [WithPretty] is enabled and the writer is a terminal; the
// same layout is written without styling otherwise.
//
// The package-level functions log through a default logger that writes to
// standard error and can be replaced with [Config]. Calls without a context
// use [DefaultContextProvider].
package log
