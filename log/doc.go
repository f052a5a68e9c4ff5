// Package log is the structured logger used throughout smf.
//
// It wraps [log/slog] with a [Logger] value type whose configuration is set
// once with functional options and never mutated in place:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
//	logger.Debug("parsed", slog.String("file", name), slog.Int("vars", n))
//
// [Logger.Wrap] derives a logger with different options and [Logger.With]
// derives one that adds attributes to every record. The zero [Logger]
// discards everything, so it can be used wherever logging is optional.
//
// # Levels
//
// In addition to the four [log/slog] levels, [LevelTrace] sits below
// [LevelDebug] and is rendered as "TRACE".
//
// # Output
//
// Records are written as [FormatJSON] or [FormatText]. With [WithPretty]
// enabled (the default) both formats are coloured when the output is a
// terminal, and JSON records are indented.
//
// # Package-level logging
//
// The package-level functions such as [Info] and [Debug] write to a default
// logger on [os.Stderr] that can be reconfigured with [Config]. A [Logger]
// can also travel in a [context.Context] via [NewContext] and [FromContext].
package log
