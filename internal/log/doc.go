// Package log is a small structured logger built on log/slog.
//
// A [Logger] is configured with functional options such as [WithLevel] and
// [WithFormat]. The package-level functions write through a default logger
// that [Config] reconfigures, so commands can set up logging once from flags
// and log from anywhere:
//
//	log.Config(log.WithLevel(log.LevelDebug), log.WithFormat(log.FormatText))
//	log.Debug("compiled", slog.String("text", src))
//
// Levels include [LevelTrace] below slog's debug level.
package log
