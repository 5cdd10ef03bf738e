// Package logger builds the slog loggers used by postmarkit's edges: the
// Postmark HTTP client, the scheduler and the command.
//
// [New] writes JSON to stdout at info level; options change the writer,
// the level and the format, and add [ContextExtractor]s that copy
// request-scoped values into every record:
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithExtractors(logger.TaskExtractor),
//	)
//	log.InfoContext(logger.WithTask(ctx, "seed_suppression_list"), "started")
//
// [NewWithSentry] additionally forwards warnings and errors to Sentry.
// With an empty DSN it falls back to local output only.
//
// [NewNope] discards everything and is the default for library components.
package logger
