// Package logger builds slog loggers with functional options and provides
// attribute helpers that keep key names consistent.
//
// New returns a *slog.Logger writing JSON or text. Options select the level,
// the output, static attributes and ContextExtractor callbacks that add
// request-scoped attributes to every record logged with a context:
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "api"),
//	    logger.WithContextExtractors(environment.LoggerExtractor()),
//	)
//
// ValidationErrors turns a *schema.ValidationError into a group of
// path => message attributes:
//
//	log.DebugContext(ctx, "request rejected", logger.ValidationErrors(err))
//
// Error, Errors and ValidationErrors return an empty attribute for nil or
// unrelated errors, which slog drops, so they can be passed without a nil check.
package logger
