// Package environment names the deployment stage a process runs in and
// carries it through context.Context.
//
// Parse normalizes configuration values such as "prod" or "stage".
// Middleware stores the environment on every request context, and
// LoggerExtractor exposes it to loggers built with pkg/logger:
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "api"),
//	    logger.WithContextExtractors(environment.LoggerExtractor()),
//	)
package environment
