// Package logger builds context-aware *slog.Logger instances.
//
// New takes functional options selecting the output format, level, static
// attributes and ContextExtractor callbacks. Extractors run on every Handle
// call, so request-scoped values such as a command id are attached to each
// record logged with a context that carries them:
//
//	log := logger.New(
//		logger.WithEnvironment(os.Getenv("APP_ENV"), "refdata"),
//		logger.WithContextExtractors(command.LogExtractors()...),
//	)
//	log.InfoContext(ctx, "command rejected", logger.Failures(len(errs)))
//
// A Config struct is provided for environment-driven setup:
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log := logger.New(logger.FromConfig(cfg))
//
// Attribute helpers in attr.go keep key names consistent. Error and Errors
// return an empty Attr for nil errors, which slog drops.
package logger
