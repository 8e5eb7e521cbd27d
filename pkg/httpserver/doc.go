// Package httpserver wraps net/http with graceful shutdown, environment
// driven timeouts, and health-check handlers.
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Run binds the listener synchronously, so an unusable address is reported
// as ErrStart before any request is served. It returns nil after a graceful
// stop triggered by ctx, SIGINT/SIGTERM, or Shutdown.
//
// LivenessHandler and ReadinessHandler are meant for /healthz and /readyz.
package httpserver
