// Command refdata serves the reference-data administration API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/refdata/core"
	"github.com/dmitrymomot/refdata/modules/refdata"
	"github.com/dmitrymomot/refdata/pkg/command"
	"github.com/dmitrymomot/refdata/pkg/config"
	"github.com/dmitrymomot/refdata/pkg/contentguard"
	"github.com/dmitrymomot/refdata/pkg/httpserver"
	"github.com/dmitrymomot/refdata/pkg/logger"
	"github.com/dmitrymomot/refdata/pkg/requestid"
	"github.com/dmitrymomot/refdata/pkg/validation"
	"github.com/dmitrymomot/refdata/pkg/validator"
)

type appConfig struct {
	// GuardFile optionally points at a YAML content guard policy.
	// CONTENT_GUARD_* variables are used when it is empty.
	GuardFile string `env:"CONTENT_GUARD_FILE"`
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg  appConfig
		logCfg  logger.Config
		httpCfg httpserver.Config
	)
	if err := config.Load(&appCfg); err != nil {
		return err
	}
	if err := config.Load(&logCfg); err != nil {
		return err
	}
	if err := config.Load(&httpCfg); err != nil {
		return err
	}

	extractors := append([]logger.ContextExtractor{requestid.LoggerExtractor()}, command.LogExtractors()...)
	log := logger.New(logger.FromConfig(logCfg), logger.WithContextExtractors(extractors...))
	logger.SetAsDefault(log)

	guard, err := loadGuard(appCfg.GuardFile)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "content guard configured",
		slog.Bool("enabled", guard.Enabled),
		slog.Any("excluded", guard.ExcludedPathSubstrings),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	rules := validator.NewRegistry()
	refdata.RegisterRules(rules)

	stage := validation.New(guard,
		validation.WithLogger(log),
		validation.WithRuleRunner(rules),
		validation.WithMetrics(validation.NewMetrics(reg)),
	)

	bus := command.NewDispatcher(
		command.WithLogger(log),
		command.WithMiddleware(command.LoggingMiddleware(log), stage.Middleware()),
	)
	store := refdata.NewStore()
	svc := refdata.NewService(bus, store)
	bus.Register(svc.Handlers()...)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(log, httpserver.Check{Name: "store", Check: store.Ping}))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	r.Mount("/api/v1", refdata.Router(svc, core.NewErrorHandler(log)))

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

// loadGuard reads the YAML policy when path is set, otherwise the
// environment. Fields holding addresses, URLs and phone numbers are always
// excluded from the content scan.
func loadGuard(path string) (contentguard.Config, error) {
	var (
		cfg contentguard.Config
		err error
	)
	if path != "" {
		cfg, err = contentguard.LoadFile(path)
	} else {
		cfg = contentguard.DefaultConfig()
		err = config.Load(&cfg)
	}
	if err != nil {
		return contentguard.Config{}, err
	}

	cfg.ExcludedPathSubstrings = append(cfg.ExcludedPathSubstrings, refdata.ContentExemptFields...)
	if err := cfg.Validate(); err != nil {
		return contentguard.Config{}, err
	}
	return cfg, nil
}
