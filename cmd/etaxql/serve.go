package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/etaxql/etaxql/internal/app"
	"github.com/etaxql/etaxql/internal/document"
	"github.com/etaxql/etaxql/internal/fixtures"
	"github.com/etaxql/etaxql/internal/observability"
	"github.com/etaxql/etaxql/internal/query"
)

const shutdownTimeout = 10 * time.Second

func runServe(ctx context.Context) int {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return 0
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		return 1
	}

	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)
	return serve(ctx, cfg, logger)
}

// serve runs the HTTP server until ctx is cancelled or the listener fails.
func serve(ctx context.Context, cfg *app.Config, logger *slog.Logger) int {
	server, err := buildServer(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", slog.Any("error", err))
		return 1
	}

	ctx, stop := context.WithCancel(ctx)
	defer stop()
	failed := make(chan struct{})

	go func() {
		logger.Info("starting http server",
			slog.String("addr", cfg.AppAddr),
			slog.String("env", cfg.AppEnv),
			slog.Bool("introspection", cfg.IntrospectionEnabled()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			close(failed)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
		return 1
	}
	select {
	case <-failed:
		return 1
	default:
		return 0
	}
}

// buildServer loads the fixtures and assembles the HTTP server around them.
// Fixture values that do not fit the schema are logged, not fatal.
func buildServer(ctx context.Context, cfg *app.Config, logger *slog.Logger) (*http.Server, error) {
	store, err := fixtures.LoadDir(ctx, cfg.FixtureDir)
	if err != nil {
		return nil, fmt.Errorf("load fixtures from %s: %w", cfg.FixtureDir, err)
	}
	docs, err := document.Decode(store)
	if err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	logger.Info("fixtures loaded", slog.String("dir", cfg.FixtureDir), slog.Int("documents", store.Len()))

	if err := reportDrift(ctx, docs, store, logger); err != nil {
		return nil, err
	}

	metrics := observability.NewMetrics()
	metrics.RecordFixtures(store)

	schema, err := query.NewSchema(docs, query.Options{
		MaxDepth:      cfg.GraphQLMaxDepth,
		Introspection: cfg.IntrospectionEnabled(),
		Logger:        logger,
		Observer:      metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}

	graphqlHandler := query.NewHandler(logger, schema,
		query.WithRecorder(metrics),
		query.WithMaxBodyBytes(cfg.GraphQLMaxBodyBytes))

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		Documents:      store,
		GraphQLHandler: graphqlHandler,
		Metrics:        metrics,
	})

	return &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}, nil
}

// reportDrift runs the fixture check on a schema without metrics so the
// startup pass does not count as traffic.
func reportDrift(ctx context.Context, docs *document.Set, store *fixtures.Store, logger *slog.Logger) error {
	schema, err := query.NewSchema(docs, query.Options{Logger: logger})
	if err != nil {
		return fmt.Errorf("build schema: %w", err)
	}
	reports, err := query.Verify(ctx, schema, store)
	if err != nil {
		return fmt.Errorf("check fixtures: %w", err)
	}
	for _, report := range reports {
		if report.Clean() {
			continue
		}
		logger.Warn("fixture not served unchanged",
			slog.String("kind", string(report.Kind)),
			slog.Int("drift", len(report.Drift)),
			slog.Any("errors", report.Errors))
	}
	return nil
}
