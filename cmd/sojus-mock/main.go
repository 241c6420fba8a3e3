// Command sojus-mock serves the SOJUS REST API from seeded in-memory data for
// local development of the client.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/sojus-client/internal/api/http"
	"github.com/spec-kit/sojus-client/internal/backend"
	"github.com/spec-kit/sojus-client/internal/config"
	"github.com/spec-kit/sojus-client/internal/events"
	"github.com/spec-kit/sojus-client/internal/observability"
	"github.com/spec-kit/sojus-client/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repos, err := backend.SeededRepositories(ctx, cfg.Mock.SeedFile, cfg.Mock.BcryptCost, nil)
	if err != nil {
		logger.Fatal("failed to load seed data", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(backend.NewEventLogger(dispatcher, logger))

	app, err := httptransport.NewServer(httptransport.ServerDependencies{
		App:        cfg.App,
		Mock:       cfg.Mock,
		Repos:      repos,
		Dispatcher: dispatcher,
		Logger:     logger,
		Metrics:    observability.NewMetrics(),
	})
	if err != nil {
		logger.Fatal("failed to build server", zap.Error(err))
	}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.Mock.Addr()))
		if err := app.Listen(cfg.Mock.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
