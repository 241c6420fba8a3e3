package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/spec-kit/sojus-client/internal/config"
	"github.com/spec-kit/sojus-client/internal/credstore"
	"github.com/spec-kit/sojus-client/internal/events"
	"github.com/spec-kit/sojus-client/internal/gateway"
	"github.com/spec-kit/sojus-client/internal/navigation"
	"github.com/spec-kit/sojus-client/internal/observability"
	"github.com/spec-kit/sojus-client/internal/service"
	"github.com/spec-kit/sojus-client/internal/session"
	"github.com/spec-kit/sojus-client/internal/worker"
)

// app holds what a command needs. It is built once per process by open.
type app struct {
	out    io.Writer
	errOut io.Writer

	baseURL     string
	showMetrics bool

	cfg      *config.Config
	logger   *zap.Logger
	metrics  *observability.Metrics
	sessions *session.Manager
	services *service.Services
	closers  []func()
}

// open wires the gateway, the session and the screen services, then restores
// the stored credential.
func (a *app) open(ctx context.Context) error {
	if a.services != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.baseURL != "" {
		cfg.API.BaseURL = a.baseURL
	}
	a.cfg = cfg

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.logger = logger
	a.closers = append(a.closers, func() { _ = logger.Sync() })

	store, closeStore, err := credstore.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, closeStore)

	a.metrics = observability.NewMetrics()
	client := gateway.NewClient(gateway.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.RequestTimeout(),
		UserAgent: fmt.Sprintf("sojus-cli/%s", version),
		Debug:     cfg.API.Debug,
		Logger:    logger,
		Metrics:   a.metrics,
	})

	dispatcher := events.NewInMemoryDispatcher()
	a.sessions = session.NewManager(session.Dependencies{
		Store:         store,
		Authenticator: client.Auth,
		Dispatcher:    dispatcher,
		Logger:        logger,
	})
	client.UseSession(a.sessions)

	a.services = service.New(service.Dependencies{
		Sessions:   a.sessions,
		Gateway:    client,
		Navigator:  navigation.New(),
		Dispatcher: dispatcher,
		Logger:     logger,
		Notify:     a.notify,
	})
	worker.StartNotificationWorker(a.services.Notifications)

	restored := a.sessions.Bootstrap(ctx)
	logger.Debug("session restored", zap.String("status", string(restored.Status)))
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *app) notify(n service.Notice) {
	if n.Title == "" {
		fmt.Fprintf(a.errOut, "[%s] %s\n", n.Level, n.Message)
		return
	}
	fmt.Fprintf(a.errOut, "[%s] %s: %s\n", n.Level, n.Title, n.Message)
}

func (a *app) printMetrics() {
	if a.metrics == nil {
		return
	}
	snap := a.metrics.Snapshot()
	fmt.Fprintln(a.errOut, "requests:")
	for _, c := range snap.Requests {
		fmt.Fprintf(a.errOut, "  %s\t%d\t%s\n", c.Key, c.Count, c.TotalLatency)
	}
	if len(snap.Errors) == 0 {
		return
	}
	fmt.Fprintln(a.errOut, "errors:")
	for _, c := range snap.Errors {
		fmt.Fprintf(a.errOut, "  %s\t%d\n", c.Key, c.Count)
	}
}
