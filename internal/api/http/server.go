package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/sojus-client/internal/api/http/handlers"
	"github.com/spec-kit/sojus-client/internal/auth"
	"github.com/spec-kit/sojus-client/internal/backend"
	"github.com/spec-kit/sojus-client/internal/config"
	"github.com/spec-kit/sojus-client/internal/events"
	"github.com/spec-kit/sojus-client/internal/observability"
	"github.com/spec-kit/sojus-client/internal/repository"
)

// ServerDependencies bundles what NewServer needs. Nil fields get defaults.
type ServerDependencies struct {
	App        config.AppConfig
	Mock       config.MockConfig
	Repos      *repository.Repositories
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Clock      repository.Clock
}

// NewServer assembles the development backend on a fiber app.
func NewServer(deps ServerDependencies) (*fiber.App, error) {
	if deps.Repos == nil {
		return nil, errors.New("server requires repositories")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}

	tokens := auth.NewTokenManager(deps.Mock.JWTSecret, deps.Mock.AccessTokenTTLMinutes).WithClock(deps.Clock)
	services := backend.New(backend.Dependencies{
		Repos:      deps.Repos,
		Tokens:     tokens,
		Dispatcher: deps.Dispatcher,
		Logger:     deps.Logger,
		Clock:      deps.Clock,
	})

	app := fiber.New(fiber.Config{
		AppName:               deps.App.Name,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, deps.Logger.Named("http"), deps.Metrics, deps.Mock.RequestTimeout())

	users := deps.Repos.Users
	RegisterRoutes(app, RouteConfig{
		Health: handlers.NewHealthHandler(deps.App.Name, deps.App.Version, map[string]handlers.ReadinessCheck{
			"repository": func(ctx context.Context) error {
				all, err := users.List(ctx)
				if err != nil {
					return err
				}
				if len(all) == 0 {
					return errors.New("no users seeded")
				}
				return nil
			},
		}),
		Auth:           handlers.NewAuthHandler(services.Auth),
		Tickets:        handlers.NewTicketsHandler(services.Tickets),
		Inventory:      handlers.NewInventoryHandler(services.Inventory),
		Contracts:      handlers.NewContractsHandler(services.Contracts),
		Directory:      handlers.NewDirectoryHandler(services.Directory),
		Audit:          handlers.NewAuditHandler(services.Audit),
		Dashboard:      handlers.NewDashboardHandler(services.Dashboard),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, users),
	})
	return app, nil
}
