// Package backend implements the business rules of the development backend
// served by sojus-mock: authentication, ticket workflow, inventory, contracts,
// the directory and the audit trail.
package backend

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/sojus-client/internal/auth"
	"github.com/spec-kit/sojus-client/internal/events"
	"github.com/spec-kit/sojus-client/internal/repository"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

// Dependencies bundles what the backend services need.
type Dependencies struct {
	Repos      *repository.Repositories
	Tokens     *auth.TokenManager
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Clock      repository.Clock
}

// Services groups every backend service.
type Services struct {
	Auth      *AuthService
	Tickets   *TicketService
	Inventory *InventoryService
	Contracts *ContractService
	Directory *DirectoryService
	Audit     *AuditService
	Dashboard *DashboardService
}

// New wires the services over deps.
func New(deps Dependencies) *Services {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Dispatcher == nil {
		deps.Dispatcher = events.NewInMemoryDispatcher()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	audit := &AuditService{audit: deps.Repos.Audit, clock: deps.Clock}
	return &Services{
		Auth:      &AuthService{users: deps.Repos.Users, tokens: deps.Tokens, logger: deps.Logger.Named("auth")},
		Tickets:   newTicketService(deps, audit),
		Inventory: &InventoryService{hardware: deps.Repos.Hardware, software: deps.Repos.Software, audit: audit},
		Contracts: &ContractService{contracts: deps.Repos.Contracts, audit: audit, clock: deps.Clock},
		Directory: &DirectoryService{users: deps.Repos.Users, locations: deps.Repos.Locations},
		Audit:     audit,
		Dashboard: &DashboardService{repos: deps.Repos, clock: deps.Clock},
	}
}

// notFound turns repository misses into NOT_FOUND and anything else into an
// internal error.
func notFound(err error, resource string, id int64) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return apperrors.NewInternalError(err)
}

func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if err := dispatcher.Publish(context.WithoutCancel(ctx), event); err != nil {
		logger.Warn("event handler failed", zap.String("event", string(event.Type)), zap.Error(err))
	}
}

// SeededRepositories loads the seed at seedFile (the built-in demo data when
// empty) into fresh repositories, hashing passwords with bcrypt at cost.
func SeededRepositories(ctx context.Context, seedFile string, cost int, clock repository.Clock) (*repository.Repositories, error) {
	seed, err := repository.LoadSeed(seedFile)
	if err != nil {
		return nil, err
	}
	repos := repository.New(clock)
	hash := func(password string) (string, error) {
		return auth.HashPassword(password, cost)
	}
	if err := repository.Populate(ctx, repos, seed, hash); err != nil {
		return nil, err
	}
	return repos, nil
}
