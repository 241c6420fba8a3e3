package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/sojus-client/internal/authz"
	"github.com/spec-kit/sojus-client/internal/domain"
	"github.com/spec-kit/sojus-client/internal/gateway"
	"github.com/spec-kit/sojus-client/internal/worker"
)

// DashboardService backs the dashboard screen.
type DashboardService struct {
	sessions  sessionReader
	dashboard *gateway.DashboardService
	contracts *gateway.ContractsService
	logger    *zap.Logger
}

// Dashboard is the content of the dashboard screen.
type Dashboard struct {
	Stats    *domain.DashboardStats
	Expiring []domain.Contract
}

// NewDashboardService builds the service.
func NewDashboardService(deps Dependencies) *DashboardService {
	return &DashboardService{
		sessions:  deps.Sessions,
		dashboard: deps.Gateway.Dashboard,
		contracts: deps.Gateway.Contracts,
		logger:    deps.Logger.Named("dashboard"),
	}
}

// Load fetches the counters and the contracts about to expire concurrently.
func (s *DashboardService) Load(ctx context.Context) (*Dashboard, error) {
	current, err := requireView(s.sessions, authz.ViewDashboard)
	if err != nil {
		return nil, err
	}

	var out Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.dashboard.Stats(gctx)
		out.Stats = stats
		return err
	})
	if authz.CanView(current.Role(), authz.ViewContracts) {
		g.Go(func() error {
			items, err := s.contracts.Expiring(gctx, DefaultExpiringDays)
			sortByEnd(items)
			out.Expiring = items
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, screenError(err, MsgLoadFailed)
	}
	return &out, nil
}

// Open starts Load in the background.
func (s *DashboardService) Open(ctx context.Context) *worker.Task[*Dashboard] {
	return worker.Start(ctx, s.Load, worker.WithLogger[*Dashboard](s.logger))
}
