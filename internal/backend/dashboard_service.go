package backend

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/sojus-client/internal/domain"
	"github.com/spec-kit/sojus-client/internal/repository"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

// DashboardService computes the dashboard counters.
type DashboardService struct {
	repos *repository.Repositories
	clock repository.Clock
}

// Stats counts open, closed and high-priority tickets, the inventory and the
// contracts in force or ending within DefaultExpiringDays.
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	limit := s.clock().AddDate(0, 0, DefaultExpiringDays)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.OpenTickets, err = s.repos.Tickets.CountByStatus(gctx,
			domain.TicketStatusRequested, domain.TicketStatusAssigned, domain.TicketStatusInProgress)
		return err
	})
	g.Go(func() (err error) {
		stats.ClosedThisMonth, err = s.repos.Tickets.CountByStatus(gctx, domain.TicketStatusClosed)
		return err
	})
	g.Go(func() (err error) {
		stats.HighPriorityTickets, err = s.repos.Tickets.CountOpenByPriority(gctx, domain.TicketPriorityHigh)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalHardware, err = s.repos.Hardware.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalSoftware, err = s.repos.Software.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.ContractsInForce, err = s.repos.Contracts.CountActive(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.ContractsExpiring, err = s.repos.Contracts.CountEndingBy(gctx, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &stats, nil
}
