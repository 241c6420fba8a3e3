package http_test

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/spec-kit/sojus-client/internal/api/http"
	"github.com/spec-kit/sojus-client/internal/backend"
	"github.com/spec-kit/sojus-client/internal/config"
	"github.com/spec-kit/sojus-client/internal/credstore"
	"github.com/spec-kit/sojus-client/internal/domain"
	"github.com/spec-kit/sojus-client/internal/events"
	"github.com/spec-kit/sojus-client/internal/gateway"
	"github.com/spec-kit/sojus-client/internal/navigation"
	"github.com/spec-kit/sojus-client/internal/service"
	"github.com/spec-kit/sojus-client/internal/session"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

// movableClock lets a test expire tokens on the server.
type movableClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *movableClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *movableClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type stack struct {
	clock    *movableClock
	store    *credstore.MemoryStore
	sessions *session.Manager
	services *service.Services
}

// startStack serves the development backend on a loopback port and wires the
// real client against it.
func startStack(t *testing.T) *stack {
	t.Helper()
	clock := &movableClock{now: time.Now().Truncate(time.Minute)}
	repos, err := backend.SeededRepositories(context.Background(), "", bcrypt.MinCost, clock.Now)
	require.NoError(t, err)

	app, err := httptransport.NewServer(httptransport.ServerDependencies{
		App:   config.AppConfig{Name: "sojus-mock", Version: "test"},
		Mock:  config.MockConfig{JWTSecret: "e2e-secret", AccessTokenTTLMinutes: 30},
		Repos: repos,
		Clock: clock.Now,
	})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	client := gateway.NewClient(gateway.Config{BaseURL: "http://" + ln.Addr().String(), Timeout: 5 * time.Second})
	dispatcher := events.NewInMemoryDispatcher()
	store := credstore.NewMemoryStore()
	sessions := session.NewManager(session.Dependencies{
		Store:         store,
		Authenticator: client.Auth,
		Dispatcher:    dispatcher,
	})
	client.UseSession(sessions)
	sessions.Bootstrap(context.Background())

	services := service.New(service.Dependencies{
		Sessions:   sessions,
		Gateway:    client,
		Navigator:  navigation.New(),
		Dispatcher: dispatcher,
	})
	services.Notifications.RegisterHandlers()
	return &stack{clock: clock, store: store, sessions: sessions, services: services}
}

func TestEndToEndLoginRejected(t *testing.T) {
	s := startStack(t)
	ctx := context.Background()

	result := s.services.Auth.Login(ctx, "tecnico", "wrong")
	assert.False(t, result.Success)
	assert.Equal(t, apperrors.MsgInvalidCredentials, result.Message)
	assert.Equal(t, domain.SessionAnonymous, s.sessions.Snapshot().Status)

	creds, err := s.store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, creds.Complete())
}

func TestEndToEndTechnicianFlow(t *testing.T) {
	s := startStack(t)
	ctx := context.Background()

	result := s.services.Auth.Login(ctx, "tecnico", "tec123")
	require.True(t, result.Success, result.Message)
	assert.Equal(t, domain.RoleTechnician, result.User.Role)
	assert.Equal(t, navigation.RouteTickets, s.services.Auth.Home())

	profile, err := s.services.Auth.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tecnico@poderjudicial.gov.ar", profile.User.Email)
	require.NotNil(t, profile.ExpiresAt)

	tickets, err := s.services.Tickets.List(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 3)

	view, err := s.services.Tickets.Detail(ctx, tickets[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusAssigned, view.Ticket.Status)
	assert.Equal(t, []domain.TicketStatus{domain.TicketStatusInProgress, domain.TicketStatusClosed}, view.Actions)

	moved, err := s.services.Tickets.ChangeStatus(ctx, view.Ticket, domain.TicketStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, moved.Ticket.Status)
	assert.Contains(t, moved.Ticket.Log, "tecnico: Estado cambiado a EN_CURSO")
	assert.Equal(t, []domain.TicketStatus{domain.TicketStatusClosed}, moved.Actions)

	closed, err := s.services.Tickets.ChangeStatus(ctx, moved.Ticket, domain.TicketStatusClosed)
	require.NoError(t, err)
	assert.False(t, closed.Ticket.ClosedAt.IsZero())
	assert.Empty(t, closed.Actions)

	_, err = s.services.Tickets.ChangeStatus(ctx, closed.Ticket, domain.TicketStatusInProgress)
	assert.True(t, apperrors.IsInvalidTransition(err))

	// Technicians cannot open tickets; the request never leaves the client.
	_, err = s.services.Tickets.Create(ctx, domain.TicketSubmission{Subject: "Teclado"})
	assert.True(t, apperrors.IsForbidden(err))

	inventory, err := s.services.Inventory.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, inventory.Hardware, 4)
	assert.Len(t, inventory.Software, 3)
}

func TestEndToEndOperatorFlow(t *testing.T) {
	s := startStack(t)
	ctx := context.Background()

	require.True(t, s.services.Auth.Login(ctx, "operador", "oper123").Success)

	created, err := s.services.Tickets.Create(ctx, domain.TicketSubmission{Subject: "Sin red en mesa de entradas"})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusRequested, created.Status)
	assert.Equal(t, domain.TicketPriorityMedium, created.Priority)
	assert.Equal(t, domain.ChannelMobileApp, created.Channel)

	mine, err := s.services.Tickets.Mine(ctx)
	require.NoError(t, err)
	assert.Len(t, mine, 5)

	dash, err := s.services.Dashboard.Load(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, dash.Stats.OpenTickets)
	assert.EqualValues(t, 3, dash.Stats.ContractsInForce)

	notices := s.services.Notifications.Drain()
	assert.NotEmpty(t, notices)
}

func TestEndToEndExpiredTokenEndsSession(t *testing.T) {
	s := startStack(t)
	ctx := context.Background()

	require.True(t, s.services.Auth.Login(ctx, "admin", "admin123").Success)
	_, err := s.services.Dashboard.Load(ctx)
	require.NoError(t, err)

	s.clock.Advance(31 * time.Minute)

	_, err = s.services.Tickets.List(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, domain.SessionAnonymous, s.sessions.Snapshot().Status)
	assert.Equal(t, navigation.RouteLogin, s.services.Auth.Home())

	creds, err := s.store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, creds.Complete())

	require.True(t, s.services.Auth.Login(ctx, "admin", "admin123").Success)
	tickets, err := s.services.Tickets.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tickets, 4)
}
