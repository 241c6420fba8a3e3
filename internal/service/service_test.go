package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/sojus-client/internal/credstore"
	"github.com/spec-kit/sojus-client/internal/domain"
	"github.com/spec-kit/sojus-client/internal/events"
	"github.com/spec-kit/sojus-client/internal/gateway"
	"github.com/spec-kit/sojus-client/internal/session"
	"github.com/spec-kit/sojus-client/internal/worker"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

type harness struct {
	mux      *http.ServeMux
	store    *credstore.MemoryStore
	sessions *session.Manager
	services *Services

	mu   sync.Mutex
	hits map[string]int
}

// newHarness returns services over a session restored for role. An empty
// role leaves the session anonymous.
func newHarness(t *testing.T, role domain.Role) *harness {
	t.Helper()
	h := &harness{mux: http.NewServeMux(), store: credstore.NewMemoryStore(), hits: map[string]int{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		h.hits[r.Method+" "+r.URL.Path]++
		h.mu.Unlock()
		h.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	if role != "" {
		h.store.Put(credstore.Credentials{
			Token: "token-" + string(role),
			User:  &domain.User{Username: "u", FullName: "Usuario", Role: role},
		})
	}

	client := gateway.NewClient(gateway.Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
	dispatcher := events.NewInMemoryDispatcher()
	h.sessions = session.NewManager(session.Dependencies{
		Store:         h.store,
		Authenticator: client.Auth,
		Dispatcher:    dispatcher,
	})
	client.UseSession(h.sessions)
	h.sessions.Bootstrap(context.Background())

	h.services = New(Dependencies{Sessions: h.sessions, Gateway: client, Dispatcher: dispatcher})
	h.services.Notifications.RegisterHandlers()
	return h
}

func (h *harness) handle(pattern string, status int, body any) {
	h.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	})
}

func (h *harness) hitCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	total := 0
	for _, n := range h.hits {
		total += n
	}
	return total
}

func (h *harness) hit(key string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hits[key]
}

func ticketJSON(id int64, status domain.TicketStatus) map[string]any {
	return map[string]any{"id": id, "asunto": "Impresora", "status": status, "prioridad": "MEDIA"}
}

func TestAvailableActions(t *testing.T) {
	assigned := &domain.Ticket{Status: domain.TicketStatusAssigned}
	closed := &domain.Ticket{Status: domain.TicketStatusClosed}

	assert.Equal(t, []domain.TicketStatus{domain.TicketStatusInProgress, domain.TicketStatusClosed}, AvailableActions(domain.RoleTechnician, assigned))
	assert.Equal(t, []domain.TicketStatus{domain.TicketStatusInProgress, domain.TicketStatusClosed}, AvailableActions(domain.RoleAdmin, assigned))
	assert.Empty(t, AvailableActions(domain.RoleOperator, assigned))
	assert.Empty(t, AvailableActions(domain.RoleAdmin, closed))
	assert.Empty(t, AvailableActions(domain.RoleAdmin, nil))
}

func TestTicketDetailCarriesRoleActions(t *testing.T) {
	h := newHarness(t, domain.RoleTechnician)
	h.handle("GET /api/tickets/3", http.StatusOK, ticketJSON(3, domain.TicketStatusRequested))

	view, err := h.services.Tickets.Detail(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, int64(3), view.Ticket.ID)
	assert.Equal(t, []domain.TicketStatus{domain.TicketStatusAssigned}, view.Actions)
}

func TestTicketDetailFailureMessage(t *testing.T) {
	h := newHarness(t, domain.RoleOperator)
	h.handle("GET /api/tickets/3", http.StatusInternalServerError, map[string]any{"message": "boom"})

	_, err := h.services.Tickets.Detail(context.Background(), 3)

	assert.Equal(t, MsgLoadTicketFailed, apperrors.MessageOf(err, ""))
	assert.Equal(t, apperrors.CodeInternal, apperrors.ToDomainError(err).Code)
}

func TestCreateTicketRules(t *testing.T) {
	t.Run("technician may not create", func(t *testing.T) {
		h := newHarness(t, domain.RoleTechnician)
		_, err := h.services.Tickets.Create(context.Background(), domain.TicketSubmission{Subject: "x"})
		assert.True(t, apperrors.IsForbidden(err))
		assert.Zero(t, h.hitCount())
	})

	t.Run("blank subject is rejected locally", func(t *testing.T) {
		h := newHarness(t, domain.RoleOperator)
		_, err := h.services.Tickets.Create(context.Background(), domain.TicketSubmission{Subject: "  "})
		assert.True(t, apperrors.IsValidation(err))
		assert.Equal(t, "El asunto es obligatorio", apperrors.MessageOf(err, ""))
		assert.Zero(t, h.hitCount())
	})

	t.Run("server failure uses screen message", func(t *testing.T) {
		h := newHarness(t, domain.RoleOperator)
		h.handle("POST /api/tickets", http.StatusBadGateway, nil)
		_, err := h.services.Tickets.Create(context.Background(), domain.TicketSubmission{Subject: "PC"})
		assert.Equal(t, MsgCreateFailed, apperrors.MessageOf(err, ""))
	})

	t.Run("success raises notice", func(t *testing.T) {
		h := newHarness(t, domain.RoleOperator)
		h.handle("POST /api/tickets", http.StatusCreated, ticketJSON(9, domain.TicketStatusRequested))
		ticket, err := h.services.Tickets.Create(context.Background(), domain.TicketSubmission{Subject: "PC"})
		require.NoError(t, err)
		assert.Equal(t, int64(9), ticket.ID)
		assert.Equal(t, []Notice{{Level: NoticeInfo, Title: "Éxito", Message: MsgTicketCreated}}, h.services.Notifications.Drain())
	})
}

func TestChangeStatusRules(t *testing.T) {
	t.Run("operator may not change status", func(t *testing.T) {
		h := newHarness(t, domain.RoleOperator)
		ticket := &domain.Ticket{ID: 1, Status: domain.TicketStatusRequested}
		_, err := h.services.Tickets.ChangeStatus(context.Background(), ticket, domain.TicketStatusAssigned)
		assert.True(t, apperrors.IsForbidden(err))
		assert.Zero(t, h.hitCount())
	})

	t.Run("invalid transition never reaches the server", func(t *testing.T) {
		h := newHarness(t, domain.RoleTechnician)
		ticket := &domain.Ticket{ID: 1, Status: domain.TicketStatusClosed}
		_, err := h.services.Tickets.ChangeStatus(context.Background(), ticket, domain.TicketStatusInProgress)
		assert.True(t, apperrors.IsInvalidTransition(err))
		assert.Equal(t, MsgStatusFailed, apperrors.MessageOf(err, ""))
		assert.Equal(t, domain.TicketStatusClosed, ticket.Status)
		assert.Zero(t, h.hitCount())
	})

	t.Run("accepted change returns new actions", func(t *testing.T) {
		h := newHarness(t, domain.RoleTechnician)
		h.handle("PATCH /api/tickets/1/status", http.StatusOK, ticketJSON(1, domain.TicketStatusInProgress))
		ticket := &domain.Ticket{ID: 1, Status: domain.TicketStatusAssigned}

		view, err := h.services.Tickets.ChangeStatus(context.Background(), ticket, domain.TicketStatusInProgress)

		require.NoError(t, err)
		assert.Equal(t, domain.TicketStatusAssigned, ticket.Status, "the input ticket is not mutated")
		assert.Equal(t, domain.TicketStatusInProgress, view.Ticket.Status)
		assert.Equal(t, []domain.TicketStatus{domain.TicketStatusClosed}, view.Actions)
		assert.Equal(t, "Estado actualizado a EN_CURSO", h.services.Notifications.Drain()[0].Message)
	})
}

func TestRejectedTokenEndsSession(t *testing.T) {
	h := newHarness(t, domain.RoleTechnician)
	h.handle("PATCH /api/tickets/1/status", http.StatusUnauthorized, map[string]any{"message": "expired"})

	_, err := h.services.Tickets.ChangeStatus(context.Background(), &domain.Ticket{ID: 1, Status: domain.TicketStatusAssigned}, domain.TicketStatusClosed)

	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, apperrors.MsgSessionExpired, apperrors.MessageOf(err, ""))
	assert.Equal(t, domain.SessionAnonymous, h.sessions.Snapshot().Status)
	creds, loadErr := h.store.Load(context.Background())
	require.NoError(t, loadErr)
	assert.True(t, creds.Empty())

	notices := h.services.Notifications.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, "Sesión expirada", notices[0].Title)

	_, err = h.services.Tickets.List(context.Background())
	assert.Equal(t, MsgNotSignedIn, apperrors.MessageOf(err, ""))
	assert.Equal(t, 1, h.hitCount())
}

func TestDetachedLoadStillInvalidates(t *testing.T) {
	h := newHarness(t, domain.RoleAdmin)
	release := make(chan struct{})
	h.mux.HandleFunc("GET /api/tickets/5", func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusUnauthorized)
	})

	task := h.services.Tickets.OpenDetail(context.Background(), 5)
	task.Detach()
	close(release)
	<-task.Done()

	assert.Equal(t, worker.StateLoading, task.Snapshot().State)
	assert.Equal(t, domain.SessionAnonymous, h.sessions.Snapshot().Status)
}

func TestInventoryLoadsBothLists(t *testing.T) {
	h := newHarness(t, domain.RoleTechnician)
	h.handle("GET /api/inventory/hardware", http.StatusOK, []map[string]any{{"id": 1, "inventarioPatrimonial": "INV-001-0001"}})
	h.handle("GET /api/inventory/software", http.StatusOK, []map[string]any{{"id": 2, "nombre": "LEX Doctor"}, {"id": 3, "nombre": "ESET"}})

	snap, err := h.services.Inventory.Open(context.Background()).Wait(context.Background())

	require.NoError(t, err)
	require.Equal(t, worker.StateSuccess, snap.State)
	assert.Len(t, snap.Data.Hardware, 1)
	assert.Len(t, snap.Data.Software, 2)
}

func TestInventoryFailureAndPolicy(t *testing.T) {
	h := newHarness(t, domain.RoleTechnician)
	h.handle("GET /api/inventory/hardware", http.StatusOK, []any{})
	h.handle("GET /api/inventory/software", http.StatusInternalServerError, nil)

	_, err := h.services.Inventory.Load(context.Background())
	assert.Equal(t, MsgLoadFailed, apperrors.MessageOf(err, ""))

	op := newHarness(t, domain.RoleOperator)
	_, err = op.services.Inventory.Load(context.Background())
	assert.True(t, apperrors.IsForbidden(err))
	assert.Zero(t, op.hitCount())
}

func TestDashboardLoadsStatsAndExpiring(t *testing.T) {
	h := newHarness(t, domain.RoleAdmin)
	h.handle("GET /api/dashboard/stats", http.StatusOK, map[string]any{"ticketsAbiertos": 3, "contratosProximosVencer": 2})
	h.mux.HandleFunc("GET /api/contracts/expiring", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "30", r.URL.Query().Get("days"))
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 2, "nombre": "B", "proveedor": "p", "fechaFin": "2026-04-01"},
			{"id": 1, "nombre": "A", "proveedor": "p", "fechaFin": "2026-03-15"},
		})
	})

	dash, err := h.services.Dashboard.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), dash.Stats.OpenTickets)
	require.Len(t, dash.Expiring, 2)
	assert.Equal(t, int64(1), dash.Expiring[0].ID)
	assert.Equal(t, 1, h.hit("GET /api/contracts/expiring"))
}

func TestContractsDefaultWindow(t *testing.T) {
	h := newHarness(t, domain.RoleOperator)
	h.mux.HandleFunc("GET /api/contracts/expiring", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "30", r.URL.Query().Get("days"))
		_, _ = w.Write([]byte("[]"))
	})

	items, err := h.services.Contracts.Expiring(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = h.services.Contracts.Create(context.Background(), domain.Contract{Name: "x", Vendor: "y"})
	assert.True(t, apperrors.IsForbidden(err))
}

func TestAuthServiceLogin(t *testing.T) {
	h := newHarness(t, "")
	h.handle("POST /api/auth/login", http.StatusOK, map[string]any{
		"token": "abc", "username": "tecnico", "fullName": "Ana", "role": "TECNICO",
	})

	res := h.services.Auth.Login(context.Background(), " ", "x")
	assert.False(t, res.Success)
	assert.Equal(t, MsgCredentialsRequired, res.Message)
	assert.Zero(t, h.hitCount())

	res = h.services.Auth.Login(context.Background(), "tecnico", "tec123")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Mis Tickets", h.services.Auth.Views()[0].Title)
	assert.Equal(t, "tickets", string(h.services.Auth.Home()))

	require.NoError(t, h.services.Auth.Logout(context.Background()))
	assert.Equal(t, domain.SessionAnonymous, h.services.Auth.Current().Status)
	assert.Empty(t, h.services.Auth.Views())
}

func TestAuthServiceProfile(t *testing.T) {
	h := newHarness(t, domain.RoleAdmin)
	h.handle("GET /api/auth/me", http.StatusOK, map[string]any{"id": 1, "username": "admin", "fullName": "María", "role": "ADMINISTRADOR"})

	profile, err := h.services.Auth.Profile(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "admin", profile.User.Username)
	assert.Nil(t, profile.ExpiresAt, "opaque test token has no readable expiry")
}

func TestAdminUsersAndAudit(t *testing.T) {
	t.Run("only administrators read the directory", func(t *testing.T) {
		h := newHarness(t, domain.RoleOperator)
		_, err := h.services.Admin.Users(context.Background(), "")
		assert.True(t, apperrors.IsForbidden(err))
		_, err = h.services.Admin.Audit(context.Background())
		assert.True(t, apperrors.IsForbidden(err))
		assert.Zero(t, h.hitCount())
	})

	t.Run("role filter uses the role endpoint", func(t *testing.T) {
		h := newHarness(t, domain.RoleAdmin)
		h.handle("GET /api/users/role/TECNICO", http.StatusOK, []map[string]any{{"id": 3, "username": "tecnico", "fullName": "Carlos Técnico", "role": "TECNICO"}})

		users, err := h.services.Admin.Users(context.Background(), domain.RoleTechnician)

		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "tecnico", users[0].Username)
		assert.Equal(t, 1, h.hit("GET /api/users/role/TECNICO"))
	})

	t.Run("unknown role is rejected locally", func(t *testing.T) {
		h := newHarness(t, domain.RoleAdmin)
		_, err := h.services.Admin.Users(context.Background(), domain.Role("JUEZ"))
		assert.True(t, apperrors.IsValidation(err))
		assert.Zero(t, h.hitCount())
	})

	t.Run("ticket history reads the entity trail", func(t *testing.T) {
		h := newHarness(t, domain.RoleAdmin)
		h.handle("GET /api/audit/entity/Ticket/4", http.StatusOK, []map[string]any{
			{"id": 1, "entityName": "Ticket", "entityId": 4, "action": "STATUS_CHANGE", "username": "tecnico", "newValue": "CERRADO"},
		})

		items, err := h.services.Admin.TicketHistory(context.Background(), 4)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, domain.AuditStatusChange, items[0].Action)
	})
}

func TestAdminCourtsNeedSession(t *testing.T) {
	h := newHarness(t, "")
	_, err := h.services.Admin.Courts(context.Background())
	assert.True(t, apperrors.IsUnauthorized(err))

	h = newHarness(t, domain.RoleTechnician)
	h.handle("GET /api/locations/juzgados", http.StatusOK, []map[string]any{{"id": 1, "nombre": "Juzgado Civil N° 1", "active": true}})
	courts, err := h.services.Admin.Courts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Juzgado Civil N° 1", courts[0].Name)
}
