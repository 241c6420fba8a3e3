// Package service holds the screen services: each one loads or mutates what a
// single screen shows, applying the role policy before any request is sent.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/sojus-client/internal/authz"
	"github.com/spec-kit/sojus-client/internal/domain"
	"github.com/spec-kit/sojus-client/internal/events"
	"github.com/spec-kit/sojus-client/internal/gateway"
	"github.com/spec-kit/sojus-client/internal/navigation"
	"github.com/spec-kit/sojus-client/internal/session"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

// User-visible messages.
const (
	MsgCredentialsRequired = "Ingresá usuario y contraseña"
	MsgNotSignedIn         = "Inicie sesión para continuar"
	MsgForbidden           = "No tiene permisos para esta acción"
	MsgTicketCreated       = "Ticket creado correctamente"
	MsgCreateFailed        = "No se pudo crear el ticket"
	MsgStatusFailed        = "No se pudo actualizar el estado"
	MsgLoadTicketFailed    = "No se pudo cargar el ticket"
	MsgLoadFailed          = "No se pudieron cargar los datos"
)

// Dependencies bundles the collaborators shared by the screen services.
type Dependencies struct {
	Sessions   *session.Manager
	Gateway    *gateway.Client
	Navigator  *navigation.Navigator
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Notify     func(Notice)
}

// Services is the set of screen services built over one session.
type Services struct {
	Auth          *AuthService
	Tickets       *TicketService
	Inventory     *InventoryService
	Contracts     *ContractService
	Dashboard     *DashboardService
	Admin         *AdminService
	Notifications *NotificationService
}

// New builds every screen service.
func New(deps Dependencies) *Services {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Navigator == nil {
		deps.Navigator = navigation.New()
	}
	if deps.Dispatcher == nil {
		deps.Dispatcher = events.NewInMemoryDispatcher()
	}
	return &Services{
		Auth:          NewAuthService(deps),
		Tickets:       NewTicketService(deps),
		Inventory:     NewInventoryService(deps),
		Contracts:     NewContractService(deps),
		Dashboard:     NewDashboardService(deps),
		Admin:         NewAdminService(deps),
		Notifications: NewNotificationService(deps.Dispatcher, deps.Logger, deps.Notify),
	}
}

// sessionReader is the read side of the session manager.
type sessionReader interface {
	Snapshot() domain.Session
}

// requireView checks that the current session may open v.
func requireView(sessions sessionReader, v authz.View) (domain.Session, error) {
	s := sessions.Snapshot()
	if !s.Authenticated() {
		return s, apperrors.NewUnauthorized(MsgNotSignedIn)
	}
	if !authz.CanView(s.Role(), v) {
		return s, apperrors.NewForbidden(MsgForbidden)
	}
	return s, nil
}

// requireAction checks that the current session may perform action.
func requireAction(sessions sessionReader, action authz.Action) (domain.Session, error) {
	s := sessions.Snapshot()
	if !s.Authenticated() {
		return s, apperrors.NewUnauthorized(MsgNotSignedIn)
	}
	if !authz.Allows(s.Role(), action) {
		return s, apperrors.NewForbidden(MsgForbidden)
	}
	return s, nil
}

// screenError keeps the code of err and replaces its message with what the
// screen shows. Validation messages are already user-facing; a rejected
// credential reads as an expired session.
func screenError(err error, fallback string) error {
	if err == nil {
		return nil
	}
	de := apperrors.ToDomainError(err)
	msg := fallback
	switch {
	case apperrors.IsValidation(err):
		msg = de.Message
	case apperrors.IsForbidden(err):
		msg = MsgForbidden
	case apperrors.IsUnauthorized(err):
		msg = apperrors.MsgSessionExpired
		if de.Message == MsgNotSignedIn {
			msg = MsgNotSignedIn
		}
	}
	return &apperrors.DomainError{
		Code:       de.Code,
		Message:    msg,
		HTTPStatus: de.HTTPStatus,
		Details:    de.Details,
		Err:        err,
	}
}

func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(context.WithoutCancel(ctx), event); err != nil {
		logger.Warn("event handler failed", zap.String("event", string(event.Type)), zap.Error(err))
	}
}
