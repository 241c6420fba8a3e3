package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/sojus-client/internal/authz"
	"github.com/spec-kit/sojus-client/internal/domain"
	"github.com/spec-kit/sojus-client/internal/gateway"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

// EntityTicket is the audit entity name of tickets.
const EntityTicket = "Ticket"

// AdminService backs the administration screens: the user directory, the
// audit trail and the court catalogue.
type AdminService struct {
	sessions  sessionReader
	directory *gateway.DirectoryService
	audit     *gateway.AuditService
	logger    *zap.Logger
}

// NewAdminService builds the service.
func NewAdminService(deps Dependencies) *AdminService {
	return &AdminService{
		sessions:  deps.Sessions,
		directory: deps.Gateway.Directory,
		audit:     deps.Gateway.Audit,
		logger:    deps.Logger.Named("admin"),
	}
}

// Users lists every user, or only those holding role when it is set.
func (s *AdminService) Users(ctx context.Context, role domain.Role) ([]domain.User, error) {
	if _, err := requireAction(s.sessions, authz.ActionViewUsers); err != nil {
		return nil, err
	}
	var (
		users []domain.User
		err   error
	)
	if role == "" {
		users, err = s.directory.Users(ctx)
	} else {
		if !role.Valid() {
			return nil, apperrors.NewValidationError("Rol inválido", map[string]any{"field": "role", "value": string(role)})
		}
		users, err = s.directory.UsersByRole(ctx, role)
	}
	if err != nil {
		return nil, screenError(err, MsgLoadFailed)
	}
	return users, nil
}

// User loads one user.
func (s *AdminService) User(ctx context.Context, id int64) (*domain.User, error) {
	if _, err := requireAction(s.sessions, authz.ActionViewUsers); err != nil {
		return nil, err
	}
	user, err := s.directory.User(ctx, id)
	if err != nil {
		return nil, screenError(err, MsgLoadFailed)
	}
	return user, nil
}

// Audit loads the most recent audit entries.
func (s *AdminService) Audit(ctx context.Context) ([]domain.AuditEntry, error) {
	if _, err := requireAction(s.sessions, authz.ActionViewAudit); err != nil {
		return nil, err
	}
	items, err := s.audit.List(ctx)
	if err != nil {
		return nil, screenError(err, MsgLoadFailed)
	}
	return items, nil
}

// TicketHistory loads the audit trail of one ticket.
func (s *AdminService) TicketHistory(ctx context.Context, id int64) ([]domain.AuditEntry, error) {
	if _, err := requireAction(s.sessions, authz.ActionViewAudit); err != nil {
		return nil, err
	}
	items, err := s.audit.ForEntity(ctx, EntityTicket, id)
	if err != nil {
		return nil, screenError(err, MsgLoadFailed)
	}
	return items, nil
}

// Courts lists the courts. Any signed-in user may read the catalogue.
func (s *AdminService) Courts(ctx context.Context) ([]domain.Court, error) {
	if err := requireSignedIn(s.sessions); err != nil {
		return nil, err
	}
	items, err := s.directory.Courts(ctx)
	if err != nil {
		return nil, screenError(err, MsgLoadFailed)
	}
	return items, nil
}

// Circumscriptions lists the judicial districts.
func (s *AdminService) Circumscriptions(ctx context.Context) ([]domain.Circumscription, error) {
	if err := requireSignedIn(s.sessions); err != nil {
		return nil, err
	}
	items, err := s.directory.Circumscriptions(ctx)
	if err != nil {
		return nil, screenError(err, MsgLoadFailed)
	}
	return items, nil
}

func requireSignedIn(sessions sessionReader) error {
	if !sessions.Snapshot().Authenticated() {
		return apperrors.NewUnauthorized(MsgNotSignedIn)
	}
	return nil
}
