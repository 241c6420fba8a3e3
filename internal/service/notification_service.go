package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/sojus-client/internal/events"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

// NoticeLevel classifies a notice.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
)

// Notice is a user-visible message raised by an event.
type Notice struct {
	Level   NoticeLevel
	Title   string
	Message string
}

// NotificationService turns session and ticket events into notices.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	sink       func(Notice)

	mu      sync.Mutex
	pending []Notice
}

// NewNotificationService creates the service. Notices go to sink when set and
// are otherwise kept until Drain.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, sink func(Notice)) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger.Named("notifications"),
		sink:       sink,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventSessionStatusChanged, n.handleSessionStatusChanged)
	n.dispatcher.Subscribe(events.EventSessionInvalidated, n.handleSessionInvalidated)
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
}

// Drain returns and forgets the notices not delivered to a sink.
func (n *NotificationService) Drain() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.pending
	n.pending = nil
	return out
}

func (n *NotificationService) handleSessionStatusChanged(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.SessionStatusChangedPayload)
	if !ok {
		return nil
	}
	n.logger.Debug("SessionStatusChanged",
		zap.Uint64("seq", event.Seq),
		zap.String("from", string(payload.From)),
		zap.String("to", string(payload.To)),
		zap.String("username", payload.Username))
	return nil
}

func (n *NotificationService) handleSessionInvalidated(_ context.Context, event events.Event) error {
	n.logger.Info("SessionInvalidated", zap.Any("payload", event.Payload))
	n.emit(Notice{Level: NoticeWarning, Title: "Sesión expirada", Message: apperrors.MsgSessionExpired})
	return nil
}

func (n *NotificationService) handleTicketCreated(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("TicketCreated", zap.Int64("ticket_id", payload.TicketID))
	n.emit(Notice{Level: NoticeInfo, Title: "Éxito", Message: MsgTicketCreated})
	return nil
}

func (n *NotificationService) handleTicketStatusChanged(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("TicketStatusChanged",
		zap.Int64("ticket_id", payload.TicketID),
		zap.String("old_status", string(payload.OldStatus)),
		zap.String("new_status", string(payload.NewStatus)))
	n.emit(Notice{Level: NoticeInfo, Title: "Éxito", Message: fmt.Sprintf("Estado actualizado a %s", payload.NewStatus)})
	return nil
}

func (n *NotificationService) emit(notice Notice) {
	if n.sink != nil {
		n.sink(notice)
		return
	}
	n.mu.Lock()
	n.pending = append(n.pending, notice)
	n.mu.Unlock()
}
