package backend

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/sojus-client/internal/events"
)

// EventLogger writes ticket events to the server log.
type EventLogger struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewEventLogger builds a logger for dispatcher's ticket events.
func NewEventLogger(dispatcher events.Dispatcher, logger *zap.Logger) *EventLogger {
	return &EventLogger{dispatcher: dispatcher, logger: logger.Named("events")}
}

// RegisterHandlers subscribes to ticket events.
func (l *EventLogger) RegisterHandlers() {
	l.dispatcher.Subscribe(events.EventTicketCreated, l.log)
	l.dispatcher.Subscribe(events.EventTicketStatusChanged, l.log)
}

func (l *EventLogger) log(_ context.Context, event events.Event) error {
	l.logger.Info("ticket event",
		zap.String("type", string(event.Type)),
		zap.Uint64("seq", event.Seq),
		zap.Any("payload", event.Payload),
	)
	return nil
}
