package worker

// HandlerRegistrar subscribes notification handlers to the event dispatcher.
type HandlerRegistrar interface {
	RegisterHandlers()
}

// StartNotificationWorker registers notification handlers.
func StartNotificationWorker(registrar HandlerRegistrar) {
	if registrar == nil {
		return
	}
	registrar.RegisterHandlers()
}
