package domain

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusRequested  TicketStatus = "SOLICITADO"
	TicketStatusAssigned   TicketStatus = "ASIGNADO"
	TicketStatusInProgress TicketStatus = "EN_CURSO"
	TicketStatusClosed     TicketStatus = "CERRADO"
)

// TicketStatuses lists statuses in lifecycle order.
var TicketStatuses = []TicketStatus{
	TicketStatusRequested,
	TicketStatusAssigned,
	TicketStatusInProgress,
	TicketStatusClosed,
}

// Valid reports whether s is a known status.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusRequested, TicketStatusAssigned, TicketStatusInProgress, TicketStatusClosed:
		return true
	}
	return false
}

// Label returns the human readable status name.
func (s TicketStatus) Label() string {
	switch s {
	case TicketStatusRequested:
		return "Solicitado"
	case TicketStatusAssigned:
		return "Asignado"
	case TicketStatusInProgress:
		return "En Curso"
	case TicketStatusClosed:
		return "Cerrado"
	}
	return string(s)
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "BAJA"
	TicketPriorityMedium TicketPriority = "MEDIA"
	TicketPriorityHigh   TicketPriority = "ALTA"
)

// Valid reports whether p is a known priority.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return true
	}
	return false
}

// TicketChannel identifies where a ticket was opened.
type TicketChannel string

const (
	ChannelMobileApp TicketChannel = "APP_MOVIL"
	ChannelWeb       TicketChannel = "WEB"
	ChannelPhone     TicketChannel = "TELEFONO"
	ChannelEmail     TicketChannel = "EMAIL"
	ChannelPortal    TicketChannel = "PORTAL"
)

// Ticket is a support request as exchanged with the backend.
type Ticket struct {
	ID          int64          `json:"id"`
	Subject     string         `json:"asunto"`
	Description string         `json:"descripcion,omitempty"`
	Status      TicketStatus   `json:"status"`
	Priority    TicketPriority `json:"prioridad"`
	Channel     TicketChannel  `json:"canal,omitempty"`
	Court       string         `json:"juzgadoNombre,omitempty"`
	Requester   string         `json:"solicitanteNombre,omitempty"`
	Assignee    string         `json:"tecnicoNombre,omitempty"`
	Hardware    string         `json:"hardwareInventario,omitempty"`
	Log         string         `json:"bitacora,omitempty"`
	CreatedAt   Timestamp      `json:"createdAt,omitzero"`
	UpdatedAt   Timestamp      `json:"updatedAt,omitzero"`
	ClosedAt    Timestamp      `json:"closedAt,omitzero"`
}

// Closed reports whether the ticket reached its terminal state.
func (t *Ticket) Closed() bool {
	return t.Status == TicketStatusClosed
}

// TicketSubmission is the payload for opening a ticket.
type TicketSubmission struct {
	Subject     string         `json:"asunto"`
	Description string         `json:"descripcion"`
	Priority    TicketPriority `json:"prioridad"`
	Channel     TicketChannel  `json:"canal"`
}

// StatusChange is the payload of a ticket status mutation.
type StatusChange struct {
	Status       TicketStatus `json:"status"`
	Comment      string       `json:"comentario"`
	TechnicianID *int64       `json:"tecnicoId,omitempty"`
}
