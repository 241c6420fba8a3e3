package domain

// AuditAction enumerates audited operations.
type AuditAction string

const (
	AuditCreate       AuditAction = "CREATE"
	AuditUpdate       AuditAction = "UPDATE"
	AuditStatusChange AuditAction = "STATUS_CHANGE"
	AuditDelete       AuditAction = "DELETE"
)

// AuditEntry is an immutable audit trail record.
type AuditEntry struct {
	ID         int64       `json:"id"`
	EntityName string      `json:"entityName"`
	EntityID   int64       `json:"entityId"`
	Action     AuditAction `json:"action"`
	Username   string      `json:"username"`
	Field      string      `json:"field,omitempty"`
	OldValue   string      `json:"oldValue,omitempty"`
	NewValue   string      `json:"newValue,omitempty"`
	Timestamp  Timestamp   `json:"timestamp,omitzero"`
}
