package model

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

type AuditEntityType string

const (
	AuditEntityEvent AuditEntityType = "EVENT"
	AuditEntityCase  AuditEntityType = "CASE"
)

// AuditEntry is immutable once written.
type AuditEntry struct {
	ID            string
	TenantID      string
	EntityType    AuditEntityType
	EntityID      string
	EntityName    string
	ActorID       string
	ActorName     string
	Action        AuditAction
	Description   string
	OldValues     map[string]interface{}
	NewValues     map[string]interface{}
	ChangedFields []string
	CreatedAt     time.Time
}
