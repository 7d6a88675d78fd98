package audit

import (
	"time"

	"github.com/advwell/scheduling-backend/internal/model"
)

type entryDTO struct {
	ID            string
	TenantID      string
	EntityType    string
	EntityID      string
	EntityName    string
	ActorID       string
	ActorName     string
	Action        string
	Description   string
	OldValues     map[string]interface{}
	NewValues     map[string]interface{}
	ChangedFields []string
	CreatedAt     time.Time
}

func mapToEntry(dto *entryDTO) *model.AuditEntry {
	return &model.AuditEntry{
		ID:            dto.ID,
		TenantID:      dto.TenantID,
		EntityType:    model.AuditEntityType(dto.EntityType),
		EntityID:      dto.EntityID,
		EntityName:    dto.EntityName,
		ActorID:       dto.ActorID,
		ActorName:     dto.ActorName,
		Action:        model.AuditAction(dto.Action),
		Description:   dto.Description,
		OldValues:     dto.OldValues,
		NewValues:     dto.NewValues,
		ChangedFields: dto.ChangedFields,
		CreatedAt:     dto.CreatedAt,
	}
}
