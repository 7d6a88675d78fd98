package audit

import (
	"context"
	"fmt"

	"github.com/advwell/scheduling-backend/internal/database"
	"github.com/advwell/scheduling-backend/internal/model"
	"github.com/google/uuid"
)

// CreateEntry writes one immutable audit row. There is no update or delete
// counterpart on purpose.
func (*Repository) CreateEntry(ctx context.Context, q database.Queryable, entry *model.AuditEntry) (string, error) {
	id := uuid.NewString()

	qb := database.PSQL.
		Insert(database.AuditEntriesTable).
		Columns(
			"id",
			"tenant_id",
			"entity_type",
			"entity_id",
			"entity_name",
			"actor_id",
			"actor_name",
			"action",
			"description",
			"old_values",
			"new_values",
			"changed_fields",
		).
		Values(
			id,
			entry.TenantID,
			string(entry.EntityType),
			entry.EntityID,
			entry.EntityName,
			entry.ActorID,
			entry.ActorName,
			string(entry.Action),
			entry.Description,
			entry.OldValues,
			entry.NewValues,
			entry.ChangedFields,
		)

	if _, err := q.Exec(ctx, qb); err != nil {
		return "", fmt.Errorf("SQL request: %w", err)
	}

	return id, nil
}
