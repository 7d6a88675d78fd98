package audit

import "github.com/advwell/scheduling-backend/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select(
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
		"created_at",
	).
	From(database.AuditEntriesTable)
