package events

import "github.com/advwell/scheduling-backend/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select("id",
		"tenant_id",
		"title",
		"description",
		"type",
		"priority",
		"starts_at",
		"ends_at",
		"completed",
		"kanban_column",
		"client_id",
		"case_id",
		"creator_id",
		"meeting_link",
		"created_at",
		"updated_at",
	).
	From(database.EventsTable)
