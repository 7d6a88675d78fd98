package events

import (
	"context"
	"fmt"

	"github.com/advwell/scheduling-backend/internal/database"
	"github.com/advwell/scheduling-backend/internal/model"
	"github.com/google/uuid"
)

func (*Repository) CreateEvent(ctx context.Context, q database.Queryable, event *model.Event) (string, error) {
	id := uuid.NewString()

	qb := database.PSQL.
		Insert(database.EventsTable).
		Columns(
			"id",
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
		).
		Values(
			id,
			event.TenantID,
			event.Title,
			event.Description,
			string(event.EventType),
			string(event.Priority),
			event.StartsAt,
			event.EndsAt,
			event.Completed,
			kanbanColumn(event.KanbanColumn),
			event.ClientID,
			event.CaseID,
			event.CreatorID,
			nullable(event.MeetingLink),
		)

	if _, err := q.Exec(ctx, qb); err != nil {
		return "", fmt.Errorf("SQL request: %w", err)
	}

	return id, nil
}
