package events

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/advwell/scheduling-backend/internal/database"
	"github.com/advwell/scheduling-backend/internal/model"
)

func (*Repository) UpdateEvent(ctx context.Context, q database.Queryable, event *model.Event) error {
	qb := database.PSQL.
		Update(database.EventsTable).
		SetMap(map[string]interface{}{
			"title":         event.Title,
			"description":   event.Description,
			"type":          string(event.EventType),
			"priority":      string(event.Priority),
			"starts_at":     event.StartsAt,
			"ends_at":       event.EndsAt,
			"completed":     event.Completed,
			"kanban_column": kanbanColumn(event.KanbanColumn),
			"client_id":     event.ClientID,
			"case_id":       event.CaseID,
			"meeting_link":  nullable(event.MeetingLink),
			"updated_at":    sq.Expr("now()"),
		}).
		Where(sq.Eq{"id": event.ID, "tenant_id": event.TenantID})

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}

	return nil
}

func (*Repository) SetCompleted(ctx context.Context, q database.Queryable, tenantID, id string, completed bool, kanban model.KanbanColumn) error {
	qb := database.PSQL.
		Update(database.EventsTable).
		SetMap(map[string]interface{}{
			"completed":     completed,
			"kanban_column": kanbanColumn(kanban),
			"updated_at":    sq.Expr("now()"),
		}).
		Where(sq.Eq{"id": id, "tenant_id": tenantID})

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}

	return nil
}
