package schedule

import (
	"context"
	"fmt"

	"github.com/advwell/scheduling-backend/internal/model"
)

// normalizeEvent applies the invariants that are derived rather than
// user-chosen: only tasks live on the kanban board, and the board column and
// the completed flag always agree.
func normalizeEvent(event *model.Event) {
	if event.Priority == "" {
		event.Priority = model.PriorityMedium
	}

	if event.EventType != model.EventTypeTask {
		event.KanbanColumn = model.KanbanColumnNone
		return
	}

	if event.KanbanColumn == model.KanbanColumnNone {
		if event.Completed {
			event.KanbanColumn = model.KanbanColumnDone
		} else {
			event.KanbanColumn = model.KanbanColumnTodo
		}
		return
	}

	event.Completed = event.KanbanColumn == model.KanbanColumnDone
}

func validateEvent(event *model.Event) error {
	v := model.NewValidationError()

	if event.Title == "" {
		v.Add("title", "must be provided")
	}

	if event.StartsAt.IsZero() {
		v.Add("startsAt", "must be provided")
	}

	if !event.EventType.Valid() {
		v.Add("type", "must be a known event type")
	}

	if !event.Priority.Valid() {
		v.Add("priority", "must be a known priority")
	}

	if !event.KanbanColumn.Valid() {
		v.Add("kanbanColumn", "must be a known column")
	}

	if event.EndsAt != nil && !event.EndsAt.After(event.StartsAt) {
		v.Add("endsAt", "must be after start")
	}

	if event.CaseID != nil && *event.CaseID == "" {
		v.Add("caseId", "must not be empty when provided")
	}

	if event.ClientID != nil && *event.ClientID == "" {
		v.Add("clientId", "must not be empty when provided")
	}

	if !v.Empty() {
		return v
	}

	return nil
}

// validateAssignees requires every requested assignee to be an active user
// of the event's tenant. A short count means at least one id is unknown,
// inactive or from another tenant; which one is deliberately not disclosed.
func (s *Service) validateAssignees(ctx context.Context, tenantID string, userIDs []string) error {
	unique := make([]string, 0, len(userIDs))
	seen := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	if len(unique) == 0 {
		return nil
	}

	count, err := s.users.CountActiveInTenant(ctx, s.db, tenantID, unique)
	if err != nil {
		return fmt.Errorf("count assignees: %w", err)
	}

	if count != len(unique) {
		v := model.NewValidationError()
		v.Add("assignedUserIds", "must all be active users of the tenant")
		return v
	}

	return nil
}
