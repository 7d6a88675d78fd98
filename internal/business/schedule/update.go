package schedule

import (
	"context"
	"fmt"

	"github.com/advwell/scheduling-backend/internal/model"
	"github.com/jackc/pgx/v4"
)

// UpdateEvent replaces the event wholesale, assignment set included. The
// conflict check is skipped when neither the time window nor the assignee
// set changed: the stored state already passed it.
func (s *Service) UpdateEvent(ctx context.Context, actor *model.User, id string, info *model.EventUpdate) (*model.Event, error) {
	before, err := s.events.GetEventByID(ctx, s.db, actor.TenantID, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	beforeAssignees, err := s.events.GetAssignedUserIDs(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("get assignments: %w", err)
	}
	before.AssignedUserIDs = beforeAssignees

	after := &model.Event{
		ID:        before.ID,
		Completed: info.Completed,
		CreatedAt: before.CreatedAt,
		EventCreate: model.EventCreate{
			TenantID:        before.TenantID,
			Title:           info.Title,
			Description:     info.Description,
			EventType:       info.EventType,
			Priority:        info.Priority,
			StartsAt:        info.StartsAt,
			EndsAt:          info.EndsAt,
			KanbanColumn:    info.KanbanColumn,
			ClientID:        info.ClientID,
			CaseID:          info.CaseID,
			CreatorID:       before.CreatorID,
			AssignedUserIDs: info.AssignedUserIDs,
		},
	}

	normalizeEvent(after)
	if err := validateEvent(after); err != nil {
		return nil, err
	}
	if err := s.validateAssignees(ctx, after.TenantID, after.AssignedUserIDs); err != nil {
		return nil, err
	}

	after.MeetingLink = meetingLink(after)

	tx, err := s.db.BeginTx(ctx, &pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if windowChanged(before, after) || !sameUserSet(before.AssignedUserIDs, after.AssignedUserIDs) {
		if err := s.checkConflicts(ctx, tx, after.TenantID, after.AssignedUserIDs, after.StartsAt, after.EndsAt, after.ID); err != nil {
			return nil, err
		}
	}

	if err := s.events.UpdateEvent(ctx, tx, after); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	if err := s.events.ReplaceAssignments(ctx, tx, after.ID, after.AssignedUserIDs); err != nil {
		return nil, fmt.Errorf("assign users: %w", err)
	}

	if err := s.audit.RecordEventUpdate(ctx, tx, before, after, actor); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	s.deadlines.Propagate(ctx, after, actor)
	s.notifyAssigned(ctx, after, addedUsers(before.AssignedUserIDs, after.AssignedUserIDs), actor)
	s.reconcileAsync(after)

	return after, nil
}

func windowChanged(before, after *model.Event) bool {
	return !before.StartsAt.Equal(after.StartsAt) || !before.EffectiveEnd().Equal(after.EffectiveEnd())
}

func sameUserSet(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}

	seen := make(map[string]struct{}, len(b))
	for _, id := range b {
		if _, ok := set[id]; !ok {
			return false
		}
		seen[id] = struct{}{}
	}

	return len(seen) == len(set)
}

func addedUsers(before, after []string) []string {
	old := make(map[string]struct{}, len(before))
	for _, id := range before {
		old[id] = struct{}{}
	}

	var added []string
	seen := make(map[string]struct{}, len(after))
	for _, id := range after {
		if _, ok := old[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		added = append(added, id)
	}

	return added
}
