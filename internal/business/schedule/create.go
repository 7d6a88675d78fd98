package schedule

import (
	"context"
	"fmt"

	"github.com/advwell/scheduling-backend/internal/model"
	"github.com/jackc/pgx/v4"
)

// CreateEvent validates the request, rejects assignee conflicts, then writes
// the event, its assignments and the audit entry in one transaction. The
// conflict check runs inside the same serializable transaction as the write,
// otherwise two concurrent creates could both pass it.
func (s *Service) CreateEvent(ctx context.Context, actor *model.User, info *model.EventCreate) (*model.Event, error) {
	event := &model.Event{EventCreate: *info}
	event.TenantID = actor.TenantID
	event.CreatorID = actor.ID

	normalizeEvent(event)
	if err := validateEvent(event); err != nil {
		return nil, err
	}
	if err := s.validateAssignees(ctx, event.TenantID, event.AssignedUserIDs); err != nil {
		return nil, err
	}

	event.MeetingLink = meetingLink(event)

	tx, err := s.db.BeginTx(ctx, &pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.checkConflicts(ctx, tx, event.TenantID, event.AssignedUserIDs, event.StartsAt, event.EndsAt, ""); err != nil {
		return nil, err
	}

	id, err := s.events.CreateEvent(ctx, tx, event)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	event.ID = id

	if err := s.events.ReplaceAssignments(ctx, tx, event.ID, event.AssignedUserIDs); err != nil {
		return nil, fmt.Errorf("assign users: %w", err)
	}

	if err := s.audit.RecordEventCreate(ctx, tx, event, actor); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	s.deadlines.Propagate(ctx, event, actor)
	s.notifyAssigned(ctx, event, event.AssignedUserIDs, actor)
	s.reconcileAsync(event)

	return event, nil
}
