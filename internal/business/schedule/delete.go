package schedule

import (
	"context"
	"fmt"

	"github.com/advwell/scheduling-backend/internal/model"
	"github.com/jackc/pgx/v4"
)

// DeleteEvent removes the event and audits the deletion atomically. Sync
// records are read out first: the delete cascades over them, and the
// background cleanup still needs the external ids to remove the remote
// copies.
func (s *Service) DeleteEvent(ctx context.Context, actor *model.User, id string) error {
	event, err := s.events.GetEventByID(ctx, s.db, actor.TenantID, id)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}

	assignees, err := s.events.GetAssignedUserIDs(ctx, s.db, id)
	if err != nil {
		return fmt.Errorf("get assignments: %w", err)
	}
	event.AssignedUserIDs = assignees

	records, err := s.syncRecords.GetByEvent(ctx, s.db, id)
	if err != nil {
		return fmt.Errorf("get sync records: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, &pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.events.DeleteEvent(ctx, tx, actor.TenantID, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	if err := s.audit.RecordEventDelete(ctx, tx, event, actor); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	s.deadlines.Clear(ctx, event, actor)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.syncTimeout)
		defer cancel()

		s.reconciler.CleanupDeleted(ctx, event, records)
	}()

	return nil
}
