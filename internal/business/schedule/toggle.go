package schedule

import (
	"context"
	"fmt"

	"github.com/advwell/scheduling-backend/internal/model"
	"github.com/jackc/pgx/v4"
)

// ToggleComplete flips the completion flag. For tasks the kanban column
// follows the flag so the two never disagree. Completing an event does not
// touch its time window, so no conflict check is needed; in fact completing
// one is how a booked slot is freed.
func (s *Service) ToggleComplete(ctx context.Context, actor *model.User, id string) (*model.Event, error) {
	before, err := s.events.GetEventByID(ctx, s.db, actor.TenantID, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	assignees, err := s.events.GetAssignedUserIDs(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("get assignments: %w", err)
	}
	before.AssignedUserIDs = assignees

	after := *before
	after.Completed = !before.Completed
	if after.EventType == model.EventTypeTask {
		if after.Completed {
			after.KanbanColumn = model.KanbanColumnDone
		} else {
			after.KanbanColumn = model.KanbanColumnTodo
		}
	}

	tx, err := s.db.BeginTx(ctx, &pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.events.SetCompleted(ctx, tx, actor.TenantID, id, after.Completed, after.KanbanColumn); err != nil {
		return nil, fmt.Errorf("set completed: %w", err)
	}

	if err := s.audit.RecordEventUpdate(ctx, tx, before, &after, actor); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	s.deadlines.Propagate(ctx, &after, actor)
	s.reconcileAsync(&after)

	return &after, nil
}

// MoveTask moves a task between kanban columns; DONE completes the task and
// any other column reopens it.
func (s *Service) MoveTask(ctx context.Context, actor *model.User, id string, column model.KanbanColumn) (*model.Event, error) {
	if column == model.KanbanColumnNone || !column.Valid() {
		v := model.NewValidationError()
		v.Add("kanbanColumn", "must be a known column")
		return nil, v
	}

	before, err := s.events.GetEventByID(ctx, s.db, actor.TenantID, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	if before.EventType != model.EventTypeTask {
		v := model.NewValidationError()
		v.Add("kanbanColumn", "only tasks can be moved on the board")
		return nil, v
	}

	assignees, err := s.events.GetAssignedUserIDs(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("get assignments: %w", err)
	}
	before.AssignedUserIDs = assignees

	after := *before
	after.KanbanColumn = column
	after.Completed = column == model.KanbanColumnDone

	tx, err := s.db.BeginTx(ctx, &pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.events.SetCompleted(ctx, tx, actor.TenantID, id, after.Completed, after.KanbanColumn); err != nil {
		return nil, fmt.Errorf("set completed: %w", err)
	}

	if err := s.audit.RecordEventUpdate(ctx, tx, before, &after, actor); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	s.reconcileAsync(&after)

	return &after, nil
}
