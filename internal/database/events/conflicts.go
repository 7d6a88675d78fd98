package events

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/advwell/scheduling-backend/internal/database"
	"github.com/advwell/scheduling-backend/internal/model"
)

// FindOverlapping returns non-completed events assigned to any of userIDs
// whose effective interval overlaps [start, end). The SQL predicate below is
// model.Overlaps applied to the stored row, with the coalesce standing in
// for EffectiveEnd; intervals are half-open, so touching endpoints do not
// overlap. excludeID keeps an event from conflicting with itself during
// edits.
//
// This is a read, not a reservation: two concurrent callers can both see an
// empty result before either writes. Callers wanting the hard guarantee
// must run it inside a serializable transaction together with the write.
func (r *Repository) FindOverlapping(ctx context.Context, q database.Queryable, tenantID string, userIDs []string, start, end time.Time, excludeID string) ([]*model.ConflictingEvent, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	qb := database.PSQL.
		Select("distinct e.id", "e.title", "e.starts_at", "e.ends_at").
		From(database.EventsTable + " e").
		Join(database.EventAssignmentsTable + " a on a.event_id = e.id").
		Where(sq.Eq{"e.tenant_id": tenantID, "e.completed": false}).
		Where(sq.Eq{"a.user_id": userIDs}).
		Where(sq.Lt{"e.starts_at": end}).
		Where(sq.Expr("coalesce(e.ends_at, e.starts_at + interval '1 hour') > ?", start))

	if excludeID != "" {
		qb = qb.Where(sq.NotEq{"e.id": excludeID})
	}

	type conflictDTO struct {
		ID       string
		Title    string
		StartsAt time.Time
		EndsAt   *time.Time
	}

	var dtos []*conflictDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	if len(dtos) == 0 {
		return nil, nil
	}

	ids := make([]string, len(dtos))
	for i, d := range dtos {
		ids[i] = d.ID
	}

	assigned, err := r.GetAssignedUsersByEventIDs(ctx, q, ids)
	if err != nil {
		return nil, fmt.Errorf("get assigned users: %w", err)
	}

	res := make([]*model.ConflictingEvent, len(dtos))
	for i, d := range dtos {
		res[i] = &model.ConflictingEvent{
			ID:            d.ID,
			Title:         d.Title,
			StartsAt:      d.StartsAt,
			EndsAt:        d.EndsAt,
			AssignedUsers: assigned[d.ID],
		}
	}

	return res, nil
}
