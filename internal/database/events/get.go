package events

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/advwell/scheduling-backend/internal/database"
	"github.com/advwell/scheduling-backend/internal/model"
)

func (*Repository) GetEventByID(ctx context.Context, q database.Queryable, tenantID, id string) (*model.Event, error) {
	qb := baseQuery.
		Where(sq.Eq{"id": id, "tenant_id": tenantID})

	var dtos []*eventDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	if len(dtos) == 0 {
		return nil, model.ErrNoRecord
	}

	return mapToEvent(dtos[0]), nil
}

func (*Repository) GetEvents(ctx context.Context, q database.Queryable, filter model.EventsFilter) ([]*model.Event, error) {
	qb := baseQuery.
		Where(sq.Eq{"tenant_id": filter.TenantID}).
		OrderBy("starts_at asc")

	if filter.EventType != "" {
		qb = qb.Where(sq.Eq{"type": string(filter.EventType)})
	}

	if filter.Completed != nil {
		qb = qb.Where(sq.Eq{"completed": *filter.Completed})
	}

	if filter.ClientID != "" {
		qb = qb.Where(sq.Eq{"client_id": filter.ClientID})
	}

	if filter.CaseID != "" {
		qb = qb.Where(sq.Eq{"case_id": filter.CaseID})
	}

	if !filter.From.IsZero() {
		qb = qb.Where(sq.GtOrEq{"starts_at": filter.From})
	}

	if !filter.To.IsZero() {
		qb = qb.Where(sq.LtOrEq{"starts_at": filter.To})
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		qb = qb.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"description": pattern},
		})
	}

	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		qb = qb.Offset(uint64(filter.Offset))
	}

	var dtos []*eventDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Event, len(dtos))
	for i, d := range dtos {
		res[i] = mapToEvent(d)
	}

	return res, nil
}

func (*Repository) GetUpcomingEvents(ctx context.Context, q database.Queryable, tenantID string, now time.Time, limit int) ([]*model.Event, error) {
	qb := baseQuery.
		Where(sq.Eq{"tenant_id": tenantID, "completed": false}).
		Where(sq.GtOrEq{"starts_at": now}).
		OrderBy("starts_at asc").
		Limit(uint64(limit))

	var dtos []*eventDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Event, len(dtos))
	for i, d := range dtos {
		res[i] = mapToEvent(d)
	}

	return res, nil
}

// GetTasksDueToday compares dates in SQL so the day boundary follows the
// database timezone, not the application's.
func (*Repository) GetTasksDueToday(ctx context.Context, q database.Queryable, tenantID string) ([]*model.Event, error) {
	qb := baseQuery.
		Where(sq.Eq{"tenant_id": tenantID, "type": string(model.EventTypeTask), "completed": false}).
		Where(sq.Expr("date(starts_at) = current_date")).
		OrderBy("starts_at asc")

	var dtos []*eventDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Event, len(dtos))
	for i, d := range dtos {
		res[i] = mapToEvent(d)
	}

	return res, nil
}

// GetEventsStartingBetween returns non-completed events whose start falls in
// [from, to); used by the reminder worker.
func (*Repository) GetEventsStartingBetween(ctx context.Context, q database.Queryable, from, to time.Time) ([]*model.Event, error) {
	qb := baseQuery.
		Where(sq.Eq{"completed": false}).
		Where(sq.GtOrEq{"starts_at": from}).
		Where(sq.Lt{"starts_at": to}).
		OrderBy("starts_at asc")

	var dtos []*eventDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Event, len(dtos))
	for i, d := range dtos {
		res[i] = mapToEvent(d)
	}

	return res, nil
}
