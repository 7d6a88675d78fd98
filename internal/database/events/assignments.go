package events

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/advwell/scheduling-backend/internal/database"
	"github.com/advwell/scheduling-backend/internal/model"
)

// ReplaceAssignments swaps the event's assignment set wholesale. Run it
// inside the same transaction as the event write so partial sets are never
// observable.
func (*Repository) ReplaceAssignments(ctx context.Context, q database.Queryable, eventID string, userIDs []string) error {
	del := database.PSQL.
		Delete(database.EventAssignmentsTable).
		Where(sq.Eq{"event_id": eventID})

	if _, err := q.Exec(ctx, del); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	if len(userIDs) == 0 {
		return nil
	}

	ins := database.PSQL.
		Insert(database.EventAssignmentsTable).
		Columns("event_id", "user_id")
	for _, id := range userIDs {
		ins = ins.Values(eventID, id)
	}

	if _, err := q.Exec(ctx, ins); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) GetAssignedUserIDs(ctx context.Context, q database.Queryable, eventID string) ([]string, error) {
	qb := database.PSQL.
		Select("user_id").
		From(database.EventAssignmentsTable).
		Where(sq.Eq{"event_id": eventID})

	var ids []string
	if err := q.Select(ctx, &ids, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return ids, nil
}

type assignmentDTO struct {
	EventID  string
	UserID   string
	FullName string
}

func (*Repository) GetAssignedUsersByEventIDs(ctx context.Context, q database.Queryable, eventIDs []string) (map[string][]model.AssignedUser, error) {
	if len(eventIDs) == 0 {
		return map[string][]model.AssignedUser{}, nil
	}

	qb := database.PSQL.
		Select("a.event_id", "u.id as user_id", "u.full_name").
		From(database.EventAssignmentsTable + " a").
		Join(database.UsersTable + " u on u.id = a.user_id").
		Where(sq.Eq{"a.event_id": eventIDs})

	var dtos []*assignmentDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make(map[string][]model.AssignedUser, len(eventIDs))
	for _, d := range dtos {
		res[d.EventID] = append(res[d.EventID], model.AssignedUser{
			ID:       d.UserID,
			FullName: d.FullName,
		})
	}

	return res, nil
}
