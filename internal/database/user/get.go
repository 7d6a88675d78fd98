package user

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/advwell/scheduling-backend/internal/database"
	"github.com/advwell/scheduling-backend/internal/model"
)

func (*Repository) GetUserByID(ctx context.Context, q database.Queryable, id string) (*model.User, error) {
	users, err := getUsers(ctx, q, sq.Eq{"id": id})
	if err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return nil, model.ErrNoRecord
	}

	return users[0], nil
}

func (*Repository) GetUsersByIDs(ctx context.Context, q database.Queryable, ids []string) ([]*model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return getUsers(ctx, q, sq.Eq{"id": ids})
}

// CountActiveInTenant backs assignee validation: every requested assignee
// must be an active user of the tenant, and a short count is a validation
// error, not a silent filter.
func (*Repository) CountActiveInTenant(ctx context.Context, q database.Queryable, tenantID string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	qb := database.PSQL.
		Select("count(*)").
		From(database.UsersTable).
		Where(sq.Eq{"id": ids, "tenant_id": tenantID, "active": true})

	var count int
	if err := q.Get(ctx, &count, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return count, nil
}

func getUsers(ctx context.Context, q database.Queryable, predicate interface{}) ([]*model.User, error) {
	qb := baseQuery.
		Where(predicate)

	var dtos []*userDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.User, len(dtos))
	for i, d := range dtos {
		res[i] = mapToUser(d)
	}

	return res, nil
}
