package audit

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/advwell/scheduling-backend/internal/database"
	"github.com/advwell/scheduling-backend/internal/model"
)

const entityHistoryLimit = 100

func (*Repository) GetByEntity(ctx context.Context, q database.Queryable, tenantID string, entityType model.AuditEntityType, entityID string) ([]*model.AuditEntry, error) {
	qb := baseQuery.
		Where(sq.Eq{
			"tenant_id":   tenantID,
			"entity_type": string(entityType),
			"entity_id":   entityID,
		}).
		OrderBy("created_at desc").
		Limit(entityHistoryLimit)

	var dtos []*entryDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.AuditEntry, len(dtos))
	for i, d := range dtos {
		res[i] = mapToEntry(d)
	}

	return res, nil
}
