package cases

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/advwell/scheduling-backend/internal/database"
	"github.com/advwell/scheduling-backend/internal/model"
)

func (*Repository) GetCaseByID(ctx context.Context, q database.Queryable, tenantID, id string) (*model.Case, error) {
	qb := baseQuery.
		Where(sq.Eq{"id": id, "tenant_id": tenantID})

	var dtos []*caseDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	if len(dtos) == 0 {
		return nil, model.ErrNoRecord
	}

	return mapToCase(dtos[0]), nil
}
