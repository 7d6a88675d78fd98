package cases

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/advwell/scheduling-backend/internal/database"
	"github.com/advwell/scheduling-backend/internal/model"
)

// UpdateDeadline mirrors the deadline fields only; nothing else on the case
// is touched.
func (*Repository) UpdateDeadline(ctx context.Context, q database.Queryable, tenantID, id string, deadline *time.Time, completed bool, completedAt *time.Time) error {
	qb := database.PSQL.
		Update(database.CasesTable).
		SetMap(map[string]interface{}{
			"deadline":              deadline,
			"deadline_completed":    completed,
			"deadline_completed_at": completedAt,
		}).
		Where(sq.Eq{"id": id, "tenant_id": tenantID})

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}

	return nil
}
