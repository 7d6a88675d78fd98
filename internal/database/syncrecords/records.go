package syncrecords

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/advwell/scheduling-backend/internal/database"
	"github.com/advwell/scheduling-backend/internal/model"
)

type recordDTO struct {
	EventID    string
	UserID     string
	ExternalID string
	CreatedAt  time.Time
}

func (*Repository) GetByEvent(ctx context.Context, q database.Queryable, eventID string) ([]*model.SyncRecord, error) {
	qb := baseQuery.
		Where(sq.Eq{"event_id": eventID})

	var dtos []*recordDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.SyncRecord, len(dtos))
	for i, d := range dtos {
		res[i] = &model.SyncRecord{
			EventID:    d.EventID,
			UserID:     d.UserID,
			ExternalID: d.ExternalID,
			CreatedAt:  d.CreatedAt,
		}
	}

	return res, nil
}

// CreateRecord is written only after the provider call succeeded, so a row
// always points at a live remote event. The (event_id, user_id) uniqueness
// comes from the table's primary key.
func (*Repository) CreateRecord(ctx context.Context, q database.Queryable, record *model.SyncRecord) error {
	qb := database.PSQL.
		Insert(database.SyncRecordsTable).
		Columns("event_id", "user_id", "external_id").
		Values(record.EventID, record.UserID, record.ExternalID).
		Suffix("on conflict (event_id, user_id) do update set external_id = excluded.external_id")

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) DeleteRecord(ctx context.Context, q database.Queryable, eventID, userID string) error {
	qb := database.PSQL.
		Delete(database.SyncRecordsTable).
		Where(sq.Eq{"event_id": eventID, "user_id": userID})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
