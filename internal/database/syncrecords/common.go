package syncrecords

import "github.com/advwell/scheduling-backend/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select(
		"event_id",
		"user_id",
		"external_id",
		"created_at",
	).
	From(database.SyncRecordsTable)
