package cases

import "github.com/advwell/scheduling-backend/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select(
		"id",
		"tenant_id",
		"case_number",
		"subject",
		"deadline",
		"deadline_completed",
		"deadline_completed_at",
	).
	From(database.CasesTable)
