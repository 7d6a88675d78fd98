package user

import "github.com/advwell/scheduling-backend/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select(
		"id",
		"tenant_id",
		"full_name",
		"email",
		"role",
		"active",
	).
	From(database.UsersTable)
