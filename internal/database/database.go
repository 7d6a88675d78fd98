package database

import sq "github.com/Masterminds/squirrel"

// PSQL is the shared builder with postgres placeholders.
var PSQL = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	EventsTable           = "events"
	EventAssignmentsTable = "event_assignments"
	SyncRecordsTable      = "event_sync_records"
	AuditEntriesTable     = "audit_entries"
	UsersTable            = "users"
	CasesTable            = "cases"
	CalendarAccountsTable = "calendar_accounts"
)
