package syncrecords_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/advwell/scheduling-backend/internal/database/syncrecords"
	"github.com/advwell/scheduling-backend/internal/model"
	"github.com/jackc/pgconn"
)

type sqlizer = interface {
	ToSql() (sql string, args []interface{}, err error)
}

// captureQueryable records the generated SQL instead of running it.
type captureQueryable struct {
	sql  string
	args []interface{}
}

func (c *captureQueryable) Exec(_ context.Context, s sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := s.ToSql()
	if err != nil {
		return nil, err
	}
	c.sql = sql
	c.args = args
	return nil, nil
}

func (c *captureQueryable) Get(context.Context, interface{}, sqlizer) error    { return nil }
func (c *captureQueryable) Select(context.Context, interface{}, sqlizer) error { return nil }
func (c *captureQueryable) ExecRaw(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return nil, nil
}

func TestUpsertAccountReconnectRestoresSyncFlag(t *testing.T) {
	q := &captureQueryable{}
	repo := syncrecords.NewRepository()

	err := repo.UpsertAccount(context.Background(), q, &model.CalendarAccount{
		UserID:       "user-1",
		Email:        "anna.berg@example.com",
		AccessToken:  "enc-access",
		RefreshToken: "enc-refresh",
		TokenExpiry:  time.Now().Add(time.Hour),
		Enabled:      true,
		SyncEnabled:  true,
	})
	if err != nil {
		t.Fatalf("UpsertAccount error: %v", err)
	}

	if !strings.Contains(q.sql, "on conflict (user_id) do update") {
		t.Fatalf("sql = %q, want an upsert", q.sql)
	}
	// a reconnect must overwrite every mutable column, the sync preference
	// included, so the stored row matches the account handed back
	for _, clause := range []string{
		"email = excluded.email",
		"access_token = excluded.access_token",
		"refresh_token = excluded.refresh_token",
		"token_expiry = excluded.token_expiry",
		"enabled = excluded.enabled",
		"sync_enabled = excluded.sync_enabled",
	} {
		if !strings.Contains(q.sql, clause) {
			t.Errorf("sql %q missing %q", q.sql, clause)
		}
	}
	if len(q.args) != 7 {
		t.Errorf("args = %d, want all 7 columns bound", len(q.args))
	}
}
