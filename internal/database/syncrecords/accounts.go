package syncrecords

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/advwell/scheduling-backend/internal/database"
	"github.com/advwell/scheduling-backend/internal/model"
)

type accountDTO struct {
	UserID       string
	Email        string
	AccessToken  string
	RefreshToken string
	TokenExpiry  time.Time
	Enabled      bool
	SyncEnabled  bool
}

var accountQuery = database.PSQL.
	Select(
		"user_id",
		"email",
		"access_token",
		"refresh_token",
		"token_expiry",
		"enabled",
		"sync_enabled",
	).
	From(database.CalendarAccountsTable)

func (*Repository) GetAccount(ctx context.Context, q database.Queryable, userID string) (*model.CalendarAccount, error) {
	qb := accountQuery.
		Where(sq.Eq{"user_id": userID})

	var dtos []*accountDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	if len(dtos) == 0 {
		return nil, model.ErrNoRecord
	}

	d := dtos[0]
	return &model.CalendarAccount{
		UserID:       d.UserID,
		Email:        d.Email,
		AccessToken:  d.AccessToken,
		RefreshToken: d.RefreshToken,
		TokenExpiry:  d.TokenExpiry,
		Enabled:      d.Enabled,
		SyncEnabled:  d.SyncEnabled,
	}, nil
}

func (*Repository) UpsertAccount(ctx context.Context, q database.Queryable, account *model.CalendarAccount) error {
	qb := database.PSQL.
		Insert(database.CalendarAccountsTable).
		Columns("user_id", "email", "access_token", "refresh_token", "token_expiry", "enabled", "sync_enabled").
		Values(account.UserID, account.Email, account.AccessToken, account.RefreshToken, account.TokenExpiry, account.Enabled, account.SyncEnabled).
		Suffix(`on conflict (user_id) do update set
			email = excluded.email,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			token_expiry = excluded.token_expiry,
			enabled = excluded.enabled,
			sync_enabled = excluded.sync_enabled`)

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) UpdateAccountTokens(ctx context.Context, q database.Queryable, userID, accessToken string, expiry time.Time) error {
	qb := database.PSQL.
		Update(database.CalendarAccountsTable).
		SetMap(map[string]interface{}{
			"access_token": accessToken,
			"token_expiry": expiry,
		}).
		Where(sq.Eq{"user_id": userID})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) SetAccountEnabled(ctx context.Context, q database.Queryable, userID string, enabled bool) error {
	qb := database.PSQL.
		Update(database.CalendarAccountsTable).
		Set("enabled", enabled).
		Where(sq.Eq{"user_id": userID})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) SetSyncEnabled(ctx context.Context, q database.Queryable, userID string, syncEnabled bool) error {
	qb := database.PSQL.
		Update(database.CalendarAccountsTable).
		Set("sync_enabled", syncEnabled).
		Where(sq.Eq{"user_id": userID})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) DeleteAccount(ctx context.Context, q database.Queryable, userID string) error {
	qb := database.PSQL.
		Delete(database.CalendarAccountsTable).
		Where(sq.Eq{"user_id": userID})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
