package gcal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/advwell/scheduling-backend/internal/config"
	"github.com/advwell/scheduling-backend/internal/database"
	"github.com/advwell/scheduling-backend/internal/model"
	"github.com/advwell/scheduling-backend/internal/pkg/crypto"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	oauthapi "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// Access tokens get refreshed this long before they expire, so a token never
// dies mid-request.
const refreshLeeway = 5 * time.Minute

var ErrAccountDisabled = errors.New("calendar account disabled")

type accountsRepository interface {
	GetAccount(ctx context.Context, q database.Queryable, userID string) (*model.CalendarAccount, error)
	UpsertAccount(ctx context.Context, q database.Queryable, account *model.CalendarAccount) error
	UpdateAccountTokens(ctx context.Context, q database.Queryable, userID, accessToken string, expiry time.Time) error
	SetAccountEnabled(ctx context.Context, q database.Queryable, userID string, enabled bool) error
	SetSyncEnabled(ctx context.Context, q database.Queryable, userID string, syncEnabled bool) error
	DeleteAccount(ctx context.Context, q database.Queryable, userID string) error
}

// Client is the Google Calendar side of event sync. Tokens are stored
// encrypted and refreshed lazily; an account whose refresh token stops
// working is disabled rather than retried forever.
type Client struct {
	logger   *zap.SugaredLogger
	db       database.Queryable
	accounts accountsRepository
	cipher   *crypto.Cipher
	oauth    *oauth2.Config
}

func NewClient(logger *zap.SugaredLogger, db database.Queryable, accounts accountsRepository, cipher *crypto.Cipher) *Client {
	return &Client{
		logger:   logger,
		db:       db,
		accounts: accounts,
		cipher:   cipher,
		oauth: &oauth2.Config{
			ClientID:     config.GoogleClientID(),
			ClientSecret: config.GoogleClientSecret(),
			RedirectURL:  config.GoogleRedirectURL(),
			Scopes: []string{
				calendar.CalendarEventsScope,
				oauthapi.UserinfoEmailScope,
			},
			Endpoint: google.Endpoint,
		},
	}
}

// AuthURL returns the consent page URL. Offline access is required, without
// it Google issues no refresh token and the account dies within the hour.
func (c *Client) AuthURL(state string) string {
	return c.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// HandleCallback exchanges the authorization code and stores the connected
// account for the user, enabled and with sync on.
func (c *Client) HandleCallback(ctx context.Context, userID, code string) (*model.CalendarAccount, error) {
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	if token.RefreshToken == "" {
		return nil, errors.New("no refresh token in exchange response")
	}

	svc, err := oauthapi.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(token)))
	if err != nil {
		return nil, fmt.Errorf("init userinfo service: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get userinfo: %w", err)
	}

	accessToken, err := c.cipher.Encrypt(token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("encrypt access token: %w", err)
	}
	refreshToken, err := c.cipher.Encrypt(token.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("encrypt refresh token: %w", err)
	}

	account := &model.CalendarAccount{
		UserID:       userID,
		Email:        info.Email,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenExpiry:  token.Expiry,
		Enabled:      true,
		SyncEnabled:  true,
	}

	if err := c.accounts.UpsertAccount(ctx, c.db, account); err != nil {
		return nil, fmt.Errorf("save account: %w", err)
	}

	return account, nil
}

// AccountStatus returns the stored account with tokens blanked, or
// model.ErrNoRecord when the user never connected one.
func (c *Client) AccountStatus(ctx context.Context, userID string) (*model.CalendarAccount, error) {
	account, err := c.accounts.GetAccount(ctx, c.db, userID)
	if err != nil {
		return nil, err
	}

	account.AccessToken = ""
	account.RefreshToken = ""
	return account, nil
}

func (c *Client) SetSyncEnabled(ctx context.Context, userID string, enabled bool) error {
	return c.accounts.SetSyncEnabled(ctx, c.db, userID, enabled)
}

func (c *Client) Disconnect(ctx context.Context, userID string) error {
	return c.accounts.DeleteAccount(ctx, c.db, userID)
}

// token returns a live access token for the user, refreshing it when it is
// about to expire. A failed refresh disables the account: the refresh token
// has been revoked and every later call would fail the same way.
func (c *Client) token(ctx context.Context, account *model.CalendarAccount) (*oauth2.Token, error) {
	accessToken, err := c.cipher.Decrypt(account.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("decrypt access token: %w", err)
	}
	refreshToken, err := c.cipher.Decrypt(account.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("decrypt refresh token: %w", err)
	}

	current := &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Expiry:       account.TokenExpiry,
	}

	if time.Until(account.TokenExpiry) > refreshLeeway {
		return current, nil
	}

	refreshed, err := c.oauth.TokenSource(ctx, current).Token()
	if err != nil {
		c.logger.Warnw("token refresh failed, disabling account", "user_id", account.UserID, "err", err)
		if disableErr := c.accounts.SetAccountEnabled(ctx, c.db, account.UserID, false); disableErr != nil {
			c.logger.Errorw("disable account", "user_id", account.UserID, "err", disableErr)
		}
		return nil, fmt.Errorf("refresh token: %w", err)
	}

	encrypted, err := c.cipher.Encrypt(refreshed.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("encrypt access token: %w", err)
	}
	if err := c.accounts.UpdateAccountTokens(ctx, c.db, account.UserID, encrypted, refreshed.Expiry); err != nil {
		c.logger.Errorw("save refreshed token", "user_id", account.UserID, "err", err)
	}

	return refreshed, nil
}

func (c *Client) calendarService(ctx context.Context, userID string) (*calendar.Service, error) {
	account, err := c.accounts.GetAccount(ctx, c.db, userID)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	if !account.Enabled {
		return nil, ErrAccountDisabled
	}

	token, err := c.token(ctx, account)
	if err != nil {
		return nil, err
	}

	svc, err := calendar.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(token)))
	if err != nil {
		return nil, fmt.Errorf("init calendar service: %w", err)
	}

	return svc, nil
}
