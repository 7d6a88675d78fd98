package model

import "time"

// SyncRecord maps one local event to one provider-side event for one user.
// A pair is either SYNCED (row exists) or ABSENT (no row); failed provider
// calls never leave a pending row behind.
type SyncRecord struct {
	EventID    string
	UserID     string
	ExternalID string
	CreatedAt  time.Time
}

// CalendarAccount holds a user's provider connection. Tokens are stored
// encrypted.
type CalendarAccount struct {
	UserID       string
	Email        string
	AccessToken  string
	RefreshToken string
	TokenExpiry  time.Time
	Enabled      bool
	SyncEnabled  bool
}
