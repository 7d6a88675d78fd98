package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/advwell/scheduling-backend/internal/model"
)

func (a *Api) calendarAuthHandler(w http.ResponseWriter, r *http.Request) {
	user, err := a.requestUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	// the user id rides along as state; the callback checks it against the
	// authenticated caller
	url := a.calendar.AuthURL(user.ID)

	if err := a.writeJSON(w, http.StatusOK, map[string]string{"url": url}, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) calendarCallbackHandler(w http.ResponseWriter, r *http.Request) {
	user, err := a.requestUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if state := r.URL.Query().Get("state"); state != user.ID {
		a.badRequestResponse(w, r, errors.New("state does not match the authenticated user"))
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		a.badRequestResponse(w, r, errors.New("code must be provided"))
		return
	}

	account, err := a.calendar.HandleCallback(r.Context(), user.ID, code)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("handle callback: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToAccountResp(account), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) calendarStatusHandler(w http.ResponseWriter, r *http.Request) {
	user, err := a.requestUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	account, err := a.calendar.AccountStatus(r.Context(), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.writeJSON(w, http.StatusOK, map[string]bool{"connected": false}, nil)
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("account status: %w", err))
		}
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToAccountResp(account), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) calendarSettingsHandler(w http.ResponseWriter, r *http.Request) {
	user, err := a.requestUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	req := &struct {
		SyncEnabled bool `json:"sync_enabled"`
	}{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	if err := a.calendar.SetSyncEnabled(r.Context(), user.ID, req.SyncEnabled); err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("update settings: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) calendarDisconnectHandler(w http.ResponseWriter, r *http.Request) {
	user, err := a.requestUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.calendar.Disconnect(r.Context(), user.ID); err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("disconnect account: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func mapToAccountResp(account *model.CalendarAccount) map[string]interface{} {
	return map[string]interface{}{
		"connected":    true,
		"email":        account.Email,
		"enabled":      account.Enabled,
		"sync_enabled": account.SyncEnabled,
		"token_expiry": account.TokenExpiry.Format(time.RFC3339),
	}
}
