package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/advwell/scheduling-backend/internal/model"
	"go.uber.org/zap"
)

type fakeCalendar struct {
	callbackUserID string
	callbackCode   string
}

func (f *fakeCalendar) AuthURL(state string) string {
	return "https://accounts.example/auth?state=" + state
}

func (f *fakeCalendar) HandleCallback(_ context.Context, userID, code string) (*model.CalendarAccount, error) {
	f.callbackUserID = userID
	f.callbackCode = code
	return &model.CalendarAccount{
		UserID:      userID,
		Email:       "anna.berg@example.com",
		Enabled:     true,
		SyncEnabled: true,
	}, nil
}

func (f *fakeCalendar) AccountStatus(context.Context, string) (*model.CalendarAccount, error) {
	return nil, model.ErrNoRecord
}

func (f *fakeCalendar) SetSyncEnabled(context.Context, string, bool) error { return nil }
func (f *fakeCalendar) Disconnect(context.Context, string) error           { return nil }

func authedRequest(t *testing.T, target string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	user := &model.User{ID: "user-1", TenantID: "tenant", FullName: "Anna Berg", Active: true}
	return req.WithContext(context.WithValue(req.Context(), contextKeyUser, user))
}

func TestCalendarCallback(t *testing.T) {
	calendar := &fakeCalendar{}
	a := &Api{logger: zap.NewNop().Sugar(), calendar: calendar}

	rec := httptest.NewRecorder()
	a.calendarCallbackHandler(rec, authedRequest(t, "/calendar/callback?state=user-1&code=auth-code"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if calendar.callbackUserID != "user-1" || calendar.callbackCode != "auth-code" {
		t.Errorf("callback called with %q/%q", calendar.callbackUserID, calendar.callbackCode)
	}
	if !strings.Contains(rec.Body.String(), `"connected":true`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestCalendarCallbackRejectsForeignState(t *testing.T) {
	calendar := &fakeCalendar{}
	a := &Api{logger: zap.NewNop().Sugar(), calendar: calendar}

	rec := httptest.NewRecorder()
	a.calendarCallbackHandler(rec, authedRequest(t, "/calendar/callback?state=someone-else&code=auth-code"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 on a state mismatch", rec.Code)
	}
	if calendar.callbackCode != "" {
		t.Error("code exchanged despite state mismatch")
	}
}

func TestCalendarCallbackRequiresCode(t *testing.T) {
	calendar := &fakeCalendar{}
	a := &Api{logger: zap.NewNop().Sugar(), calendar: calendar}

	rec := httptest.NewRecorder()
	a.calendarCallbackHandler(rec, authedRequest(t, "/calendar/callback?state=user-1"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 without a code", rec.Code)
	}
}
