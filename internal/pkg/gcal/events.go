package gcal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/advwell/scheduling-backend/internal/model"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
)

const calendarID = "primary"

// Google Calendar color ids per event type, so a lawyer's external calendar
// reads the same as the in-app one.
var colorIDs = map[model.EventType]string{
	model.EventTypeAppointment:  "1",
	model.EventTypeTask:         "2",
	model.EventTypeDeadline:     "11",
	model.EventTypeHearing:      "5",
	model.EventTypeVideoMeeting: "7",
}

// IsSyncEnabled reports whether the user has a connected, enabled account
// with sync turned on. No account at all is simply "not enabled".
func (c *Client) IsSyncEnabled(ctx context.Context, userID string) (bool, error) {
	account, err := c.accounts.GetAccount(ctx, c.db, userID)
	if errors.Is(err, model.ErrNoRecord) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get account: %w", err)
	}

	return account.Enabled && account.SyncEnabled, nil
}

func (c *Client) CreateEvent(ctx context.Context, userID string, event *model.Event) (string, error) {
	svc, err := c.calendarService(ctx, userID)
	if err != nil {
		return "", err
	}

	created, err := svc.Events.Insert(calendarID, mapToRemote(event)).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert remote event: %w", err)
	}

	return created.Id, nil
}

func (c *Client) UpdateEvent(ctx context.Context, userID, externalID string, event *model.Event) error {
	svc, err := c.calendarService(ctx, userID)
	if err != nil {
		return err
	}

	if _, err := svc.Events.Update(calendarID, externalID, mapToRemote(event)).Context(ctx).Do(); err != nil {
		return fmt.Errorf("update remote event: %w", err)
	}

	return nil
}

// DeleteEvent treats an already-gone remote event as success; the goal is
// absence, not a successful round trip.
func (c *Client) DeleteEvent(ctx context.Context, userID, externalID string) error {
	svc, err := c.calendarService(ctx, userID)
	if err != nil {
		return err
	}

	err = svc.Events.Delete(calendarID, externalID).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone) {
			return nil
		}
		return fmt.Errorf("delete remote event: %w", err)
	}

	return nil
}

func mapToRemote(event *model.Event) *calendar.Event {
	description := event.Description
	if event.MeetingLink != "" {
		if description != "" {
			description += "\n\n"
		}
		description += "Meeting link: " + event.MeetingLink
	}

	return &calendar.Event{
		Summary:     event.Title,
		Description: description,
		ColorId:     colorIDs[event.EventType],
		Start: &calendar.EventDateTime{
			DateTime: event.StartsAt.Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: event.EffectiveEnd().Format(time.RFC3339),
		},
	}
}
