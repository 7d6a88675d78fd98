package gcal

import (
	"strings"
	"testing"
	"time"

	"github.com/advwell/scheduling-backend/internal/model"
)

func TestMapToRemote(t *testing.T) {
	starts := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	event := &model.Event{
		EventCreate: model.EventCreate{
			Title:       "Court hearing",
			Description: "Bring the case file",
			EventType:   model.EventTypeHearing,
			StartsAt:    starts,
		},
	}

	remote := mapToRemote(event)

	if remote.Summary != "Court hearing" {
		t.Errorf("summary = %q", remote.Summary)
	}
	if remote.Description != "Bring the case file" {
		t.Errorf("description = %q, must be unchanged without a meeting link", remote.Description)
	}
	if remote.ColorId != colorIDs[model.EventTypeHearing] {
		t.Errorf("color id = %q, want %q", remote.ColorId, colorIDs[model.EventTypeHearing])
	}
	if remote.End.DateTime != starts.Add(time.Hour).Format(time.RFC3339) {
		t.Errorf("end = %q, want start+1h for an open-ended event", remote.End.DateTime)
	}
}

func TestMapToRemoteAppendsMeetingLink(t *testing.T) {
	event := &model.Event{
		MeetingLink: "https://calendar.google.com/calendar/u/0/r/eventedit?text=Standup",
		EventCreate: model.EventCreate{
			Title:       "Team standup",
			Description: "agenda",
			EventType:   model.EventTypeVideoMeeting,
			StartsAt:    time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		},
	}

	remote := mapToRemote(event)

	if !strings.Contains(remote.Description, event.MeetingLink) {
		t.Errorf("description %q missing the meeting link", remote.Description)
	}
	if !strings.HasPrefix(remote.Description, "agenda\n\n") {
		t.Errorf("description %q must keep the original text first", remote.Description)
	}

	event.Description = ""
	if got := mapToRemote(event).Description; got != "Meeting link: "+event.MeetingLink {
		t.Errorf("description = %q, want the bare link line when there is no text", got)
	}
}
