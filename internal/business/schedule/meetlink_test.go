package schedule

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/advwell/scheduling-backend/internal/model"
)

func TestMeetingLink(t *testing.T) {
	event := &model.Event{
		EventCreate: model.EventCreate{
			Title:       "Deposition prep & review",
			Description: "Bring the case file",
			EventType:   model.EventTypeVideoMeeting,
			StartsAt:    time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		},
	}

	link := meetingLink(event)

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	if parsed.Host != "calendar.google.com" {
		t.Errorf("host = %q", parsed.Host)
	}

	query := parsed.Query()
	if got := query.Get("text"); got != "Deposition prep & review" {
		t.Errorf("text = %q, special characters must round-trip", got)
	}
	if got := query.Get("dates"); got != "20260901T100000Z/20260901T110000Z" {
		t.Errorf("dates = %q, want default one-hour window", got)
	}
	if !strings.Contains(query.Get("details"), "Bring the case file") {
		t.Errorf("details = %q", query.Get("details"))
	}
}

func TestMeetingLinkOnlyForVideoMeetings(t *testing.T) {
	event := &model.Event{
		EventCreate: model.EventCreate{
			Title:     "Hearing",
			EventType: model.EventTypeHearing,
			StartsAt:  time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		},
	}

	if link := meetingLink(event); link != "" {
		t.Errorf("link = %q, want empty for non-video events", link)
	}
}

func TestMeetingLinkUntitled(t *testing.T) {
	event := &model.Event{
		EventCreate: model.EventCreate{
			EventType: model.EventTypeVideoMeeting,
			StartsAt:  time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		},
	}

	link := meetingLink(event)
	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	if got := parsed.Query().Get("text"); got != "Meeting" {
		t.Errorf("text = %q, want fallback title", got)
	}
}
