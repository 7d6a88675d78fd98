package schedule

import (
	"fmt"
	"net/url"

	"github.com/advwell/scheduling-backend/internal/model"
)

const meetDateFormat = "20060102T150405Z"

const meetInstructions = "Video meeting - open the event and click \"Add Google Meet video conferencing\" to generate the link."

// meetingLink returns the Google Calendar event-edit URL for video meetings
// and the empty string for everything else. The URL is built purely from the
// event's own fields, so regenerating it for an unchanged event yields the
// same value.
func meetingLink(event *model.Event) string {
	if event.EventType != model.EventTypeVideoMeeting {
		return ""
	}

	title := event.Title
	if title == "" {
		title = "Meeting"
	}

	details := meetInstructions
	if event.Description != "" {
		details = event.Description + "\n\n" + meetInstructions
	}

	return fmt.Sprintf("https://calendar.google.com/calendar/u/0/r/eventedit?text=%s&dates=%s/%s&details=%s",
		url.QueryEscape(title),
		event.StartsAt.UTC().Format(meetDateFormat),
		event.EffectiveEnd().UTC().Format(meetDateFormat),
		url.QueryEscape(details),
	)
}
