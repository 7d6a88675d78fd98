package audit

import (
	"time"

	"github.com/advwell/scheduling-backend/internal/model"
)

// Fields never written to an audit row, whatever entity they came from.
var sensitiveFields = map[string]struct{}{
	"password":               {},
	"apiKey":                 {},
	"token":                  {},
	"resetToken":             {},
	"emailVerificationToken": {},
}

// Metadata keys ignored by the diff. clientId is a foreign key only and
// changes to it are tracked on the owning entity instead.
var metadataFields = map[string]struct{}{
	"id":        {},
	"tenantId":  {},
	"createdAt": {},
	"updatedAt": {},
	"clientId":  {},
}

var fieldLabels = map[string]string{
	"title":               "Title",
	"description":         "Description",
	"type":                "Type",
	"priority":            "Priority",
	"startsAt":            "Start",
	"endsAt":              "End",
	"completed":           "Completed",
	"kanbanColumn":        "Kanban column",
	"meetingLink":         "Meeting link",
	"caseId":              "Case",
	"caseNumber":          "Case number",
	"subject":             "Subject",
	"deadline":            "Deadline",
	"deadlineCompleted":   "Deadline completed",
	"deadlineCompletedAt": "Deadline completed at",
}

func fieldLabel(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}

var eventTypeLabels = map[model.EventType]string{
	model.EventTypeAppointment:  "Appointment",
	model.EventTypeTask:         "Task",
	model.EventTypeDeadline:     "Deadline",
	model.EventTypeHearing:      "Hearing",
	model.EventTypeVideoMeeting: "Video meeting",
}

func eventTypeLabel(t model.EventType) string {
	if label, ok := eventTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// eventRecord flattens an event into the audited field set. Assignments are
// audited through the events they belong to, not as snapshot fields.
func eventRecord(e *model.Event) map[string]interface{} {
	return sanitize(map[string]interface{}{
		"title":        e.Title,
		"description":  e.Description,
		"type":         string(e.EventType),
		"priority":     string(e.Priority),
		"startsAt":     e.StartsAt,
		"endsAt":       e.EndsAt,
		"completed":    e.Completed,
		"kanbanColumn": string(e.KanbanColumn),
		"meetingLink":  e.MeetingLink,
		"clientId":     e.ClientID,
		"caseId":       e.CaseID,
	})
}

func caseRecord(c *model.Case) map[string]interface{} {
	return sanitize(map[string]interface{}{
		"caseNumber":          c.CaseNumber,
		"subject":             c.Subject,
		"deadline":            c.Deadline,
		"deadlineCompleted":   c.DeadlineCompleted,
		"deadlineCompletedAt": c.DeadlineCompletedAt,
	})
}

// sanitize strips denylisted keys and canonicalizes every value to a string,
// bool or nil, so the diff below never depends on how a representation
// serializes.
func sanitize(record map[string]interface{}) map[string]interface{} {
	res := make(map[string]interface{}, len(record))

	for key, value := range record {
		if _, ok := sensitiveFields[key]; ok {
			continue
		}

		res[key] = canonical(value)
	}

	return res
}

func canonical(value interface{}) interface{} {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if v == nil {
			return nil
		}
		return v.UTC().Format(time.RFC3339Nano)
	case *string:
		if v == nil {
			return nil
		}
		return *v
	default:
		return v
	}
}

func valuesEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == b
	}

	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	}

	return false
}
