package model

import "time"

type EventType string

const (
	EventTypeAppointment  EventType = "APPOINTMENT"
	EventTypeTask         EventType = "TASK"
	EventTypeDeadline     EventType = "DEADLINE"
	EventTypeHearing      EventType = "HEARING"
	EventTypeVideoMeeting EventType = "VIDEO_MEETING"
)

func (t EventType) Valid() bool {
	switch t {
	case EventTypeAppointment, EventTypeTask, EventTypeDeadline, EventTypeHearing, EventTypeVideoMeeting:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type KanbanColumn string

const (
	KanbanColumnNone       KanbanColumn = ""
	KanbanColumnTodo       KanbanColumn = "TODO"
	KanbanColumnInProgress KanbanColumn = "IN_PROGRESS"
	KanbanColumnDone       KanbanColumn = "DONE"
)

func (c KanbanColumn) Valid() bool {
	switch c {
	case KanbanColumnNone, KanbanColumnTodo, KanbanColumnInProgress, KanbanColumnDone:
		return true
	}
	return false
}

// DefaultEventDuration is assumed whenever an event has no explicit end.
const DefaultEventDuration = time.Hour

type EventCreate struct {
	TenantID        string
	Title           string
	Description     string
	EventType       EventType
	Priority        Priority
	StartsAt        time.Time
	EndsAt          *time.Time
	KanbanColumn    KanbanColumn
	ClientID        *string
	CaseID          *string
	CreatorID       string
	AssignedUserIDs []string
}

type Event struct {
	ID          string
	Completed   bool
	MeetingLink string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	EventCreate
}

// EffectiveEnd returns the end used for all overlap and sync math.
func (e *Event) EffectiveEnd() time.Time {
	return EffectiveEnd(e.StartsAt, e.EndsAt)
}

func EffectiveEnd(start time.Time, end *time.Time) time.Time {
	if end != nil {
		return *end
	}
	return start.Add(DefaultEventDuration)
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap, so a hearing
// ending at 10:00 and an appointment starting at 10:00 can share a lawyer.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// EventUpdate replaces the event wholesale, assignment set included.
type EventUpdate struct {
	Title           string
	Description     string
	EventType       EventType
	Priority        Priority
	StartsAt        time.Time
	EndsAt          *time.Time
	KanbanColumn    KanbanColumn
	ClientID        *string
	CaseID          *string
	Completed       bool
	AssignedUserIDs []string
}

type EventsFilter struct {
	TenantID  string
	EventType EventType
	Completed *bool
	ClientID  string
	CaseID    string
	From      time.Time
	To        time.Time
	Search    string
	Limit     int
	Offset    int
}

type AssignedUser struct {
	ID       string
	FullName string
}

// ConflictingEvent is one stored event overlapping a candidate window,
// together with everyone currently assigned to it.
type ConflictingEvent struct {
	ID            string
	Title         string
	StartsAt      time.Time
	EndsAt        *time.Time
	AssignedUsers []AssignedUser
}
