package events

import (
	"time"

	"github.com/advwell/scheduling-backend/internal/model"
)

type eventDTO struct {
	ID           string
	TenantID     string
	Title        string
	Description  string
	EventType    string `db:"type"`
	Priority     string
	StartsAt     time.Time
	EndsAt       *time.Time
	Completed    bool
	KanbanColumn *string
	ClientID     *string
	CaseID       *string
	CreatorID    string
	MeetingLink  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func mapToEvent(dto *eventDTO) *model.Event {
	kanban := model.KanbanColumnNone
	if dto.KanbanColumn != nil {
		kanban = model.KanbanColumn(*dto.KanbanColumn)
	}

	link := ""
	if dto.MeetingLink != nil {
		link = *dto.MeetingLink
	}

	return &model.Event{
		ID:          dto.ID,
		Completed:   dto.Completed,
		MeetingLink: link,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
		EventCreate: model.EventCreate{
			TenantID:     dto.TenantID,
			Title:        dto.Title,
			Description:  dto.Description,
			EventType:    model.EventType(dto.EventType),
			Priority:     model.Priority(dto.Priority),
			StartsAt:     dto.StartsAt,
			EndsAt:       dto.EndsAt,
			KanbanColumn: kanban,
			ClientID:     dto.ClientID,
			CaseID:       dto.CaseID,
			CreatorID:    dto.CreatorID,
		},
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func kanbanColumn(c model.KanbanColumn) *string {
	if c == model.KanbanColumnNone {
		return nil
	}
	s := string(c)
	return &s
}
