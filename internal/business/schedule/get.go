package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/advwell/scheduling-backend/internal/model"
)

const defaultUpcomingLimit = 10

func (s *Service) GetEvent(ctx context.Context, tenantID, id string) (*model.Event, error) {
	event, err := s.events.GetEventByID(ctx, s.db, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	assignees, err := s.events.GetAssignedUserIDs(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("get assignments: %w", err)
	}
	event.AssignedUserIDs = assignees

	return event, nil
}

func (s *Service) ListEvents(ctx context.Context, filter model.EventsFilter) ([]*model.Event, error) {
	events, err := s.events.GetEvents(ctx, s.db, filter)
	if err != nil {
		return nil, fmt.Errorf("get events: %w", err)
	}

	return events, nil
}

func (s *Service) UpcomingEvents(ctx context.Context, tenantID string, limit int) ([]*model.Event, error) {
	if limit <= 0 {
		limit = defaultUpcomingLimit
	}

	events, err := s.events.GetUpcomingEvents(ctx, s.db, tenantID, time.Now(), limit)
	if err != nil {
		return nil, fmt.Errorf("get upcoming events: %w", err)
	}

	return events, nil
}

func (s *Service) TasksDueToday(ctx context.Context, tenantID string) ([]*model.Event, error) {
	events, err := s.events.GetTasksDueToday(ctx, s.db, tenantID)
	if err != nil {
		return nil, fmt.Errorf("get tasks due today: %w", err)
	}

	return events, nil
}
