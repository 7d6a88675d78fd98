package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/advwell/scheduling-backend/internal/database"
	"github.com/advwell/scheduling-backend/internal/model"
	"github.com/advwell/scheduling-backend/internal/pkg/metrics"
)

// checkConflicts rejects the candidate window when any requested assignee
// already has a non-completed event overlapping it. The returned error
// carries the first conflicting event and every affected user; only users
// from the candidate set count, an uninvolved co-assignee on the stored
// event is not a conflict party.
func (s *Service) checkConflicts(ctx context.Context, q database.Queryable, tenantID string, userIDs []string, start time.Time, end *time.Time, excludeID string) error {
	if len(userIDs) == 0 {
		return nil
	}

	conflicts, err := s.events.FindOverlapping(ctx, q, tenantID, userIDs, start, model.EffectiveEnd(start, end), excludeID)
	if err != nil {
		return fmt.Errorf("find overlapping events: %w", err)
	}

	if len(conflicts) == 0 {
		return nil
	}

	candidates := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		candidates[id] = struct{}{}
	}

	var names []string
	seen := make(map[string]struct{})
	for _, conflict := range conflicts {
		for _, u := range conflict.AssignedUsers {
			if _, ok := candidates[u.ID]; !ok {
				continue
			}
			if _, ok := seen[u.ID]; ok {
				continue
			}
			seen[u.ID] = struct{}{}
			names = append(names, u.FullName)
		}
	}

	metrics.SchedulingConflicts.Inc()

	first := conflicts[0]
	return &model.ConflictError{
		EventID:    first.ID,
		EventTitle: first.Title,
		StartsAt:   first.StartsAt,
		EndsAt:     first.EndsAt,
		UserNames:  names,
	}
}
