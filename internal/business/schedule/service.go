package schedule

import (
	"context"
	"time"

	"github.com/advwell/scheduling-backend/internal/database"
	"github.com/advwell/scheduling-backend/internal/model"
	"go.uber.org/zap"
)

type eventsRepository interface {
	CreateEvent(ctx context.Context, q database.Queryable, event *model.Event) (string, error)
	GetEventByID(ctx context.Context, q database.Queryable, tenantID, id string) (*model.Event, error)
	GetEvents(ctx context.Context, q database.Queryable, filter model.EventsFilter) ([]*model.Event, error)
	GetUpcomingEvents(ctx context.Context, q database.Queryable, tenantID string, now time.Time, limit int) ([]*model.Event, error)
	GetTasksDueToday(ctx context.Context, q database.Queryable, tenantID string) ([]*model.Event, error)
	UpdateEvent(ctx context.Context, q database.Queryable, event *model.Event) error
	SetCompleted(ctx context.Context, q database.Queryable, tenantID, id string, completed bool, kanban model.KanbanColumn) error
	DeleteEvent(ctx context.Context, q database.Queryable, tenantID, id string) error
	ReplaceAssignments(ctx context.Context, q database.Queryable, eventID string, userIDs []string) error
	GetAssignedUserIDs(ctx context.Context, q database.Queryable, eventID string) ([]string, error)
	FindOverlapping(ctx context.Context, q database.Queryable, tenantID string, userIDs []string, start, end time.Time, excludeID string) ([]*model.ConflictingEvent, error)
}

type usersRepository interface {
	GetUsersByIDs(ctx context.Context, q database.Queryable, ids []string) ([]*model.User, error)
	CountActiveInTenant(ctx context.Context, q database.Queryable, tenantID string, ids []string) (int, error)
}

type syncRecordsRepository interface {
	GetByEvent(ctx context.Context, q database.Queryable, eventID string) ([]*model.SyncRecord, error)
}

type auditRecorder interface {
	RecordEventCreate(ctx context.Context, q database.Queryable, event *model.Event, actor *model.User) error
	RecordEventUpdate(ctx context.Context, q database.Queryable, before, after *model.Event, actor *model.User) error
	RecordEventDelete(ctx context.Context, q database.Queryable, event *model.Event, actor *model.User) error
}

type deadlinePropagator interface {
	Propagate(ctx context.Context, event *model.Event, actor *model.User)
	Clear(ctx context.Context, event *model.Event, actor *model.User)
}

type syncReconciler interface {
	Reconcile(ctx context.Context, event *model.Event, desiredUserIDs []string)
	CleanupDeleted(ctx context.Context, event *model.Event, records []*model.SyncRecord)
}

type notificationDispatcher interface {
	NotifyAssignment(ctx context.Context, user *model.User, event *model.Event, actorName string) error
}

// Service owns every event mutation. The ordering contract is fixed:
// validation and conflict checks run before anything is written, the event
// write, assignment replace and audit entry commit atomically, the deadline
// mirror runs before the call returns, and external sync plus notifications
// run in the background after it.
type Service struct {
	logger      *zap.SugaredLogger
	db          database.PGX
	events      eventsRepository
	users       usersRepository
	syncRecords syncRecordsRepository
	audit       auditRecorder
	deadlines   deadlinePropagator
	reconciler  syncReconciler
	notifier    notificationDispatcher
	syncTimeout time.Duration
}

func NewService(
	logger *zap.SugaredLogger,
	db database.PGX,
	events eventsRepository,
	users usersRepository,
	syncRecords syncRecordsRepository,
	audit auditRecorder,
	deadlines deadlinePropagator,
	reconciler syncReconciler,
	notifier notificationDispatcher,
	syncTimeout time.Duration,
) *Service {
	return &Service{
		logger:      logger,
		db:          db,
		events:      events,
		users:       users,
		syncRecords: syncRecords,
		audit:       audit,
		deadlines:   deadlines,
		reconciler:  reconciler,
		notifier:    notifier,
		syncTimeout: syncTimeout,
	}
}

// desiredSyncUsers is the set the reconciler drives towards: the creator
// plus everyone assigned, deduped.
func desiredSyncUsers(event *model.Event) []string {
	seen := make(map[string]struct{}, len(event.AssignedUserIDs)+1)
	res := make([]string, 0, len(event.AssignedUserIDs)+1)

	for _, id := range append([]string{event.CreatorID}, event.AssignedUserIDs...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}

	return res
}

// reconcileAsync runs the sync reconciler detached from the request: the
// response has already been sent and sync failures must not affect it.
func (s *Service) reconcileAsync(event *model.Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.syncTimeout)
		defer cancel()

		s.reconciler.Reconcile(ctx, event, desiredSyncUsers(event))
	}()
}

// notifyAssigned queues an assignment notification for each of userIDs,
// skipping the actor. Failures are logged; delivery is at-least-once from
// the queue onwards, not from here.
func (s *Service) notifyAssigned(ctx context.Context, event *model.Event, userIDs []string, actor *model.User) {
	if len(userIDs) == 0 {
		return
	}

	users, err := s.users.GetUsersByIDs(ctx, s.db, userIDs)
	if err != nil {
		s.logger.Errorw("notify assigned: get users", "event_id", event.ID, "err", err)
		return
	}

	for _, u := range users {
		if u.ID == actor.ID {
			continue
		}

		if err := s.notifier.NotifyAssignment(ctx, u, event, actor.FullName); err != nil {
			s.logger.Errorw("notify assigned: queue notification",
				"event_id", event.ID, "user_id", u.ID, "err", err)
		}
	}
}
