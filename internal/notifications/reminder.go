package notifications

import (
	"context"
	"time"

	"github.com/advwell/scheduling-backend/internal/database"
	"github.com/advwell/scheduling-backend/internal/model"
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

type eventsRepository interface {
	GetEventsStartingBetween(ctx context.Context, q database.Queryable, from, to time.Time) ([]*model.Event, error)
	GetAssignedUserIDs(ctx context.Context, q database.Queryable, eventID string) ([]string, error)
}

type usersRepository interface {
	GetUsersByIDs(ctx context.Context, q database.Queryable, ids []string) ([]*model.User, error)
}

// Sender queues a reminder for every event starting one reminder window
// from now. It scans minute-aligned windows, so each event is picked up by
// exactly one tick; the dispatcher's dedupe covers restarts that rescan a
// window.
type Sender struct {
	db         database.PGX
	logger     *zap.SugaredLogger
	events     eventsRepository
	users      usersRepository
	dispatcher *Dispatcher
	window     time.Duration
}

func NewSender(
	db database.PGX,
	logger *zap.SugaredLogger,
	events eventsRepository,
	users usersRepository,
	dispatcher *Dispatcher,
	window time.Duration,
) *Sender {
	return &Sender{
		db:         db,
		logger:     logger,
		events:     events,
		users:      users,
		dispatcher: dispatcher,
		window:     window,
	}
}

func (s *Sender) Start(ctx context.Context) {
	now := time.Now()

	from := now.Truncate(time.Minute)
	to := from.Add(time.Minute)
	// initial send
	go s.findAndSendReminders(ctx, from, to)

	time.Sleep(time.Until(to))

	// send at first minute
	from = to
	to = time.Now().Truncate(time.Minute).Add(time.Minute)
	go s.findAndSendReminders(ctx, from, to)

	ticker := time.NewTicker(time.Minute)
	done := make(chan bool)

	closer.Bind(func() {
		done <- true
		ticker.Stop()
	})

	for {
		select {
		case <-done:
			return
		case t := <-ticker.C:
			from = to
			to = t.Truncate(time.Minute).Add(time.Minute)
			go s.findAndSendReminders(ctx, from, to)
		}
	}
}

func (s *Sender) findAndSendReminders(ctx context.Context, from, to time.Time) {
	s.logger.Debugw("scanning for reminders", "from", from, "to", to)

	events, err := s.events.GetEventsStartingBetween(ctx, s.db, from.Add(s.window), to.Add(s.window))
	if err != nil {
		s.logger.Errorw("failed to get events", "err", err)
		return
	}

	for _, event := range events {
		userIDs, err := s.events.GetAssignedUserIDs(ctx, s.db, event.ID)
		if err != nil {
			s.logger.Errorw("failed to get assignments", "event_id", event.ID, "err", err)
			continue
		}

		hasCreator := false
		for _, id := range userIDs {
			if id == event.CreatorID {
				hasCreator = true
				break
			}
		}
		if !hasCreator {
			userIDs = append(userIDs, event.CreatorID)
		}

		users, err := s.users.GetUsersByIDs(ctx, s.db, userIDs)
		if err != nil {
			s.logger.Errorw("failed to get users", "event_id", event.ID, "err", err)
			continue
		}

		for _, u := range users {
			if !u.Active {
				continue
			}
			if err := s.dispatcher.NotifyReminder(ctx, u, event); err != nil {
				s.logger.Errorw("failed to queue reminder", "event_id", event.ID, "user_id", u.ID, "err", err)
			}
		}
	}
}
