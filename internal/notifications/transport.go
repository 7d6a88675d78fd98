package notifications

import (
	"context"

	"go.uber.org/zap"
)

// LogTransport writes deliveries to the log. It stands in until a real
// channel (mail, push) is wired up and is what non-production environments
// run with.
type LogTransport struct {
	logger *zap.SugaredLogger
}

func NewLogTransport(logger *zap.SugaredLogger) *LogTransport {
	return &LogTransport{logger: logger}
}

func (t *LogTransport) Send(_ context.Context, task *Task) error {
	t.logger.Infow("notification",
		"type", task.Type,
		"event_id", task.EventID,
		"event_title", task.EventTitle,
		"user_id", task.UserID,
		"user_email", task.UserEmail,
		"actor", task.ActorName,
		"starts_at", task.StartsAt,
	)
	return nil
}
