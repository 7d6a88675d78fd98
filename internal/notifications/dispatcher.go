package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/advwell/scheduling-backend/internal/model"
	"github.com/advwell/scheduling-backend/internal/pkg/metrics"
	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"
)

type TaskType string

const (
	TaskTypeAssignment TaskType = "ASSIGNMENT"
	TaskTypeReminder   TaskType = "REMINDER"
)

const (
	queueKey      = "notifications:queue"
	processingKey = "notifications:processing"
	popTimeout    = 5 // seconds
)

// Task is one queued notification. It carries everything the transport
// needs, so delivery never goes back to the database.
type Task struct {
	Type       TaskType  `json:"type"`
	TenantID   string    `json:"tenant_id"`
	EventID    string    `json:"event_id"`
	EventTitle string    `json:"event_title"`
	EventType  string    `json:"event_type"`
	StartsAt   time.Time `json:"starts_at"`
	UserID     string    `json:"user_id"`
	UserEmail  string    `json:"user_email"`
	ActorName  string    `json:"actor_name,omitempty"`
}

// Transport delivers a single task. Returning an error puts the task back on
// the queue, so delivery is at-least-once and transports must tolerate
// duplicates.
type Transport interface {
	Send(ctx context.Context, task *Task) error
}

// Dispatcher queues notifications through redis. A dedupe key per
// (event, user, type) keeps one mutation from producing a burst of identical
// messages; the key expires so tomorrow's reminder for the same event still
// goes out.
type Dispatcher struct {
	logger    *zap.SugaredLogger
	pool      *redis.Pool
	transport Transport
	dedupeTTL time.Duration
}

func NewDispatcher(logger *zap.SugaredLogger, pool *redis.Pool, transport Transport, dedupeTTL time.Duration) *Dispatcher {
	return &Dispatcher{
		logger:    logger,
		pool:      pool,
		transport: transport,
		dedupeTTL: dedupeTTL,
	}
}

func (d *Dispatcher) NotifyAssignment(ctx context.Context, user *model.User, event *model.Event, actorName string) error {
	return d.enqueue(ctx, &Task{
		Type:       TaskTypeAssignment,
		TenantID:   event.TenantID,
		EventID:    event.ID,
		EventTitle: event.Title,
		EventType:  string(event.EventType),
		StartsAt:   event.StartsAt,
		UserID:     user.ID,
		UserEmail:  user.Email,
		ActorName:  actorName,
	})
}

func (d *Dispatcher) NotifyReminder(ctx context.Context, user *model.User, event *model.Event) error {
	return d.enqueue(ctx, &Task{
		Type:       TaskTypeReminder,
		TenantID:   event.TenantID,
		EventID:    event.ID,
		EventTitle: event.Title,
		EventType:  string(event.EventType),
		StartsAt:   event.StartsAt,
		UserID:     user.ID,
		UserEmail:  user.Email,
	})
}

func (d *Dispatcher) enqueue(ctx context.Context, task *Task) error {
	conn, err := d.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get redis connection: %w", err)
	}
	defer conn.Close()

	dedupeKey := fmt.Sprintf("notif:%s:%s:%s", task.EventID, task.UserID, task.Type)
	reply, err := redis.String(conn.Do("SET", dedupeKey, 1, "NX", "EX", int(d.dedupeTTL.Seconds())))
	if err != nil && !errors.Is(err, redis.ErrNil) {
		return fmt.Errorf("set dedupe key: %w", err)
	}
	if reply != "OK" {
		// already queued recently
		metrics.NotificationsDispatched.WithLabelValues(string(task.Type), "deduped").Inc()
		return nil
	}

	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}

	if _, err := conn.Do("LPUSH", queueKey, payload); err != nil {
		return fmt.Errorf("push task: %w", err)
	}

	metrics.NotificationsDispatched.WithLabelValues(string(task.Type), "queued").Inc()
	return nil
}

// Run consumes the queue until the context is cancelled. Tasks move to a
// processing list while in flight, so a crash between pop and send leaves
// the task recoverable instead of lost.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := d.processOne(ctx); err != nil {
			d.logger.Errorw("notification worker", "err", err)
			time.Sleep(time.Second)
		}
	}
}

func (d *Dispatcher) processOne(ctx context.Context) error {
	conn, err := d.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get redis connection: %w", err)
	}
	defer conn.Close()

	payload, err := redis.Bytes(conn.Do("BRPOPLPUSH", queueKey, processingKey, popTimeout))
	if errors.Is(err, redis.ErrNil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("pop task: %w", err)
	}

	task := &Task{}
	if err := json.Unmarshal(payload, task); err != nil {
		// poison message, drop it
		_, _ = conn.Do("LREM", processingKey, 1, payload)
		return fmt.Errorf("unmarshal task: %w", err)
	}

	if err := d.transport.Send(ctx, task); err != nil {
		metrics.NotificationsDispatched.WithLabelValues(string(task.Type), "error").Inc()
		_, _ = conn.Do("LREM", processingKey, 1, payload)
		_, _ = conn.Do("LPUSH", queueKey, payload)
		return fmt.Errorf("send task: %w", err)
	}

	metrics.NotificationsDispatched.WithLabelValues(string(task.Type), "sent").Inc()
	if _, err := conn.Do("LREM", processingKey, 1, payload); err != nil {
		return fmt.Errorf("ack task: %w", err)
	}

	return nil
}
