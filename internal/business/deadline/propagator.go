package deadline

import (
	"context"
	"time"

	"github.com/advwell/scheduling-backend/internal/database"
	"github.com/advwell/scheduling-backend/internal/model"
	"go.uber.org/zap"
)

type casesRepository interface {
	GetCaseByID(ctx context.Context, q database.Queryable, tenantID, id string) (*model.Case, error)
	UpdateDeadline(ctx context.Context, q database.Queryable, tenantID, id string, deadline *time.Time, completed bool, completedAt *time.Time) error
}

type auditRecorder interface {
	RecordCaseUpdate(ctx context.Context, q database.Queryable, before, after *model.Case, actor *model.User) error
}

// Propagator mirrors DEADLINE events onto the case they are linked to. The
// mirror is best effort: failures are logged and never surfaced to the
// caller, the event mutation has already been committed by the time it runs.
type Propagator struct {
	logger *zap.SugaredLogger
	db     database.Queryable
	cases  casesRepository
	audit  auditRecorder
}

func NewPropagator(logger *zap.SugaredLogger, db database.Queryable, cases casesRepository, audit auditRecorder) *Propagator {
	return &Propagator{
		logger: logger,
		db:     db,
		cases:  cases,
		audit:  audit,
	}
}

// Propagate copies the event's start onto the case deadline and mirrors the
// completion state. Events that are not DEADLINE or have no linked case are
// ignored.
func (p *Propagator) Propagate(ctx context.Context, event *model.Event, actor *model.User) {
	if event.EventType != model.EventTypeDeadline || event.CaseID == nil {
		return
	}

	caseID := *event.CaseID

	before, err := p.cases.GetCaseByID(ctx, p.db, event.TenantID, caseID)
	if err != nil {
		p.logger.Errorw("deadline propagation: get case", "event_id", event.ID, "case_id", caseID, "err", err)
		return
	}

	deadline := event.StartsAt
	var completedAt *time.Time
	if event.Completed {
		now := time.Now()
		completedAt = &now
	}

	if err := p.cases.UpdateDeadline(ctx, p.db, event.TenantID, caseID, &deadline, event.Completed, completedAt); err != nil {
		p.logger.Errorw("deadline propagation: update case", "event_id", event.ID, "case_id", caseID, "err", err)
		return
	}

	after := *before
	after.Deadline = &deadline
	after.DeadlineCompleted = event.Completed
	after.DeadlineCompletedAt = completedAt

	if err := p.audit.RecordCaseUpdate(ctx, p.db, before, &after, actor); err != nil {
		p.logger.Errorw("deadline propagation: audit", "event_id", event.ID, "case_id", caseID, "err", err)
	}
}

// Clear resets the mirrored deadline when a DEADLINE event is deleted.
func (p *Propagator) Clear(ctx context.Context, event *model.Event, actor *model.User) {
	if event.EventType != model.EventTypeDeadline || event.CaseID == nil {
		return
	}

	caseID := *event.CaseID

	before, err := p.cases.GetCaseByID(ctx, p.db, event.TenantID, caseID)
	if err != nil {
		p.logger.Errorw("deadline propagation: get case", "event_id", event.ID, "case_id", caseID, "err", err)
		return
	}

	if err := p.cases.UpdateDeadline(ctx, p.db, event.TenantID, caseID, nil, false, nil); err != nil {
		p.logger.Errorw("deadline propagation: clear case", "event_id", event.ID, "case_id", caseID, "err", err)
		return
	}

	after := *before
	after.Deadline = nil
	after.DeadlineCompleted = false
	after.DeadlineCompletedAt = nil

	if err := p.audit.RecordCaseUpdate(ctx, p.db, before, &after, actor); err != nil {
		p.logger.Errorw("deadline propagation: audit", "event_id", event.ID, "case_id", caseID, "err", err)
	}
}
