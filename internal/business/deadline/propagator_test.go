package deadline_test

import (
	"context"
	"testing"
	"time"

	"github.com/advwell/scheduling-backend/internal/business/deadline"
	"github.com/advwell/scheduling-backend/internal/database"
	"github.com/advwell/scheduling-backend/internal/model"
	"go.uber.org/zap"
)

type deadlineUpdate struct {
	caseID      string
	deadline    *time.Time
	completed   bool
	completedAt *time.Time
}

type fakeCases struct {
	stored  *model.Case
	updates []deadlineUpdate
}

func (f *fakeCases) GetCaseByID(_ context.Context, _ database.Queryable, tenantID, id string) (*model.Case, error) {
	if f.stored == nil || f.stored.ID != id || f.stored.TenantID != tenantID {
		return nil, model.ErrNoRecord
	}
	copied := *f.stored
	return &copied, nil
}

func (f *fakeCases) UpdateDeadline(_ context.Context, _ database.Queryable, _, id string, dl *time.Time, completed bool, completedAt *time.Time) error {
	f.updates = append(f.updates, deadlineUpdate{
		caseID:      id,
		deadline:    dl,
		completed:   completed,
		completedAt: completedAt,
	})
	return nil
}

type fakeCaseAudit struct {
	updates int
}

func (f *fakeCaseAudit) RecordCaseUpdate(_ context.Context, _ database.Queryable, _, _ *model.Case, _ *model.User) error {
	f.updates++
	return nil
}

func deadlineEvent(completed bool) *model.Event {
	caseID := "case-1"
	return &model.Event{
		ID:        "event-1",
		Completed: completed,
		EventCreate: model.EventCreate{
			TenantID:  "tenant",
			Title:     "Filing deadline",
			EventType: model.EventTypeDeadline,
			StartsAt:  time.Date(2026, 10, 1, 17, 0, 0, 0, time.UTC),
			CaseID:    &caseID,
			CreatorID: "creator",
		},
	}
}

func propagatorActor() *model.User {
	return &model.User{ID: "actor-1", TenantID: "tenant", FullName: "Anna Berg"}
}

func newPropagator(t *testing.T) (*deadline.Propagator, *fakeCases, *fakeCaseAudit) {
	t.Helper()
	cases := &fakeCases{
		stored: &model.Case{ID: "case-1", TenantID: "tenant", CaseNumber: "A-17", Subject: "Estate"},
	}
	audit := &fakeCaseAudit{}
	return deadline.NewPropagator(zap.NewNop().Sugar(), nil, cases, audit), cases, audit
}

func TestPropagateMirrorsDeadline(t *testing.T) {
	p, cases, audit := newPropagator(t)
	event := deadlineEvent(false)

	p.Propagate(context.Background(), event, propagatorActor())

	if len(cases.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(cases.updates))
	}
	update := cases.updates[0]
	if update.caseID != "case-1" {
		t.Errorf("case = %q", update.caseID)
	}
	if update.deadline == nil || !update.deadline.Equal(event.StartsAt) {
		t.Errorf("deadline = %v, want event start", update.deadline)
	}
	if update.completed || update.completedAt != nil {
		t.Errorf("completion = %v/%v, want open", update.completed, update.completedAt)
	}
	if audit.updates != 1 {
		t.Errorf("audit updates = %d, want 1", audit.updates)
	}
}

func TestPropagateMirrorsCompletion(t *testing.T) {
	p, cases, _ := newPropagator(t)

	p.Propagate(context.Background(), deadlineEvent(true), propagatorActor())

	if len(cases.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(cases.updates))
	}
	update := cases.updates[0]
	if !update.completed || update.completedAt == nil {
		t.Errorf("completion = %v/%v, want completed with timestamp", update.completed, update.completedAt)
	}
}

func TestPropagateIgnoresOtherEvents(t *testing.T) {
	p, cases, _ := newPropagator(t)

	appointment := deadlineEvent(false)
	appointment.EventType = model.EventTypeAppointment
	p.Propagate(context.Background(), appointment, propagatorActor())

	unlinked := deadlineEvent(false)
	unlinked.CaseID = nil
	p.Propagate(context.Background(), unlinked, propagatorActor())

	if len(cases.updates) != 0 {
		t.Errorf("updates = %d, want 0", len(cases.updates))
	}
}

func TestClearResetsDeadline(t *testing.T) {
	p, cases, _ := newPropagator(t)

	p.Clear(context.Background(), deadlineEvent(true), propagatorActor())

	if len(cases.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(cases.updates))
	}
	update := cases.updates[0]
	if update.deadline != nil || update.completed || update.completedAt != nil {
		t.Errorf("update = %+v, want everything reset", update)
	}
}
