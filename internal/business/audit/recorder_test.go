package audit_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/advwell/scheduling-backend/internal/business/audit"
	"github.com/advwell/scheduling-backend/internal/database"
	"github.com/advwell/scheduling-backend/internal/model"
	"go.uber.org/zap"
)

type fakeAuditRepo struct {
	entries []*model.AuditEntry
}

func (f *fakeAuditRepo) CreateEntry(_ context.Context, _ database.Queryable, entry *model.AuditEntry) (string, error) {
	f.entries = append(f.entries, entry)
	return "entry-1", nil
}

func (f *fakeAuditRepo) GetByEntity(_ context.Context, _ database.Queryable, _ string, _ model.AuditEntityType, _ string) ([]*model.AuditEntry, error) {
	return f.entries, nil
}

func newRecorder(t *testing.T) (*audit.Recorder, *fakeAuditRepo) {
	t.Helper()
	repo := &fakeAuditRepo{}
	return audit.NewRecorder(zap.NewNop().Sugar(), repo), repo
}

func sampleEvent() *model.Event {
	return &model.Event{
		ID:        "event-1",
		Completed: false,
		EventCreate: model.EventCreate{
			TenantID:  "tenant",
			Title:     "File motion",
			EventType: model.EventTypeTask,
			Priority:  model.PriorityHigh,
			StartsAt:  time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
			CreatorID: "creator",
		},
	}
}

func sampleActor() *model.User {
	return &model.User{ID: "actor-1", TenantID: "tenant", FullName: "Anna Berg"}
}

func TestRecordEventUpdateNoChanges(t *testing.T) {
	recorder, repo := newRecorder(t)

	before := sampleEvent()
	after := sampleEvent()

	if err := recorder.RecordEventUpdate(context.Background(), nil, before, after, sampleActor()); err != nil {
		t.Fatalf("RecordEventUpdate error: %v", err)
	}

	if len(repo.entries) != 0 {
		t.Errorf("entries = %d, identical snapshots must not be recorded", len(repo.entries))
	}
}

func TestRecordEventUpdateMetadataOnlyChange(t *testing.T) {
	recorder, repo := newRecorder(t)

	before := sampleEvent()
	after := sampleEvent()
	clientID := "client-7"
	after.ClientID = &clientID

	if err := recorder.RecordEventUpdate(context.Background(), nil, before, after, sampleActor()); err != nil {
		t.Fatalf("RecordEventUpdate error: %v", err)
	}

	if len(repo.entries) != 0 {
		t.Errorf("entries = %d, metadata-only changes must not be recorded", len(repo.entries))
	}
}

func TestRecordEventUpdate(t *testing.T) {
	recorder, repo := newRecorder(t)

	before := sampleEvent()
	after := sampleEvent()
	after.Title = "File amended motion"
	after.StartsAt = after.StartsAt.Add(2 * time.Hour)

	if err := recorder.RecordEventUpdate(context.Background(), nil, before, after, sampleActor()); err != nil {
		t.Fatalf("RecordEventUpdate error: %v", err)
	}

	if len(repo.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(repo.entries))
	}
	entry := repo.entries[0]

	if entry.Action != model.AuditActionUpdate || entry.EntityType != model.AuditEntityEvent {
		t.Errorf("action/entity = %v/%v", entry.Action, entry.EntityType)
	}
	if entry.EntityID != "event-1" || entry.EntityName != "File amended motion" {
		t.Errorf("entity = %q %q", entry.EntityID, entry.EntityName)
	}
	if entry.ActorID != "actor-1" || entry.ActorName != "Anna Berg" {
		t.Errorf("actor = %q %q", entry.ActorID, entry.ActorName)
	}

	// changed fields are sorted for stable output
	if len(entry.ChangedFields) != 2 || entry.ChangedFields[0] != "startsAt" || entry.ChangedFields[1] != "title" {
		t.Errorf("changed fields = %v", entry.ChangedFields)
	}

	if got := entry.OldValues["startsAt"]; got != "2026-09-01T09:00:00Z" {
		t.Errorf("old startsAt = %v, want canonical RFC3339", got)
	}
	if got := entry.NewValues["startsAt"]; got != "2026-09-01T11:00:00Z" {
		t.Errorf("new startsAt = %v", got)
	}

	if !strings.Contains(entry.Description, "Task") || !strings.Contains(entry.Description, "Start, Title") {
		t.Errorf("description = %q", entry.Description)
	}
}

func TestRecordEventUpdateNilEndComparison(t *testing.T) {
	recorder, repo := newRecorder(t)

	before := sampleEvent()
	after := sampleEvent()
	end := after.StartsAt.Add(time.Hour)
	after.EndsAt = &end

	if err := recorder.RecordEventUpdate(context.Background(), nil, before, after, sampleActor()); err != nil {
		t.Fatalf("RecordEventUpdate error: %v", err)
	}

	if len(repo.entries) != 1 {
		t.Fatalf("entries = %d, want 1: nil to value is a change", len(repo.entries))
	}
	entry := repo.entries[0]
	if len(entry.ChangedFields) != 1 || entry.ChangedFields[0] != "endsAt" {
		t.Errorf("changed fields = %v", entry.ChangedFields)
	}
	if entry.OldValues["endsAt"] != nil {
		t.Errorf("old endsAt = %v, want nil", entry.OldValues["endsAt"])
	}
}

func TestRecordEventCreateAndDelete(t *testing.T) {
	recorder, repo := newRecorder(t)
	event := sampleEvent()

	if err := recorder.RecordEventCreate(context.Background(), nil, event, sampleActor()); err != nil {
		t.Fatalf("RecordEventCreate error: %v", err)
	}
	if err := recorder.RecordEventDelete(context.Background(), nil, event, sampleActor()); err != nil {
		t.Fatalf("RecordEventDelete error: %v", err)
	}

	if len(repo.entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(repo.entries))
	}

	created, deleted := repo.entries[0], repo.entries[1]
	if created.Action != model.AuditActionCreate || created.OldValues != nil {
		t.Errorf("create entry = %+v", created)
	}
	if deleted.Action != model.AuditActionDelete || deleted.NewValues != nil {
		t.Errorf("delete entry = %+v", deleted)
	}
	if created.NewValues["title"] != "File motion" {
		t.Errorf("snapshot title = %v", created.NewValues["title"])
	}
}

func TestRecordCaseUpdate(t *testing.T) {
	recorder, repo := newRecorder(t)

	deadline := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	before := &model.Case{ID: "case-1", TenantID: "tenant", CaseNumber: "A-17", Subject: "Estate"}
	after := &model.Case{ID: "case-1", TenantID: "tenant", CaseNumber: "A-17", Subject: "Estate", Deadline: &deadline}

	if err := recorder.RecordCaseUpdate(context.Background(), nil, before, after, sampleActor()); err != nil {
		t.Fatalf("RecordCaseUpdate error: %v", err)
	}

	if len(repo.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(repo.entries))
	}
	entry := repo.entries[0]
	if entry.EntityType != model.AuditEntityCase || entry.EntityName != "A-17" {
		t.Errorf("entry = %+v", entry)
	}
	if len(entry.ChangedFields) != 1 || entry.ChangedFields[0] != "deadline" {
		t.Errorf("changed fields = %v", entry.ChangedFields)
	}
}
