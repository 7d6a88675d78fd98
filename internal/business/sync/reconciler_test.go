package sync_test

import (
	"context"
	"errors"
	gosync "sync"
	"testing"
	"time"

	"github.com/advwell/scheduling-backend/internal/business/sync"
	"github.com/advwell/scheduling-backend/internal/database"
	"github.com/advwell/scheduling-backend/internal/model"
	"go.uber.org/zap"
)

type fakeProvider struct {
	mu       gosync.Mutex
	disabled map[string]bool
	failFor  map[string]bool

	created []string
	updated []string
	deleted []string
	nextID  int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		disabled: map[string]bool{},
		failFor:  map[string]bool{},
	}
}

func (p *fakeProvider) IsSyncEnabled(_ context.Context, userID string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.disabled[userID], nil
}

func (p *fakeProvider) CreateEvent(_ context.Context, userID string, _ *model.Event) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failFor[userID] {
		return "", errors.New("provider unavailable")
	}
	p.created = append(p.created, userID)
	p.nextID++
	return "ext-" + userID, nil
}

func (p *fakeProvider) UpdateEvent(_ context.Context, userID, _ string, _ *model.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failFor[userID] {
		return errors.New("provider unavailable")
	}
	p.updated = append(p.updated, userID)
	return nil
}

func (p *fakeProvider) DeleteEvent(_ context.Context, userID, _ string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failFor[userID] {
		return errors.New("provider unavailable")
	}
	p.deleted = append(p.deleted, userID)
	return nil
}

type fakeRecords struct {
	mu      gosync.Mutex
	records map[string]*model.SyncRecord // keyed by user id
}

func newFakeRecords(records ...*model.SyncRecord) *fakeRecords {
	f := &fakeRecords{records: map[string]*model.SyncRecord{}}
	for _, r := range records {
		f.records[r.UserID] = r
	}
	return f
}

func (f *fakeRecords) GetByEvent(_ context.Context, _ database.Queryable, _ string) ([]*model.SyncRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []*model.SyncRecord
	for _, r := range f.records {
		res = append(res, r)
	}
	return res, nil
}

func (f *fakeRecords) CreateRecord(_ context.Context, _ database.Queryable, record *model.SyncRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[record.UserID] = record
	return nil
}

func (f *fakeRecords) DeleteRecord(_ context.Context, _ database.Queryable, _, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, userID)
	return nil
}

func (f *fakeRecords) has(userID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.records[userID]
	return ok
}

func syncEvent() *model.Event {
	return &model.Event{
		ID: "event-1",
		EventCreate: model.EventCreate{
			TenantID:  "tenant",
			Title:     "Hearing prep",
			EventType: model.EventTypeAppointment,
			StartsAt:  time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
			CreatorID: "creator",
		},
	}
}

func record(userID string) *model.SyncRecord {
	return &model.SyncRecord{EventID: "event-1", UserID: userID, ExternalID: "ext-" + userID}
}

func TestReconcileCreatesMissing(t *testing.T) {
	provider := newFakeProvider()
	records := newFakeRecords()
	r := sync.NewReconciler(zap.NewNop().Sugar(), nil, records, provider)

	r.Reconcile(context.Background(), syncEvent(), []string{"creator", "lawyer-1"})

	if !records.has("creator") || !records.has("lawyer-1") {
		t.Error("records not created for desired users")
	}
	if len(provider.created) != 2 {
		t.Errorf("provider creates = %d, want 2", len(provider.created))
	}
}

func TestReconcileSkipsDisabledAccounts(t *testing.T) {
	provider := newFakeProvider()
	provider.disabled["lawyer-1"] = true
	records := newFakeRecords()
	r := sync.NewReconciler(zap.NewNop().Sugar(), nil, records, provider)

	r.Reconcile(context.Background(), syncEvent(), []string{"creator", "lawyer-1"})

	if records.has("lawyer-1") {
		t.Error("record created for user with sync disabled")
	}
	if !records.has("creator") {
		t.Error("record missing for enabled user")
	}
}

func TestReconcileFailureIsolation(t *testing.T) {
	provider := newFakeProvider()
	provider.failFor["lawyer-1"] = true
	records := newFakeRecords()
	r := sync.NewReconciler(zap.NewNop().Sugar(), nil, records, provider)

	r.Reconcile(context.Background(), syncEvent(), []string{"creator", "lawyer-1", "lawyer-2"})

	if records.has("lawyer-1") {
		t.Error("record created despite provider failure")
	}
	if !records.has("creator") || !records.has("lawyer-2") {
		t.Error("one user's failure blocked the others")
	}
}

func TestReconcileUpdatesExisting(t *testing.T) {
	provider := newFakeProvider()
	records := newFakeRecords(record("creator"))
	r := sync.NewReconciler(zap.NewNop().Sugar(), nil, records, provider)

	r.Reconcile(context.Background(), syncEvent(), []string{"creator"})

	if len(provider.created) != 0 {
		t.Errorf("provider creates = %d, existing pair must be updated not recreated", len(provider.created))
	}
	if len(provider.updated) != 1 || provider.updated[0] != "creator" {
		t.Errorf("provider updates = %v", provider.updated)
	}
}

func TestReconcileRemovesDeparted(t *testing.T) {
	provider := newFakeProvider()
	records := newFakeRecords(record("creator"), record("lawyer-1"))
	r := sync.NewReconciler(zap.NewNop().Sugar(), nil, records, provider)

	r.Reconcile(context.Background(), syncEvent(), []string{"creator"})

	if records.has("lawyer-1") {
		t.Error("record kept for user no longer on the event")
	}
	if len(provider.deleted) != 1 || provider.deleted[0] != "lawyer-1" {
		t.Errorf("provider deletes = %v", provider.deleted)
	}
}

func TestReconcileRemovesRecordDespiteProviderFailure(t *testing.T) {
	provider := newFakeProvider()
	provider.failFor["lawyer-1"] = true
	records := newFakeRecords(record("lawyer-1"))
	r := sync.NewReconciler(zap.NewNop().Sugar(), nil, records, provider)

	r.Reconcile(context.Background(), syncEvent(), nil)

	if records.has("lawyer-1") {
		t.Error("record kept after failed remote delete; it must be removed regardless")
	}
}

func TestReconcileIdempotent(t *testing.T) {
	provider := newFakeProvider()
	records := newFakeRecords()
	r := sync.NewReconciler(zap.NewNop().Sugar(), nil, records, provider)

	desired := []string{"creator", "lawyer-1"}
	r.Reconcile(context.Background(), syncEvent(), desired)
	r.Reconcile(context.Background(), syncEvent(), desired)

	if len(provider.created) != 2 {
		t.Errorf("provider creates = %d, second run must not create again", len(provider.created))
	}
	if len(provider.updated) != 2 {
		t.Errorf("provider updates = %d, second run updates the existing pairs", len(provider.updated))
	}
}

func TestCleanupDeleted(t *testing.T) {
	provider := newFakeProvider()
	provider.failFor["lawyer-1"] = true
	records := newFakeRecords(record("creator"), record("lawyer-1"), record("lawyer-2"))
	r := sync.NewReconciler(zap.NewNop().Sugar(), nil, records, provider)

	stored, _ := records.GetByEvent(context.Background(), nil, "event-1")
	r.CleanupDeleted(context.Background(), syncEvent(), stored)

	for _, userID := range []string{"creator", "lawyer-1", "lawyer-2"} {
		if records.has(userID) {
			t.Errorf("record for %s kept after event deletion", userID)
		}
	}
	if len(provider.deleted) != 2 {
		t.Errorf("provider deletes = %d, want 2 successful", len(provider.deleted))
	}
}
