package audit

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/advwell/scheduling-backend/internal/database"
	"github.com/advwell/scheduling-backend/internal/model"
	"go.uber.org/zap"
)

type auditRepository interface {
	CreateEntry(ctx context.Context, q database.Queryable, entry *model.AuditEntry) (string, error)
	GetByEntity(ctx context.Context, q database.Queryable, tenantID string, entityType model.AuditEntityType, entityID string) ([]*model.AuditEntry, error)
}

// Recorder turns entity snapshots into immutable audit rows. It runs inside
// the caller's transaction, so a failed write aborts the mutation it belongs
// to.
type Recorder struct {
	logger *zap.SugaredLogger
	audit  auditRepository
}

func NewRecorder(logger *zap.SugaredLogger, audit auditRepository) *Recorder {
	return &Recorder{
		logger: logger,
		audit:  audit,
	}
}

func (r *Recorder) RecordEventCreate(ctx context.Context, q database.Queryable, event *model.Event, actor *model.User) error {
	entry := &model.AuditEntry{
		TenantID:    event.TenantID,
		EntityType:  model.AuditEntityEvent,
		EntityID:    event.ID,
		EntityName:  event.Title,
		ActorID:     actor.ID,
		ActorName:   actor.FullName,
		Action:      model.AuditActionCreate,
		Description: fmt.Sprintf("%s %q created", eventTypeLabel(event.EventType), event.Title),
		NewValues:   eventRecord(event),
	}

	if _, err := r.audit.CreateEntry(ctx, q, entry); err != nil {
		return fmt.Errorf("create audit entry: %w", err)
	}

	return nil
}

// RecordEventUpdate diffs the two snapshots and writes an UPDATE entry. When
// nothing outside the metadata fields changed it writes nothing and reports
// success.
func (r *Recorder) RecordEventUpdate(ctx context.Context, q database.Queryable, before, after *model.Event, actor *model.User) error {
	oldRecord := eventRecord(before)
	newRecord := eventRecord(after)

	changed := changedFields(oldRecord, newRecord)
	if len(changed) == 0 {
		return nil
	}

	entry := &model.AuditEntry{
		TenantID:      after.TenantID,
		EntityType:    model.AuditEntityEvent,
		EntityID:      after.ID,
		EntityName:    after.Title,
		ActorID:       actor.ID,
		ActorName:     actor.FullName,
		Action:        model.AuditActionUpdate,
		Description:   updateDescription(eventTypeLabel(after.EventType), after.Title, changed),
		OldValues:     oldRecord,
		NewValues:     newRecord,
		ChangedFields: changed,
	}

	if _, err := r.audit.CreateEntry(ctx, q, entry); err != nil {
		return fmt.Errorf("create audit entry: %w", err)
	}

	return nil
}

func (r *Recorder) RecordEventDelete(ctx context.Context, q database.Queryable, event *model.Event, actor *model.User) error {
	entry := &model.AuditEntry{
		TenantID:    event.TenantID,
		EntityType:  model.AuditEntityEvent,
		EntityID:    event.ID,
		EntityName:  event.Title,
		ActorID:     actor.ID,
		ActorName:   actor.FullName,
		Action:      model.AuditActionDelete,
		Description: fmt.Sprintf("%s %q deleted", eventTypeLabel(event.EventType), event.Title),
		OldValues:   eventRecord(event),
	}

	if _, err := r.audit.CreateEntry(ctx, q, entry); err != nil {
		return fmt.Errorf("create audit entry: %w", err)
	}

	return nil
}

// RecordCaseUpdate covers deadline mirroring on linked cases. Unlike event
// entries it is best effort: the mirror itself already is.
func (r *Recorder) RecordCaseUpdate(ctx context.Context, q database.Queryable, before, after *model.Case, actor *model.User) error {
	oldRecord := caseRecord(before)
	newRecord := caseRecord(after)

	changed := changedFields(oldRecord, newRecord)
	if len(changed) == 0 {
		return nil
	}

	entry := &model.AuditEntry{
		TenantID:      after.TenantID,
		EntityType:    model.AuditEntityCase,
		EntityID:      after.ID,
		EntityName:    after.CaseNumber,
		ActorID:       actor.ID,
		ActorName:     actor.FullName,
		Action:        model.AuditActionUpdate,
		Description:   updateDescription("Case", after.CaseNumber, changed),
		OldValues:     oldRecord,
		NewValues:     newRecord,
		ChangedFields: changed,
	}

	if _, err := r.audit.CreateEntry(ctx, q, entry); err != nil {
		return fmt.Errorf("create audit entry: %w", err)
	}

	return nil
}

func (r *Recorder) EntityHistory(ctx context.Context, q database.Queryable, tenantID string, entityType model.AuditEntityType, entityID string) ([]*model.AuditEntry, error) {
	entries, err := r.audit.GetByEntity(ctx, q, tenantID, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("get audit entries: %w", err)
	}

	return entries, nil
}

// changedFields returns the sorted set of keys whose canonical values differ,
// looking at both records so added and removed keys count too.
func changedFields(oldRecord, newRecord map[string]interface{}) []string {
	keys := make(map[string]struct{}, len(oldRecord)+len(newRecord))
	for key := range oldRecord {
		keys[key] = struct{}{}
	}
	for key := range newRecord {
		keys[key] = struct{}{}
	}

	var changed []string
	for key := range keys {
		if _, ok := metadataFields[key]; ok {
			continue
		}

		if !valuesEqual(oldRecord[key], newRecord[key]) {
			changed = append(changed, key)
		}
	}

	sort.Strings(changed)
	return changed
}

func updateDescription(typeLabel, name string, changed []string) string {
	labels := make([]string, len(changed))
	for i, field := range changed {
		labels[i] = fieldLabel(field)
	}

	return fmt.Sprintf("%s %q updated. Changed: %s", typeLabel, name, strings.Join(labels, ", "))
}
