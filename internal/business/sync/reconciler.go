package sync

import (
	"context"

	"github.com/advwell/scheduling-backend/internal/database"
	"github.com/advwell/scheduling-backend/internal/model"
	"github.com/advwell/scheduling-backend/internal/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Provider is the external calendar behind the sync records. All calls are
// on behalf of a single user.
type Provider interface {
	IsSyncEnabled(ctx context.Context, userID string) (bool, error)
	CreateEvent(ctx context.Context, userID string, event *model.Event) (string, error)
	UpdateEvent(ctx context.Context, userID, externalID string, event *model.Event) error
	DeleteEvent(ctx context.Context, userID, externalID string) error
}

type syncRepository interface {
	GetByEvent(ctx context.Context, q database.Queryable, eventID string) ([]*model.SyncRecord, error)
	CreateRecord(ctx context.Context, q database.Queryable, record *model.SyncRecord) error
	DeleteRecord(ctx context.Context, q database.Queryable, eventID, userID string) error
}

// Reconciler drives each (event, user) pair towards the desired state: a
// remote copy exists exactly for the event's creator and assignees. One
// user's provider failure never blocks the others; the pair is simply left
// as-is and converges on the next reconcile.
type Reconciler struct {
	logger   *zap.SugaredLogger
	db       database.Queryable
	records  syncRepository
	provider Provider
}

func NewReconciler(logger *zap.SugaredLogger, db database.Queryable, records syncRepository, provider Provider) *Reconciler {
	return &Reconciler{
		logger:   logger,
		db:       db,
		records:  records,
		provider: provider,
	}
}

// Reconcile compares the stored sync records for the event against
// desiredUserIDs and issues the provider calls needed to close the gap.
// Safe to call repeatedly with the same arguments.
func (r *Reconciler) Reconcile(ctx context.Context, event *model.Event, desiredUserIDs []string) {
	existing, err := r.records.GetByEvent(ctx, r.db, event.ID)
	if err != nil {
		r.logger.Errorw("sync reconcile: load records", "event_id", event.ID, "err", err)
		return
	}

	desired := make(map[string]struct{}, len(desiredUserIDs))
	for _, id := range desiredUserIDs {
		desired[id] = struct{}{}
	}

	existingByUser := make(map[string]*model.SyncRecord, len(existing))
	for _, record := range existing {
		existingByUser[record.UserID] = record
	}

	g, gctx := errgroup.WithContext(ctx)

	for userID := range desired {
		userID := userID
		record := existingByUser[userID]
		g.Go(func() error {
			if record != nil {
				r.updateOne(gctx, event, userID, record)
			} else {
				r.createOne(gctx, event, userID)
			}
			return nil
		})
	}

	for userID, record := range existingByUser {
		if _, ok := desired[userID]; ok {
			continue
		}
		userID, record := userID, record
		g.Go(func() error {
			r.removeOne(gctx, event, userID, record)
			return nil
		})
	}

	_ = g.Wait()
}

// CleanupDeleted removes the remote copies of a deleted event. The records
// are passed in because the rows are gone by the time this runs.
func (r *Reconciler) CleanupDeleted(ctx context.Context, event *model.Event, records []*model.SyncRecord) {
	g, gctx := errgroup.WithContext(ctx)

	for _, record := range records {
		record := record
		g.Go(func() error {
			r.removeOne(gctx, event, record.UserID, record)
			return nil
		})
	}

	_ = g.Wait()
}

func (r *Reconciler) createOne(ctx context.Context, event *model.Event, userID string) {
	enabled, err := r.provider.IsSyncEnabled(ctx, userID)
	if err != nil {
		r.logger.Errorw("sync reconcile: check account", "event_id", event.ID, "user_id", userID, "err", err)
		return
	}
	if !enabled {
		return
	}

	externalID, err := r.provider.CreateEvent(ctx, userID, event)
	metrics.ObserveProviderCall("create", err)
	if err != nil {
		r.logger.Errorw("sync reconcile: create remote event", "event_id", event.ID, "user_id", userID, "err", err)
		return
	}

	record := &model.SyncRecord{
		EventID:    event.ID,
		UserID:     userID,
		ExternalID: externalID,
	}
	if err := r.records.CreateRecord(ctx, r.db, record); err != nil {
		r.logger.Errorw("sync reconcile: save record", "event_id", event.ID, "user_id", userID, "err", err)
	}
}

func (r *Reconciler) updateOne(ctx context.Context, event *model.Event, userID string, record *model.SyncRecord) {
	enabled, err := r.provider.IsSyncEnabled(ctx, userID)
	if err != nil {
		r.logger.Errorw("sync reconcile: check account", "event_id", event.ID, "user_id", userID, "err", err)
		return
	}
	if !enabled {
		return
	}

	err = r.provider.UpdateEvent(ctx, userID, record.ExternalID, event)
	metrics.ObserveProviderCall("update", err)
	if err != nil {
		r.logger.Errorw("sync reconcile: update remote event", "event_id", event.ID, "user_id", userID, "err", err)
	}
}

// removeOne drops the local record even when the provider call fails, so a
// dead remote copy can never block unlinking. The stray remote event is the
// lesser evil.
func (r *Reconciler) removeOne(ctx context.Context, event *model.Event, userID string, record *model.SyncRecord) {
	enabled, err := r.provider.IsSyncEnabled(ctx, userID)
	if err != nil {
		r.logger.Errorw("sync reconcile: check account", "event_id", event.ID, "user_id", userID, "err", err)
	} else if enabled {
		err = r.provider.DeleteEvent(ctx, userID, record.ExternalID)
		metrics.ObserveProviderCall("delete", err)
		if err != nil {
			r.logger.Errorw("sync reconcile: delete remote event", "event_id", event.ID, "user_id", userID, "err", err)
		}
	}

	if err := r.records.DeleteRecord(ctx, r.db, event.ID, userID); err != nil {
		r.logger.Errorw("sync reconcile: delete record", "event_id", event.ID, "user_id", userID, "err", err)
	}
}
