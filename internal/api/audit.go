package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/advwell/scheduling-backend/internal/model"
	"github.com/go-chi/chi/v5"
)

type auditEntryResponse struct {
	ID            string                 `json:"id"`
	EntityType    string                 `json:"entity_type"`
	EntityID      string                 `json:"entity_id"`
	EntityName    string                 `json:"entity_name"`
	ActorID       string                 `json:"actor_id"`
	ActorName     string                 `json:"actor_name"`
	Action        string                 `json:"action"`
	Description   string                 `json:"description"`
	OldValues     map[string]interface{} `json:"old_values,omitempty"`
	NewValues     map[string]interface{} `json:"new_values,omitempty"`
	ChangedFields []string               `json:"changed_fields,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

func (a *Api) eventAuditHandler(w http.ResponseWriter, r *http.Request) {
	user, err := a.requestUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	entries, err := a.audit.EntityHistory(r.Context(), a.db, user.TenantID, model.AuditEntityEvent, chi.URLParam(r, "eventID"))
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("entity history: %w", err))
		return
	}

	resp, _ := mapSlice(entries, func(e *model.AuditEntry) (*auditEntryResponse, error) {
		return &auditEntryResponse{
			ID:            e.ID,
			EntityType:    string(e.EntityType),
			EntityID:      e.EntityID,
			EntityName:    e.EntityName,
			ActorID:       e.ActorID,
			ActorName:     e.ActorName,
			Action:        string(e.Action),
			Description:   e.Description,
			OldValues:     e.OldValues,
			NewValues:     e.NewValues,
			ChangedFields: e.ChangedFields,
			CreatedAt:     e.CreatedAt,
		}, nil
	})

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}
