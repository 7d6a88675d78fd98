package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/advwell/scheduling-backend/internal/model"
	"github.com/go-chi/chi/v5"
)

type eventRequest struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	EventType       string     `json:"type"`
	Priority        string     `json:"priority"`
	StartsAt        time.Time  `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at"`
	KanbanColumn    string     `json:"kanban_column"`
	Completed       bool       `json:"completed"`
	ClientID        *string    `json:"client_id"`
	CaseID          *string    `json:"case_id"`
	AssignedUserIDs []string   `json:"assigned_user_ids"`
}

type eventResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	EventType       string     `json:"type"`
	Priority        string     `json:"priority"`
	StartsAt        time.Time  `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at"`
	Completed       bool       `json:"completed"`
	KanbanColumn    string     `json:"kanban_column,omitempty"`
	ClientID        *string    `json:"client_id"`
	CaseID          *string    `json:"case_id"`
	CreatorID       string     `json:"creator_id"`
	MeetingLink     string     `json:"meeting_link,omitempty"`
	AssignedUserIDs []string   `json:"assigned_user_ids"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func mapToEventResp(event *model.Event) (*eventResponse, error) {
	return &eventResponse{
		ID:              event.ID,
		Title:           event.Title,
		Description:     event.Description,
		EventType:       string(event.EventType),
		Priority:        string(event.Priority),
		StartsAt:        event.StartsAt,
		EndsAt:          event.EndsAt,
		Completed:       event.Completed,
		KanbanColumn:    string(event.KanbanColumn),
		ClientID:        event.ClientID,
		CaseID:          event.CaseID,
		CreatorID:       event.CreatorID,
		MeetingLink:     event.MeetingLink,
		AssignedUserIDs: event.AssignedUserIDs,
		CreatedAt:       event.CreatedAt,
		UpdatedAt:       event.UpdatedAt,
	}, nil
}

// mutationError maps service errors onto responses: validation and conflict
// failures are the client's problem, everything else is ours.
func (a *Api) mutationError(w http.ResponseWriter, r *http.Request, err error) {
	validationErr := &model.ValidationError{}
	conflictErr := &model.ConflictError{}

	switch {
	case errors.As(err, &validationErr):
		a.failedValidationResponse(w, r, validationErr.Fields)
	case errors.As(err, &conflictErr):
		a.conflictResponse(w, r, conflictErr)
	case errors.Is(err, model.ErrNoRecord):
		a.notFoundResponse(w, r)
	default:
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) createEventHandler(w http.ResponseWriter, r *http.Request) {
	user, err := a.requestUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	req := &eventRequest{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	event, err := a.schedule.CreateEvent(r.Context(), user, &model.EventCreate{
		Title:           req.Title,
		Description:     req.Description,
		EventType:       model.EventType(req.EventType),
		Priority:        model.Priority(req.Priority),
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		KanbanColumn:    model.KanbanColumn(req.KanbanColumn),
		ClientID:        req.ClientID,
		CaseID:          req.CaseID,
		AssignedUserIDs: req.AssignedUserIDs,
	})
	if err != nil {
		a.mutationError(w, r, err)
		return
	}

	resp, _ := mapToEventResp(event)
	if err := a.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) updateEventHandler(w http.ResponseWriter, r *http.Request) {
	user, err := a.requestUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	req := &eventRequest{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	event, err := a.schedule.UpdateEvent(r.Context(), user, chi.URLParam(r, "eventID"), &model.EventUpdate{
		Title:           req.Title,
		Description:     req.Description,
		EventType:       model.EventType(req.EventType),
		Priority:        model.Priority(req.Priority),
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		KanbanColumn:    model.KanbanColumn(req.KanbanColumn),
		ClientID:        req.ClientID,
		CaseID:          req.CaseID,
		Completed:       req.Completed,
		AssignedUserIDs: req.AssignedUserIDs,
	})
	if err != nil {
		a.mutationError(w, r, err)
		return
	}

	resp, _ := mapToEventResp(event)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) deleteEventHandler(w http.ResponseWriter, r *http.Request) {
	user, err := a.requestUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.schedule.DeleteEvent(r.Context(), user, chi.URLParam(r, "eventID")); err != nil {
		a.mutationError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) toggleCompleteHandler(w http.ResponseWriter, r *http.Request) {
	user, err := a.requestUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	event, err := a.schedule.ToggleComplete(r.Context(), user, chi.URLParam(r, "eventID"))
	if err != nil {
		a.mutationError(w, r, err)
		return
	}

	resp, _ := mapToEventResp(event)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) moveTaskHandler(w http.ResponseWriter, r *http.Request) {
	user, err := a.requestUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	req := &struct {
		Column string `json:"kanban_column"`
	}{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	event, err := a.schedule.MoveTask(r.Context(), user, chi.URLParam(r, "eventID"), model.KanbanColumn(req.Column))
	if err != nil {
		a.mutationError(w, r, err)
		return
	}

	resp, _ := mapToEventResp(event)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getEventHandler(w http.ResponseWriter, r *http.Request) {
	user, err := a.requestUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	event, err := a.schedule.GetEvent(r.Context(), user.TenantID, chi.URLParam(r, "eventID"))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.notFoundResponse(w, r)
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("get event: %w", err))
		}
		return
	}

	resp, _ := mapToEventResp(event)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) listEventsHandler(w http.ResponseWriter, r *http.Request) {
	user, err := a.requestUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	filter, err := parseEventsQuery(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}
	filter.TenantID = user.TenantID

	events, err := a.schedule.ListEvents(r.Context(), *filter)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("list events: %w", err))
		return
	}

	resp, _ := mapSlice(events, mapToEventResp)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) upcomingEventsHandler(w http.ResponseWriter, r *http.Request) {
	user, err := a.requestUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil {
			a.badRequestResponse(w, r, fmt.Errorf("invalid limit: %w", err))
			return
		}
	}

	events, err := a.schedule.UpcomingEvents(r.Context(), user.TenantID, limit)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("upcoming events: %w", err))
		return
	}

	resp, _ := mapSlice(events, mapToEventResp)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) tasksDueTodayHandler(w http.ResponseWriter, r *http.Request) {
	user, err := a.requestUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	events, err := a.schedule.TasksDueToday(r.Context(), user.TenantID)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("tasks due today: %w", err))
		return
	}

	resp, _ := mapSlice(events, mapToEventResp)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func parseEventsQuery(r *http.Request) (*model.EventsFilter, error) {
	res := &model.EventsFilter{}
	query := r.URL.Query()

	if v := query.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, fmt.Errorf("invalid from: %w", err)
		}
		res.From = t
	}

	if v := query.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, fmt.Errorf("invalid to: %w", err)
		}
		res.To = t
	}

	if v := query.Get("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid completed: %w", err)
		}
		res.Completed = &completed
	}

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid limit: %w", err)
		}
		res.Limit = limit
	}

	if v := query.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid offset: %w", err)
		}
		res.Offset = offset
	}

	res.EventType = model.EventType(query.Get("type"))
	res.ClientID = query.Get("client_id")
	res.CaseID = query.Get("case_id")
	res.Search = query.Get("search")

	return res, nil
}
