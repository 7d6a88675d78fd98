package api

import (
	"context"
	"net/http"

	"github.com/advwell/scheduling-backend/internal/database"
	"github.com/advwell/scheduling-backend/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Api struct {
	handler http.Handler
	logger  *zap.SugaredLogger

	jwts jwtManager

	db       database.PGX
	users    userRepository
	schedule scheduleService
	audit    auditService
	calendar calendarClient
}

type jwtManager interface {
	GetIdFromToken(token string) (string, error)
}

type userRepository interface {
	GetUserByID(ctx context.Context, q database.Queryable, id string) (*model.User, error)
}

type scheduleService interface {
	CreateEvent(ctx context.Context, actor *model.User, info *model.EventCreate) (*model.Event, error)
	UpdateEvent(ctx context.Context, actor *model.User, id string, info *model.EventUpdate) (*model.Event, error)
	DeleteEvent(ctx context.Context, actor *model.User, id string) error
	ToggleComplete(ctx context.Context, actor *model.User, id string) (*model.Event, error)
	MoveTask(ctx context.Context, actor *model.User, id string, column model.KanbanColumn) (*model.Event, error)
	GetEvent(ctx context.Context, tenantID, id string) (*model.Event, error)
	ListEvents(ctx context.Context, filter model.EventsFilter) ([]*model.Event, error)
	UpcomingEvents(ctx context.Context, tenantID string, limit int) ([]*model.Event, error)
	TasksDueToday(ctx context.Context, tenantID string) ([]*model.Event, error)
}

type auditService interface {
	EntityHistory(ctx context.Context, q database.Queryable, tenantID string, entityType model.AuditEntityType, entityID string) ([]*model.AuditEntry, error)
}

type calendarClient interface {
	AuthURL(state string) string
	HandleCallback(ctx context.Context, userID, code string) (*model.CalendarAccount, error)
	AccountStatus(ctx context.Context, userID string) (*model.CalendarAccount, error)
	SetSyncEnabled(ctx context.Context, userID string, enabled bool) error
	Disconnect(ctx context.Context, userID string) error
}

func NewApi(
	logger *zap.SugaredLogger,
	jwts jwtManager,
	db database.PGX,
	users userRepository,
	schedule scheduleService,
	audit auditService,
	calendar calendarClient,
) (*Api, error) {
	a := &Api{
		logger:   logger,
		jwts:     jwts,
		db:       db,
		users:    users,
		schedule: schedule,
		audit:    audit,
		calendar: calendar,
	}
	a.setupHandler()

	return a, nil
}

func (a *Api) setupHandler() {
	middleware.DefaultLogger = func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.logger.Debugw(r.URL.RequestURI(),
				"addr", r.RemoteAddr,
				"protocol", r.Proto,
				"method", r.Method,
			)
			next.ServeHTTP(w, r)
		})
	}

	r := chi.NewMux()

	r.Use(middleware.Logger, middleware.Recoverer, middleware.StripSlashes)
	r.NotFound(a.notFoundResponse)
	r.MethodNotAllowed(a.methodNotAllowedResponse)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.With(a.auth, a.userCtx).Route("/", func(r chi.Router) {
		r.Route("/events", func(r chi.Router) {
			r.Post("/", a.createEventHandler)
			r.Get("/", a.listEventsHandler)
			r.Get("/upcoming", a.upcomingEventsHandler)
			r.Get("/tasks/today", a.tasksDueTodayHandler)
			r.Route("/{eventID}", func(r chi.Router) {
				r.Get("/", a.getEventHandler)
				r.Put("/", a.updateEventHandler)
				r.Delete("/", a.deleteEventHandler)
				r.Post("/toggle", a.toggleCompleteHandler)
				r.Post("/move", a.moveTaskHandler)
				r.Get("/audit", a.eventAuditHandler)
			})
		})

		r.Route("/calendar", func(r chi.Router) {
			r.Get("/auth", a.calendarAuthHandler)
			r.Get("/callback", a.calendarCallbackHandler)
			r.Get("/status", a.calendarStatusHandler)
			r.Put("/settings", a.calendarSettingsHandler)
			r.Delete("/", a.calendarDisconnectHandler)
		})
	})

	a.handler = r
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}
