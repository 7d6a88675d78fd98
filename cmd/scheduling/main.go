package main

import (
	"context"
	"log"
	"net/http"

	"github.com/advwell/scheduling-backend/internal/api"
	audit_service "github.com/advwell/scheduling-backend/internal/business/audit"
	"github.com/advwell/scheduling-backend/internal/business/deadline"
	"github.com/advwell/scheduling-backend/internal/business/schedule"
	sync_service "github.com/advwell/scheduling-backend/internal/business/sync"
	"github.com/advwell/scheduling-backend/internal/config"
	"github.com/advwell/scheduling-backend/internal/database"
	auditdb "github.com/advwell/scheduling-backend/internal/database/audit"
	"github.com/advwell/scheduling-backend/internal/database/cases"
	"github.com/advwell/scheduling-backend/internal/database/events"
	"github.com/advwell/scheduling-backend/internal/database/syncrecords"
	"github.com/advwell/scheduling-backend/internal/database/user"
	"github.com/advwell/scheduling-backend/internal/notifications"
	"github.com/advwell/scheduling-backend/internal/pkg/crypto"
	"github.com/advwell/scheduling-backend/internal/pkg/gcal"
	"github.com/advwell/scheduling-backend/internal/pkg/jwt"
	"github.com/advwell/scheduling-backend/internal/redis"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx := context.Background()

	logger, err := initLogger()
	if err != nil {
		log.Fatalf("unable to initialize logger: %v", err)
	}

	jwts := jwt.NewManager()

	cipher, err := crypto.NewCipher([]byte(config.TokenEncryptionKey()))
	if err != nil {
		log.Fatalf("unable to initialize token cipher: %v", err)
	}

	redisPool := redis.NewRedisPool(logger)

	db, err := database.NewPGX(ctx)
	if err != nil {
		log.Fatalf("unable to initialize db: %v", err)
	}

	usersRepository := user.NewRepository()
	eventsRepository := events.NewRepository()
	casesRepository := cases.NewRepository()
	auditRepository := auditdb.NewRepository()
	syncRepository := syncrecords.NewRepository()

	recorder := audit_service.NewRecorder(logger, auditRepository)
	propagator := deadline.NewPropagator(logger, db, casesRepository, recorder)

	calendarClient := gcal.NewClient(logger, db, syncRepository, cipher)
	reconciler := sync_service.NewReconciler(logger, db, syncRepository, calendarClient)

	dispatcher := notifications.NewDispatcher(logger, redisPool, notifications.NewLogTransport(logger), config.NotificationTTL())
	go dispatcher.Run(ctx)

	reminders := notifications.NewSender(db, logger, eventsRepository, usersRepository, dispatcher, config.ReminderWindow())
	go reminders.Start(ctx)

	scheduleService := schedule.NewService(
		logger,
		db,
		eventsRepository,
		usersRepository,
		syncRepository,
		recorder,
		propagator,
		reconciler,
		dispatcher,
		config.SyncTimeout(),
	)

	api, err := api.NewApi(
		logger,
		jwts,
		db,
		usersRepository,
		scheduleService,
		recorder,
		calendarClient,
	)
	if err != nil {
		log.Fatalf("unable to initialize api: %v", err)
	}

	errLogger, err := zap.NewStdLogAt(logger.Desugar(), zap.ErrorLevel)
	if err != nil {
		logger.Fatalw("error initiating server logger", "err", err)
	}

	server := &http.Server{
		Addr:     ":" + config.Port(),
		Handler:  api,
		ErrorLog: errLogger,
	}

	logger.Infow("Started server", "port", config.Port())
	logger.Fatalw("server error", "err", server.ListenAndServe())
}

func initLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if config.Production() {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = conf.Build()
	}

	if err != nil {
		return nil, err
	}

	closer.Bind(func() {
		_ = logger.Sync()
	})

	return logger.Sugar(), nil
}
