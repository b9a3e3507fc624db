package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"levelminds/internal/config"
	"levelminds/internal/database"
	"levelminds/internal/database/migration"
	dbpostgres "levelminds/internal/database/postgres"
	"levelminds/internal/infrastructure/cache"
	"levelminds/internal/infrastructure/persistence/postgres"
	"levelminds/internal/notification"
	"levelminds/internal/pkg/jwt"
	"levelminds/internal/repository"
	"levelminds/internal/usecase"
	ucauth "levelminds/internal/usecase/auth"
	"levelminds/internal/ws"
)

// Container owns the process-wide dependencies and the background workers started
// from them.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	JWT    *jwt.HMACService
	Hub    *ws.Hub

	NotifyPool *notification.Pool
	Notifier   *notification.Service

	Auth         *usecase.Auth
	Profiles     *usecase.Profile
	Jobs         *usecase.Job
	Matching     *usecase.Matching
	Applications *usecase.Application
	Assessments  *usecase.Assessment
	Skills       *usecase.PersonalSkills
	Catalog      *usecase.AssessmentCatalog
	MasterData   *usecase.MasterData
	Settings     *usecase.Settings
	Dashboard    *usecase.Dashboard
	Help         *usecase.Help
	Admin        *usecase.Admin
	Inbox        *usecase.Notifications

	cancel context.CancelFunc
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	runner := migration.Runner{Logger: logger.Named("migrate")}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	c := NewContainerWithDB(cfg, db, cache.NewRedis(ctx, cfg.Redis, logger.Named("cache")), logger)
	return c, nil
}

// NewContainerWithDB wires the usecases over an already migrated database. It starts
// the websocket hub and the notification workers; Close stops them.
func NewContainerWithDB(cfg config.Config, db database.DB, redis *cache.Redis, logger *zap.Logger) *Container {
	if logger == nil {
		logger = zap.NewNop()
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	users := postgres.NewUserRepository(db)
	jobRepo := repository.NewPostgresJobRepository(db)
	appRepo := repository.NewPostgresApplicationRepository(db)
	assessmentRepo := repository.NewPostgresAssessmentRepository(db)
	rubricRepo := repository.NewPostgresAssessmentSkillRepository(db)
	masterRepo := repository.NewPostgresMasterDataRepository(db)
	settingRepo := repository.NewPostgresSettingRepository(db)
	ticketRepo := repository.NewPostgresHelpTicketRepository(db)
	notificationRepo := repository.NewPostgresNotificationRepository(db)
	skillRepo := repository.NewPostgresPersonalSkillRepository(db)

	runCtx, cancel := context.WithCancel(context.Background())

	hub := ws.NewHub(logger.Named("ws"))
	go hub.Run(runCtx)

	pool := notification.NewPool(cfg.Notification.Workers, cfg.Notification.Buffer, func(err error) {
		logger.Warn("notification task failed", zap.Error(err))
	})
	pool.Run(runCtx)
	notifier := notification.NewService(notificationRepo, hub, pool, logger.Named("notify"))

	matched := usecase.NewMatchedJobsCache(redis, cfg.Redis.TTL, logger)
	settings := usecase.NewSettingsUsecase(settingRepo, cfg.Matching.DefaultEnabled, matched, logger)
	assessments := usecase.NewAssessmentUsecase(users, rubricRepo, assessmentRepo, matched, notifier, logger)

	c := &Container{
		Config:     cfg,
		Logger:     logger,
		DB:         db,
		Cache:      redis,
		JWT:        jwtSvc,
		Hub:        hub,
		NotifyPool: pool,
		Notifier:   notifier,

		Auth:         usecase.NewAuthUsecase(ucauth.NewService(users), users, jwtSvc),
		Profiles:     usecase.NewProfileUsecase(users, users, matched, logger),
		Jobs:         usecase.NewJobUsecase(users, jobRepo, matched, logger),
		Matching:     usecase.NewMatchingUsecase(users, assessmentRepo, masterRepo, jobRepo, settings, matched, logger),
		Applications: usecase.NewApplicationUsecase(users, users, jobRepo, appRepo, notifier, logger),
		Assessments:  assessments,
		Skills:       usecase.NewPersonalSkillUsecase(users, skillRepo, logger),
		Catalog:      usecase.NewAssessmentCatalogUsecase(rubricRepo, matched, logger),
		MasterData:   usecase.NewMasterDataUsecase(masterRepo, redis, cfg.Redis.TTL, matched, logger),
		Settings:     settings,
		Dashboard:    usecase.NewDashboardUsecase(users, users, jobRepo, appRepo, assessmentRepo, ticketRepo, logger),
		Help:         usecase.NewHelpUsecase(ticketRepo, users, notifier, logger),
		Admin:        usecase.NewAdminUsecase(users, users, assessments, matched, logger),
		Inbox:        usecase.NewNotificationUsecase(notificationRepo, logger),

		cancel: cancel,
	}
	return c
}

// Close drains queued notifications before stopping the hub and releasing connections.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.NotifyPool != nil {
		c.NotifyPool.Close()
	}
	if c.cancel != nil {
		c.cancel()
	}

	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
