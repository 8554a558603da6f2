package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	agendaCommands "github.com/felixgeelhaar/studora/internal/agenda/application/commands"
	agendaQueries "github.com/felixgeelhaar/studora/internal/agenda/application/queries"
	agendaDomain "github.com/felixgeelhaar/studora/internal/agenda/domain"
	agendaPersistence "github.com/felixgeelhaar/studora/internal/agenda/infrastructure/persistence"
	identitySettings "github.com/felixgeelhaar/studora/internal/identity/application/settings"
	identityDomain "github.com/felixgeelhaar/studora/internal/identity/domain"
	identityPersistence "github.com/felixgeelhaar/studora/internal/identity/infrastructure/persistence"
	insightsQueries "github.com/felixgeelhaar/studora/internal/insights/application/queries"
	insightsCache "github.com/felixgeelhaar/studora/internal/insights/infrastructure/cache"
	"github.com/felixgeelhaar/studora/internal/narrator"
	planCommands "github.com/felixgeelhaar/studora/internal/planning/application/commands"
	planQueries "github.com/felixgeelhaar/studora/internal/planning/application/queries"
	planningDomain "github.com/felixgeelhaar/studora/internal/planning/domain"
	planPersistence "github.com/felixgeelhaar/studora/internal/planning/infrastructure/persistence"
	sharedApplication "github.com/felixgeelhaar/studora/internal/shared/application"
	"github.com/felixgeelhaar/studora/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/studora/internal/shared/infrastructure/outbox"
	sharedPersistence "github.com/felixgeelhaar/studora/internal/shared/infrastructure/persistence"
	timetableCommands "github.com/felixgeelhaar/studora/internal/timetable/application/commands"
	timetableQueries "github.com/felixgeelhaar/studora/internal/timetable/application/queries"
	timetableServices "github.com/felixgeelhaar/studora/internal/timetable/application/services"
	timetableDomain "github.com/felixgeelhaar/studora/internal/timetable/domain"
	timetablePersistence "github.com/felixgeelhaar/studora/internal/timetable/infrastructure/persistence"
	"github.com/felixgeelhaar/studora/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database
	DB      *pgxpool.Pool
	LocalDB *sql.DB

	// Redis
	RedisClient *redis.Client

	// Repositories
	ItemRepo       agendaDomain.ItemRepository
	SessionRepo    planningDomain.SessionRepository
	SettingsRepo   identityDomain.SettingsRepository
	EntryRepo      timetableDomain.EntryRepository
	AttendanceRepo timetableDomain.AttendanceRepository
	OutboxRepo     outbox.Repository

	// Publishers
	EventPublisher eventbus.Publisher

	// Unit of Work
	UnitOfWork sharedApplication.UnitOfWork

	// Narrator
	Annotator narrator.Annotator

	// Agenda handlers
	CreateItemHandler   *agendaCommands.CreateItemHandler
	UpdateItemHandler   *agendaCommands.UpdateItemHandler
	CompleteItemHandler *agendaCommands.CompleteItemHandler
	DeleteItemHandler   *agendaCommands.DeleteItemHandler
	GetItemHandler      *agendaQueries.GetItemHandler
	ListItemsHandler    *agendaQueries.ListItemsHandler

	// Planning handlers
	GeneratePlanHandler *planCommands.GeneratePlanHandler
	ScheduleDayHandler  *planCommands.ScheduleDayHandler
	ListSessionsHandler *planQueries.ListSessionsHandler
	FreeTimeHandler     *planQueries.FreeTimeHandler

	// Timetable handlers
	AddEntryHandler         *timetableCommands.AddEntryHandler
	UpdateEntryHandler      *timetableCommands.UpdateEntryHandler
	DeleteEntryHandler      *timetableCommands.DeleteEntryHandler
	RecordAttendanceHandler *timetableCommands.RecordAttendanceHandler
	DeleteAttendanceHandler *timetableCommands.DeleteAttendanceHandler
	ListEntriesHandler      *timetableQueries.ListEntriesHandler
	DayScheduleHandler      *timetableQueries.DayScheduleHandler
	ListAttendanceHandler   *timetableQueries.ListAttendanceHandler
	AttendanceStatsHandler  *timetableQueries.AttendanceStatsHandler

	// Insights handlers
	DayWorkloadHandler     *insightsQueries.DayWorkloadHandler
	ProcrastinationHandler *insightsQueries.ProcrastinationHandler
	BurnoutHandler         *insightsQueries.BurnoutHandler
	SummaryHandler         *insightsQueries.SummaryHandler

	// Settings
	SettingsService *identitySettings.Service

	// Outbox Processor
	OutboxProcessor *outbox.Processor
}

// NewContainer creates and wires all dependencies against PostgreSQL.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	// Connect to PostgreSQL
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	c.DB = pool
	logger.Info("connected to database")

	// Connect to Redis (optional in development)
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			if !cfg.IsDevelopment() {
				pool.Close()
				return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
			}
			logger.Warn("invalid Redis URL, workload insights will be recomputed on every request", "error", err)
		} else {
			redisClient := redis.NewClient(opt)
			if err := redisClient.Ping(ctx).Err(); err != nil {
				if !cfg.IsDevelopment() {
					pool.Close()
					return nil, fmt.Errorf("failed to connect to Redis: %w", err)
				}
				logger.Warn("Redis not available, workload insights will be recomputed on every request", "error", err)
			} else {
				c.RedisClient = redisClient
				logger.Info("connected to Redis")
			}
		}
	}

	// Create repositories
	sessionRepo := planPersistence.NewPostgresSessionRepository(pool)
	c.ItemRepo = agendaPersistence.NewPostgresItemRepository(pool)
	c.SessionRepo = sessionRepo
	c.SettingsRepo = identityPersistence.NewPostgresSettingsRepository(pool)
	c.EntryRepo = timetablePersistence.NewPostgresEntryRepository(pool)
	c.AttendanceRepo = timetablePersistence.NewPostgresAttendanceRepository(pool)
	c.OutboxRepo = outbox.NewPostgresRepository(pool)
	c.UnitOfWork = sharedPersistence.NewPostgresUnitOfWork(pool)

	// Create event publisher
	publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
	if err != nil {
		// Fall back to noop publisher in development
		if cfg.IsDevelopment() {
			logger.Warn("RabbitMQ not available, using noop publisher")
			c.EventPublisher = eventbus.NewNoopPublisher(logger)
		} else {
			pool.Close()
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
	} else {
		c.EventPublisher = publisher
	}

	// Postgres serializes concurrent plan writes with an advisory lock
	// held by the session repository's transaction.
	c.wireHandlers(sessionRepo, c.workloadCache())

	// Create outbox processor
	processorConfig := outbox.ProcessorConfig{
		PollInterval: cfg.OutboxPollInterval,
		BatchSize:    cfg.OutboxBatchSize,
		MaxRetries:   cfg.OutboxMaxRetries,
	}
	c.OutboxProcessor = outbox.NewProcessor(c.OutboxRepo, c.EventPublisher, processorConfig, logger)

	return c, nil
}

// NewLocalContainer creates a container for local mode with SQLite.
// This provides zero-config operation without requiring PostgreSQL,
// Redis, or RabbitMQ.
func NewLocalContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	db, err := initSQLiteDB(ctx, cfg.LocalDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite: %w", err)
	}
	c.LocalDB = db

	// Create repositories
	c.ItemRepo = agendaPersistence.NewSQLiteItemRepository(db)
	c.SessionRepo = planPersistence.NewSQLiteSessionRepository(db)
	c.SettingsRepo = identityPersistence.NewSQLiteSettingsRepository(db)
	c.EntryRepo = timetablePersistence.NewSQLiteEntryRepository(db)
	c.AttendanceRepo = timetablePersistence.NewSQLiteAttendanceRepository(db)
	c.OutboxRepo = outbox.NewSQLiteRepository(db)
	c.UnitOfWork = sharedPersistence.NewSQLiteUnitOfWork(db)

	// Local mode keeps events on disk; nothing consumes them until the
	// user points the processor at a broker.
	c.EventPublisher = eventbus.NewNoopPublisher(logger)

	// SQLite has a single writer, so no plan lock is needed.
	c.wireHandlers(planCommands.NoopPlanLocker{}, nil)

	if cfg.OutboxProcessorEnabled {
		processorConfig := outbox.ProcessorConfig{
			PollInterval: cfg.OutboxPollInterval,
			BatchSize:    cfg.OutboxBatchSize,
			MaxRetries:   cfg.OutboxMaxRetries,
		}
		c.OutboxProcessor = outbox.NewProcessor(c.OutboxRepo, c.EventPublisher, processorConfig, logger)
	}

	logger.Info("local mode container initialized",
		"database", cfg.LocalDBPath,
		"driver", "sqlite",
	)

	return c, nil
}

// wireHandlers builds every command and query handler from the
// repositories the caller has already selected.
func (c *Container) wireHandlers(locker planCommands.PlanLocker, cache insightsQueries.WorkloadCache) {
	cfg := c.Config
	logger := c.Logger

	// Narrator: remote service when configured, canned templates otherwise.
	if cfg.AnnotatorURL != "" {
		c.Annotator = narrator.NewHTTPAnnotator(narrator.DefaultHTTPAnnotatorConfig(cfg.AnnotatorURL), logger)
	} else {
		c.Annotator = narrator.NewTemplateAnnotator()
	}

	// Agenda
	c.CreateItemHandler = agendaCommands.NewCreateItemHandler(c.ItemRepo, c.OutboxRepo, c.UnitOfWork)
	c.UpdateItemHandler = agendaCommands.NewUpdateItemHandler(c.ItemRepo, c.UnitOfWork)
	c.CompleteItemHandler = agendaCommands.NewCompleteItemHandler(c.ItemRepo, c.OutboxRepo, c.UnitOfWork)
	c.DeleteItemHandler = agendaCommands.NewDeleteItemHandler(c.ItemRepo, c.UnitOfWork)
	c.GetItemHandler = agendaQueries.NewGetItemHandler(c.ItemRepo)
	c.ListItemsHandler = agendaQueries.NewListItemsHandler(c.ItemRepo)

	// Timetable
	c.AddEntryHandler = timetableCommands.NewAddEntryHandler(c.EntryRepo, c.UnitOfWork)
	c.UpdateEntryHandler = timetableCommands.NewUpdateEntryHandler(c.EntryRepo, c.UnitOfWork)
	c.DeleteEntryHandler = timetableCommands.NewDeleteEntryHandler(c.EntryRepo, c.UnitOfWork)
	c.RecordAttendanceHandler = timetableCommands.NewRecordAttendanceHandler(c.AttendanceRepo, c.UnitOfWork)
	c.DeleteAttendanceHandler = timetableCommands.NewDeleteAttendanceHandler(c.AttendanceRepo, c.UnitOfWork)
	c.ListEntriesHandler = timetableQueries.NewListEntriesHandler(c.EntryRepo)
	c.DayScheduleHandler = timetableQueries.NewDayScheduleHandler(c.EntryRepo)
	c.ListAttendanceHandler = timetableQueries.NewListAttendanceHandler(c.AttendanceRepo)
	c.AttendanceStatsHandler = timetableQueries.NewAttendanceStatsHandler(c.AttendanceRepo)

	// Planning. Timetable occurrences count as busy time when filling a day.
	busySource := timetableServices.NewTimetableBusySource(c.EntryRepo)
	c.GeneratePlanHandler = planCommands.NewGeneratePlanHandler(
		c.ItemRepo, c.SessionRepo, c.SettingsRepo, c.OutboxRepo, c.UnitOfWork, locker, c.Annotator,
	)
	c.ScheduleDayHandler = planCommands.NewScheduleDayHandler(
		c.ItemRepo, c.SessionRepo, c.OutboxRepo, c.UnitOfWork, locker, busySource, c.Annotator,
	)
	c.ListSessionsHandler = planQueries.NewListSessionsHandler(c.SessionRepo)
	c.FreeTimeHandler = planQueries.NewFreeTimeHandler(c.ItemRepo)

	// Insights
	c.DayWorkloadHandler = insightsQueries.NewDayWorkloadHandler(c.ItemRepo, cache)
	c.ProcrastinationHandler = insightsQueries.NewProcrastinationHandler(c.ItemRepo)
	c.BurnoutHandler = insightsQueries.NewBurnoutHandler(c.ItemRepo)
	c.SummaryHandler = insightsQueries.NewSummaryHandler(c.ItemRepo, c.SessionRepo)

	// Settings
	c.SettingsService = identitySettings.NewService(c.SettingsRepo)
}

// workloadCache returns the Redis-backed insights cache, or nil when
// Redis is not connected so handlers recompute instead.
func (c *Container) workloadCache() insightsQueries.WorkloadCache {
	if c.RedisClient == nil {
		return nil
	}
	return insightsCache.NewRedisWorkloadCache(c.RedisClient, c.Logger)
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.OutboxProcessor != nil {
		c.OutboxProcessor.Stop()
	}

	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
		c.Logger.Info("PostgreSQL connection closed")
	}

	if c.LocalDB != nil {
		if err := c.LocalDB.Close(); err != nil {
			c.Logger.Warn("error closing SQLite connection", "error", err)
		} else {
			c.Logger.Info("SQLite connection closed")
		}
	}
}

// initSQLiteDB opens the local database, creating the file and schema
// on first run.
func initSQLiteDB(ctx context.Context, path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	for _, create := range []func(context.Context, *sql.DB) error{
		agendaPersistence.CreateSQLiteItemSchema,
		planPersistence.CreateSQLiteSessionSchema,
		identityPersistence.CreateSQLiteSettingsSchema,
		timetablePersistence.CreateSQLiteTimetableSchema,
		outbox.CreateSQLiteOutboxSchema,
	} {
		if err := create(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return db, nil
}
