package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	agendaDomain "github.com/felixgeelhaar/studora/internal/agenda/domain"
	identityDomain "github.com/felixgeelhaar/studora/internal/identity/domain"
	"github.com/felixgeelhaar/studora/internal/narrator"
	"github.com/felixgeelhaar/studora/internal/planning/application/services"
	"github.com/felixgeelhaar/studora/internal/planning/domain"
	sharedApplication "github.com/felixgeelhaar/studora/internal/shared/application"
	"github.com/felixgeelhaar/studora/internal/shared/infrastructure/outbox"
)

// GeneratePlanCommand requests a fresh multi-day study plan.
type GeneratePlanCommand struct {
	UserID uuid.UUID
}

// GeneratePlanResult is the produced plan.
type GeneratePlanResult struct {
	Sessions []*domain.StudySession
	Cleared  int64 // stale future planned sessions removed first
}

// GeneratePlanHandler regenerates the user's forward-looking study plan:
// clear stale future sessions, then chunk every unfinished item into dated
// blocks around the user's sleep window.
type GeneratePlanHandler struct {
	itemRepo     agendaDomain.ItemRepository
	sessionRepo  domain.SessionRepository
	settingsRepo identityDomain.SettingsRepository
	outboxRepo   outbox.Repository
	uow          sharedApplication.UnitOfWork
	locker       PlanLocker
	generator    *services.PlanGenerator
	annotator    narrator.Annotator
	now          func() time.Time
}

// NewGeneratePlanHandler creates a GeneratePlanHandler. The annotator may
// be nil; sessions then carry no rationale text.
func NewGeneratePlanHandler(
	itemRepo agendaDomain.ItemRepository,
	sessionRepo domain.SessionRepository,
	settingsRepo identityDomain.SettingsRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	locker PlanLocker,
	annotator narrator.Annotator,
) *GeneratePlanHandler {
	return &GeneratePlanHandler{
		itemRepo:     itemRepo,
		sessionRepo:  sessionRepo,
		settingsRepo: settingsRepo,
		outboxRepo:   outboxRepo,
		uow:          uow,
		locker:       locker,
		generator:    services.NewPlanGenerator(),
		annotator:    annotator,
		now:          time.Now,
	}
}

// Handle executes the GeneratePlanCommand.
func (h *GeneratePlanHandler) Handle(ctx context.Context, cmd GeneratePlanCommand) (*GeneratePlanResult, error) {
	now := h.now()

	settings, err := h.settingsRepo.GetPlanSettings(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	cfg := DefaultsFromSettings(settings)

	var result *GeneratePlanResult
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.locker.AcquireUserPlanLock(txCtx, cmd.UserID); err != nil {
			return err
		}

		items, err := h.itemRepo.FindOpenDeferrable(txCtx, cmd.UserID)
		if err != nil {
			return err
		}

		sessions, err := h.generator.Generate(cmd.UserID, items, now, cfg)
		if err != nil {
			return err
		}

		if h.annotator != nil {
			annotateSessions(txCtx, h.annotator, sessions, items, now)
		}

		cleared, err := h.sessionRepo.DeleteFuturePlanned(txCtx, cmd.UserID, now)
		if err != nil {
			return err
		}
		if err := h.sessionRepo.SaveBatch(txCtx, sessions); err != nil {
			return err
		}
		if err := saveSessionEvents(txCtx, h.outboxRepo, cmd.UserID, sessions); err != nil {
			return err
		}

		result = &GeneratePlanResult{Sessions: sessions, Cleared: cleared}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DefaultsFromSettings resolves every planning fallback once per request:
// user settings where present, stock defaults otherwise.
func DefaultsFromSettings(settings identityDomain.PlanSettings) services.PlanningDefaults {
	cfg := services.DefaultPlanning()
	cfg.SleepStartHour = settings.SleepStartHour()
	cfg.SleepEndHour = settings.SleepEndHour()
	if settings.SessionLengthMin > 0 {
		cfg.SessionLengthMin = settings.SessionLengthMin
	}
	return cfg
}
