package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	agendaDomain "github.com/felixgeelhaar/studora/internal/agenda/domain"
	"github.com/felixgeelhaar/studora/internal/narrator"
	"github.com/felixgeelhaar/studora/internal/planning/application/services"
	"github.com/felixgeelhaar/studora/internal/planning/domain"
	sharedApplication "github.com/felixgeelhaar/studora/internal/shared/application"
	"github.com/felixgeelhaar/studora/internal/shared/infrastructure/outbox"
)

// ScheduleDayCommand requests a schedule for one calendar day.
type ScheduleDayCommand struct {
	UserID uuid.UUID
	Date   time.Time // any instant inside the target day
}

// ScheduleDayResult is the produced schedule.
type ScheduleDayResult struct {
	Sessions []*domain.StudySession
	FreeTime []domain.FreeInterval // capacity left after allocation
}

// FixedBlockSource supplies busy intervals beyond the user's own fixed
// items, such as recurring timetable occurrences.
type FixedBlockSource interface {
	BusyIntervalsIn(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.BusyInterval, error)
}

// ScheduleDayHandler fills one day's free time with the user's open work.
type ScheduleDayHandler struct {
	itemRepo    agendaDomain.ItemRepository
	sessionRepo domain.SessionRepository
	outboxRepo  outbox.Repository
	uow         sharedApplication.UnitOfWork
	locker      PlanLocker
	blocks      FixedBlockSource
	scheduler   *services.SessionScheduler
	annotator   narrator.Annotator
	now         func() time.Time
}

// NewScheduleDayHandler creates a ScheduleDayHandler. Both the block source
// and the annotator may be nil; sessions then carry no rationale text and
// only fixed agenda items occupy the day.
func NewScheduleDayHandler(
	itemRepo agendaDomain.ItemRepository,
	sessionRepo domain.SessionRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	locker PlanLocker,
	blocks FixedBlockSource,
	annotator narrator.Annotator,
) *ScheduleDayHandler {
	return &ScheduleDayHandler{
		itemRepo:    itemRepo,
		sessionRepo: sessionRepo,
		outboxRepo:  outboxRepo,
		uow:         uow,
		locker:      locker,
		blocks:      blocks,
		scheduler:   services.NewSessionScheduler(),
		annotator:   annotator,
		now:         time.Now,
	}
}

// Handle executes the ScheduleDayCommand: compute the day's free intervals
// from fixed commitments, allocate open work into them, clear the day's
// stale planned sessions, and persist the fresh ones atomically.
func (h *ScheduleDayHandler) Handle(ctx context.Context, cmd ScheduleDayCommand) (*ScheduleDayResult, error) {
	now := h.now()
	winStart, winEnd := domain.DayWindow(cmd.Date)
	// Never allocate time already behind us.
	if now.After(winStart) && now.Before(winEnd) {
		winStart = now
	}

	var result *ScheduleDayResult
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.locker.AcquireUserPlanLock(txCtx, cmd.UserID); err != nil {
			return err
		}

		items, err := h.itemRepo.FindOpenDeferrable(txCtx, cmd.UserID)
		if err != nil {
			return err
		}
		fixed, err := h.itemRepo.FindFixedInRange(txCtx, cmd.UserID, winStart, winEnd)
		if err != nil {
			return err
		}

		busy := make([]domain.BusyInterval, 0, len(fixed))
		for _, f := range fixed {
			start, end, ok := domain.ClipToWindow(*f.StartTime(), *f.EndTime(), winStart, winEnd)
			if !ok {
				continue
			}
			busy = append(busy, domain.BusyInterval{Start: start, End: end})
		}
		if h.blocks != nil {
			extra, err := h.blocks.BusyIntervalsIn(txCtx, cmd.UserID, winStart, winEnd)
			if err != nil {
				return err
			}
			busy = append(busy, extra...)
		}
		free := domain.ComputeFreeIntervals(winStart, winEnd, busy)

		scheduled, err := h.scheduler.Schedule(cmd.UserID, items, free, now)
		if err != nil {
			return err
		}

		if h.annotator != nil {
			annotateSessions(txCtx, h.annotator, scheduled.Sessions, items, now)
		}

		if _, err := h.sessionRepo.DeleteFuturePlanned(txCtx, cmd.UserID, now); err != nil {
			return err
		}
		if err := h.sessionRepo.SaveBatch(txCtx, scheduled.Sessions); err != nil {
			return err
		}
		if err := saveSessionEvents(txCtx, h.outboxRepo, cmd.UserID, scheduled.Sessions); err != nil {
			return err
		}

		result = &ScheduleDayResult{Sessions: scheduled.Sessions, FreeTime: scheduled.Remaining}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// annotateSessions attaches rationale text to each session from its item's
// context. Annotation is decoration; it never fails the pass.
func annotateSessions(ctx context.Context, annotator narrator.Annotator, sessions []*domain.StudySession, items []*agendaDomain.Item, now time.Time) {
	byID := make(map[uuid.UUID]*agendaDomain.Item, len(items))
	for _, it := range items {
		byID[it.ID()] = it
	}

	for _, s := range sessions {
		it, ok := byID[s.ItemID()]
		if !ok {
			continue
		}
		s.SetRationale(annotator.Annotate(ctx, narrator.ItemContext{
			Title:     it.Title(),
			Deadline:  it.Deadline(),
			Priority:  it.Priority().String(),
			Important: it.Important(),
			Missed:    it.IsPastDeadline(now),
		}))
	}
}

// saveSessionEvents drains each session's domain events plus one
// PlanRegenerated marker into the outbox.
func saveSessionEvents(ctx context.Context, repo outbox.Repository, userID uuid.UUID, sessions []*domain.StudySession) error {
	var msgs []*outbox.Message
	for _, s := range sessions {
		for _, event := range s.DomainEvents() {
			msg, err := outbox.NewMessage(event)
			if err != nil {
				return err
			}
			msgs = append(msgs, msg)
		}
		s.ClearDomainEvents()
	}

	regenerated, err := outbox.NewMessage(domain.NewPlanRegenerated(userID, len(sessions)))
	if err != nil {
		return err
	}
	msgs = append(msgs, regenerated)

	return repo.SaveBatch(ctx, msgs)
}
