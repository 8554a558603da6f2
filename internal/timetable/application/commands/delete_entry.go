package commands

import (
	"context"

	"github.com/google/uuid"

	sharedApplication "github.com/felixgeelhaar/studora/internal/shared/application"
	"github.com/felixgeelhaar/studora/internal/timetable/domain"
)

// DeleteEntryCommand removes a timetable entry permanently.
type DeleteEntryCommand struct {
	EntryID uuid.UUID
	UserID  uuid.UUID
}

// DeleteEntryHandler handles the DeleteEntryCommand.
type DeleteEntryHandler struct {
	entryRepo domain.EntryRepository
	uow       sharedApplication.UnitOfWork
}

// NewDeleteEntryHandler creates a new DeleteEntryHandler.
func NewDeleteEntryHandler(entryRepo domain.EntryRepository, uow sharedApplication.UnitOfWork) *DeleteEntryHandler {
	return &DeleteEntryHandler{entryRepo: entryRepo, uow: uow}
}

// Handle executes the DeleteEntryCommand.
func (h *DeleteEntryHandler) Handle(ctx context.Context, cmd DeleteEntryCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		entry, err := h.entryRepo.FindByID(txCtx, cmd.EntryID)
		if err != nil {
			return err
		}
		if entry.UserID() != cmd.UserID {
			return domain.ErrNotOwner
		}
		return h.entryRepo.Delete(txCtx, cmd.EntryID)
	})
}
