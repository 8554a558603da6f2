package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/studora/internal/agenda/domain"
	sharedApplication "github.com/felixgeelhaar/studora/internal/shared/application"
)

// UpdateItemCommand contains the data needed to update an item.
// Nil pointer fields mean no change.
type UpdateItemCommand struct {
	ItemID          uuid.UUID
	UserID          uuid.UUID
	Title           *string
	Description     *string
	Category        *string
	Priority        *string
	Important       *bool
	Deadline        *time.Time
	ClearDeadline   bool
	DurationMinutes *int
	StartTime       *time.Time
	EndTime         *time.Time
}

// UpdateItemHandler handles the UpdateItemCommand.
type UpdateItemHandler struct {
	itemRepo domain.ItemRepository
	uow      sharedApplication.UnitOfWork
}

// NewUpdateItemHandler creates a new UpdateItemHandler.
func NewUpdateItemHandler(itemRepo domain.ItemRepository, uow sharedApplication.UnitOfWork) *UpdateItemHandler {
	return &UpdateItemHandler{itemRepo: itemRepo, uow: uow}
}

// Handle executes the UpdateItemCommand.
func (h *UpdateItemHandler) Handle(ctx context.Context, cmd UpdateItemCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		it, err := h.itemRepo.FindByID(txCtx, cmd.ItemID)
		if err != nil {
			return err
		}
		if it.UserID() != cmd.UserID {
			return domain.ErrNotOwner
		}

		if cmd.Title != nil {
			if err := it.SetTitle(*cmd.Title); err != nil {
				return err
			}
		}
		if cmd.Description != nil {
			it.SetDescription(*cmd.Description)
		}
		if cmd.Category != nil {
			it.SetCategory(*cmd.Category)
		}
		if cmd.Priority != nil {
			priority, err := domain.ParsePriority(*cmd.Priority)
			if err != nil {
				return err
			}
			it.SetPriority(priority)
		}
		if cmd.Important != nil {
			it.SetImportant(*cmd.Important)
		}
		if cmd.ClearDeadline {
			it.SetDeadline(nil)
		} else if cmd.Deadline != nil {
			it.SetDeadline(cmd.Deadline)
		}
		if cmd.DurationMinutes != nil {
			if err := it.SetDuration(*cmd.DurationMinutes); err != nil {
				return err
			}
		}
		if cmd.StartTime != nil && cmd.EndTime != nil {
			if err := it.Reschedule(*cmd.StartTime, *cmd.EndTime); err != nil {
				return err
			}
		}

		return h.itemRepo.Save(txCtx, it)
	})
}
