package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/studora/internal/agenda/domain"
	sharedApplication "github.com/felixgeelhaar/studora/internal/shared/application"
)

// DeleteItemCommand removes an item permanently.
type DeleteItemCommand struct {
	ItemID uuid.UUID
	UserID uuid.UUID
}

// DeleteItemHandler handles the DeleteItemCommand.
type DeleteItemHandler struct {
	itemRepo domain.ItemRepository
	uow      sharedApplication.UnitOfWork
}

// NewDeleteItemHandler creates a new DeleteItemHandler.
func NewDeleteItemHandler(itemRepo domain.ItemRepository, uow sharedApplication.UnitOfWork) *DeleteItemHandler {
	return &DeleteItemHandler{itemRepo: itemRepo, uow: uow}
}

// Handle executes the DeleteItemCommand.
func (h *DeleteItemHandler) Handle(ctx context.Context, cmd DeleteItemCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		it, err := h.itemRepo.FindByID(txCtx, cmd.ItemID)
		if err != nil {
			return err
		}
		if it.UserID() != cmd.UserID {
			return domain.ErrNotOwner
		}
		return h.itemRepo.Delete(txCtx, cmd.ItemID)
	})
}
