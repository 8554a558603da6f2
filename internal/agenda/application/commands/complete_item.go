package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/studora/internal/agenda/domain"
	sharedApplication "github.com/felixgeelhaar/studora/internal/shared/application"
	"github.com/felixgeelhaar/studora/internal/shared/infrastructure/outbox"
)

// CompleteItemCommand marks an item as done.
type CompleteItemCommand struct {
	ItemID uuid.UUID
	UserID uuid.UUID
}

// CompleteItemHandler handles the CompleteItemCommand.
type CompleteItemHandler struct {
	itemRepo   domain.ItemRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewCompleteItemHandler creates a new CompleteItemHandler.
func NewCompleteItemHandler(itemRepo domain.ItemRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CompleteItemHandler {
	return &CompleteItemHandler{
		itemRepo:   itemRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the CompleteItemCommand.
func (h *CompleteItemHandler) Handle(ctx context.Context, cmd CompleteItemCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		it, err := h.itemRepo.FindByID(txCtx, cmd.ItemID)
		if err != nil {
			return err
		}
		if it.UserID() != cmd.UserID {
			return domain.ErrNotOwner
		}

		if err := it.Complete(); err != nil {
			return err
		}

		if err := h.itemRepo.Save(txCtx, it); err != nil {
			return err
		}

		events := it.DomainEvents()
		msgs := make([]*outbox.Message, 0, len(events))
		for _, event := range events {
			msg, err := outbox.NewMessage(event)
			if err != nil {
				return err
			}
			msgs = append(msgs, msg)
		}
		return h.outboxRepo.SaveBatch(txCtx, msgs)
	})
}
