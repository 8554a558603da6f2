package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/studora/internal/agenda/domain"
	sharedApplication "github.com/felixgeelhaar/studora/internal/shared/application"
	"github.com/felixgeelhaar/studora/internal/shared/infrastructure/outbox"
)

// CreateItemCommand contains the data needed to create an agenda item.
// Raw field names from external sources ("type", "notes", "isImportant")
// are resolved to this canonical set before the command is built.
type CreateItemCommand struct {
	UserID          uuid.UUID
	Title           string
	Description     string
	Classification  string
	Category        string
	Priority        string
	Important       bool
	StartTime       *time.Time
	EndTime         *time.Time
	Deadline        *time.Time
	DurationMinutes int
}

// CreateItemResult contains the result of creating an item.
type CreateItemResult struct {
	ItemID uuid.UUID
}

// CreateItemHandler handles the CreateItemCommand.
type CreateItemHandler struct {
	itemRepo   domain.ItemRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewCreateItemHandler creates a new CreateItemHandler.
func NewCreateItemHandler(itemRepo domain.ItemRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateItemHandler {
	return &CreateItemHandler{
		itemRepo:   itemRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the CreateItemCommand.
func (h *CreateItemHandler) Handle(ctx context.Context, cmd CreateItemCommand) (*CreateItemResult, error) {
	var result *CreateItemResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		classification := domain.ParseClassification(cmd.Classification)

		var it *domain.Item
		var err error
		if classification.IsFixed() && cmd.StartTime != nil && cmd.EndTime != nil {
			it, err = domain.NewFixedItem(cmd.UserID, cmd.Title, classification, *cmd.StartTime, *cmd.EndTime)
		} else {
			it, err = domain.NewItem(cmd.UserID, cmd.Title, classification)
		}
		if err != nil {
			return err
		}

		if cmd.Description != "" {
			it.SetDescription(cmd.Description)
		}
		if cmd.Category != "" {
			it.SetCategory(cmd.Category)
		}
		if cmd.Priority != "" {
			priority, err := domain.ParsePriority(cmd.Priority)
			if err != nil {
				return err
			}
			it.SetPriority(priority)
		}
		if cmd.Important {
			it.SetImportant(true)
		}
		if cmd.Deadline != nil {
			it.SetDeadline(cmd.Deadline)
		}
		if cmd.DurationMinutes > 0 {
			if err := it.SetDuration(cmd.DurationMinutes); err != nil {
				return err
			}
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
		if err := h.outboxRepo.SaveBatch(txCtx, msgs); err != nil {
			return err
		}

		result = &CreateItemResult{ItemID: it.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
