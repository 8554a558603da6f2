package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/studora/internal/agenda/domain"
)

// GetItemQuery contains the parameters for fetching a single item.
type GetItemQuery struct {
	ItemID uuid.UUID
	UserID uuid.UUID
}

// GetItemHandler handles the GetItemQuery.
type GetItemHandler struct {
	itemRepo domain.ItemRepository
}

// NewGetItemHandler creates a new GetItemHandler.
func NewGetItemHandler(itemRepo domain.ItemRepository) *GetItemHandler {
	return &GetItemHandler{itemRepo: itemRepo}
}

// Handle executes the GetItemQuery.
func (h *GetItemHandler) Handle(ctx context.Context, query GetItemQuery) (*ItemDTO, error) {
	it, err := h.itemRepo.FindByID(ctx, query.ItemID)
	if err != nil {
		return nil, err
	}
	if it.UserID() != query.UserID {
		return nil, domain.ErrNotOwner
	}
	dto := toItemDTOs([]*domain.Item{it})[0]
	return &dto, nil
}
