package queries

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/studora/internal/agenda/domain"
)

// ItemDTO is a data transfer object for agenda items.
type ItemDTO struct {
	ID              uuid.UUID
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
	Completed       bool
	CompletedAt     *time.Time
	CreatedAt       time.Time
}

// ListItemsQuery contains the parameters for listing items.
type ListItemsQuery struct {
	UserID         uuid.UUID
	Classification string // empty = all
	Category       string // empty = all
	Completed      *bool  // nil = all
	DueBefore      *time.Time
	Overdue        bool
	SortBy         string // "deadline", "priority", "created_at"
	Limit          int    // 0 = no limit
}

// ListItemsHandler handles the ListItemsQuery.
type ListItemsHandler struct {
	itemRepo domain.ItemRepository
}

// NewListItemsHandler creates a new ListItemsHandler.
func NewListItemsHandler(itemRepo domain.ItemRepository) *ListItemsHandler {
	return &ListItemsHandler{itemRepo: itemRepo}
}

// Handle executes the ListItemsQuery.
func (h *ListItemsHandler) Handle(ctx context.Context, query ListItemsQuery) ([]ItemDTO, error) {
	filter := domain.ItemFilter{
		Category:  query.Category,
		Completed: query.Completed,
	}
	if query.Classification != "" {
		c := domain.ParseClassification(query.Classification)
		filter.Classification = &c
	}

	items, err := h.itemRepo.FindByUserID(ctx, query.UserID, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if query.Overdue {
		items = filterItems(items, func(it *domain.Item) bool {
			return !it.IsCompleted() && it.IsPastDeadline(now)
		})
	}
	if query.DueBefore != nil {
		items = filterItems(items, func(it *domain.Item) bool {
			return it.Deadline() != nil && it.Deadline().Before(*query.DueBefore)
		})
	}

	sortItems(items, query.SortBy)

	if query.Limit > 0 && len(items) > query.Limit {
		items = items[:query.Limit]
	}

	return toItemDTOs(items), nil
}

func filterItems(items []*domain.Item, keep func(*domain.Item) bool) []*domain.Item {
	var filtered []*domain.Item
	for _, it := range items {
		if keep(it) {
			filtered = append(filtered, it)
		}
	}
	return filtered
}

func sortItems(items []*domain.Item, sortBy string) {
	switch sortBy {
	case "priority":
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Priority().Weight() > items[j].Priority().Weight()
		})
	case "created_at":
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt().Before(items[j].CreatedAt())
		})
	default: // deadline, nil deadlines last
		sort.SliceStable(items, func(i, j int) bool {
			di, dj := items[i].Deadline(), items[j].Deadline()
			if di == nil {
				return false
			}
			if dj == nil {
				return true
			}
			return di.Before(*dj)
		})
	}
}

func toItemDTOs(items []*domain.Item) []ItemDTO {
	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = ItemDTO{
			ID:              it.ID(),
			Title:           it.Title(),
			Description:     it.Description(),
			Classification:  string(it.Classification()),
			Category:        it.Category(),
			Priority:        it.Priority().String(),
			Important:       it.Important(),
			StartTime:       it.StartTime(),
			EndTime:         it.EndTime(),
			Deadline:        it.Deadline(),
			DurationMinutes: it.DurationMinutes(),
			Completed:       it.IsCompleted(),
			CompletedAt:     it.CompletedAt(),
			CreatedAt:       it.CreatedAt(),
		}
	}
	return dtos
}
