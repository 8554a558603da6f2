package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	shared "github.com/felixgeelhaar/studora/internal/shared/domain"
)

var (
	ErrEmptyTitle       = errors.New("item title cannot be empty")
	ErrAlreadyCompleted = errors.New("item is already completed")
	ErrInvalidTimeRange = errors.New("item end time must be after start time")
	ErrNegativeDuration = errors.New("item duration cannot be negative")
	ErrFixedItemNoTimes = errors.New("fixed items require start and end times")
	ErrNotOwner         = errors.New("item does not belong to user")
)

// Item is a single piece of academic work or commitment: an assignment with
// a deadline, an exam, a scheduled class or meeting, or anything else a
// student tracks. All shapes share one field set; which fields are populated
// depends on the Classification.
type Item struct {
	shared.BaseAggregateRoot
	userID          uuid.UUID
	title           string
	description     string
	classification  Classification
	category        string
	priority        Priority
	important       bool
	startTime       *time.Time
	endTime         *time.Time
	deadline        *time.Time
	durationMinutes int
	completed       bool
	completedAt     *time.Time
}

// NewItem creates a deferrable work item (assignment, exam prep, or other).
func NewItem(userID uuid.UUID, title string, classification Classification) (*Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	it := &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		userID:            userID,
		title:             title,
		classification:    classification,
		priority:          PriorityMedium,
	}

	it.AddDomainEvent(NewItemCreated(it.ID(), it.title, string(it.classification)))

	return it, nil
}

// NewFixedItem creates an immovable commitment (class session or meeting)
// occupying the given calendar range.
func NewFixedItem(userID uuid.UUID, title string, classification Classification, start, end time.Time) (*Item, error) {
	it, err := NewItem(userID, title, classification)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, ErrInvalidTimeRange
	}
	it.startTime = &start
	it.endTime = &end
	return it, nil
}

// RehydrateItem reconstructs an item from persistence without raising events.
func RehydrateItem(
	base shared.BaseEntity,
	userID uuid.UUID,
	title, description string,
	classification Classification,
	category string,
	priority Priority,
	important bool,
	startTime, endTime, deadline *time.Time,
	durationMinutes int,
	completed bool,
	completedAt *time.Time,
) *Item {
	return &Item{
		BaseAggregateRoot: shared.RehydrateBaseAggregateRoot(base),
		userID:            userID,
		title:             title,
		description:       description,
		classification:    classification,
		category:          category,
		priority:          priority,
		important:         important,
		startTime:         startTime,
		endTime:           endTime,
		deadline:          deadline,
		durationMinutes:   durationMinutes,
		completed:         completed,
		completedAt:       completedAt,
	}
}

// Getters

func (it *Item) UserID() uuid.UUID              { return it.userID }
func (it *Item) Title() string                  { return it.title }
func (it *Item) Description() string            { return it.description }
func (it *Item) Classification() Classification { return it.classification }
func (it *Item) Category() string               { return it.category }
func (it *Item) Priority() Priority             { return it.priority }
func (it *Item) Important() bool                { return it.important }
func (it *Item) StartTime() *time.Time          { return it.startTime }
func (it *Item) EndTime() *time.Time            { return it.endTime }
func (it *Item) Deadline() *time.Time           { return it.deadline }
func (it *Item) DurationMinutes() int           { return it.durationMinutes }
func (it *Item) IsCompleted() bool              { return it.completed }
func (it *Item) CompletedAt() *time.Time        { return it.completedAt }

// IsFixed reports whether the item occupies an immovable calendar range.
func (it *Item) IsFixed() bool {
	return it.classification.IsFixed() && it.startTime != nil && it.endTime != nil
}

// IsPastDeadline reports whether the item's deadline has already passed at
// the given reference time. Items without a deadline are never past due.
func (it *Item) IsPastDeadline(now time.Time) bool {
	return it.deadline != nil && it.deadline.Before(now)
}

// DurationOrDefault resolves the item's estimated duration, falling back to
// the given default when no estimate was recorded.
func (it *Item) DurationOrDefault(def int) int {
	if it.durationMinutes > 0 {
		return it.durationMinutes
	}
	return def
}

// SetTitle updates the item title.
func (it *Item) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	it.title = title
	it.Touch()
	return nil
}

// SetDescription updates the free-form notes.
func (it *Item) SetDescription(description string) {
	it.description = strings.TrimSpace(description)
	it.Touch()
}

// SetCategory assigns the item to a user-defined category.
func (it *Item) SetCategory(category string) {
	it.category = strings.TrimSpace(category)
	it.Touch()
}

// SetPriority updates the item priority.
func (it *Item) SetPriority(priority Priority) {
	it.priority = priority
	it.Touch()
}

// SetImportant flags or unflags the item as important.
func (it *Item) SetImportant(important bool) {
	it.important = important
	it.Touch()
}

// SetDeadline updates the item deadline. A nil deadline removes it.
func (it *Item) SetDeadline(deadline *time.Time) {
	it.deadline = deadline
	it.Touch()
}

// SetDuration updates the estimated effort in minutes.
func (it *Item) SetDuration(minutes int) error {
	if minutes < 0 {
		return ErrNegativeDuration
	}
	it.durationMinutes = minutes
	it.Touch()
	return nil
}

// Reschedule moves a fixed item to a new calendar range.
func (it *Item) Reschedule(start, end time.Time) error {
	if !it.classification.IsFixed() {
		return ErrFixedItemNoTimes
	}
	if !end.After(start) {
		return ErrInvalidTimeRange
	}
	it.startTime = &start
	it.endTime = &end
	it.Touch()
	return nil
}

// Complete marks the item done. Completing twice is an error.
func (it *Item) Complete() error {
	if it.completed {
		return ErrAlreadyCompleted
	}
	now := time.Now().UTC()
	it.completed = true
	it.completedAt = &now
	it.Touch()
	it.AddDomainEvent(NewItemCompleted(it.ID()))
	return nil
}

// Reopen reverts a completed item back to pending.
func (it *Item) Reopen() {
	if !it.completed {
		return
	}
	it.completed = false
	it.completedAt = nil
	it.Touch()
}
