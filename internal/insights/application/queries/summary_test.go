package queries

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	agendaDomain "github.com/felixgeelhaar/studora/internal/agenda/domain"
	planningDomain "github.com/felixgeelhaar/studora/internal/planning/domain"
)

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) Save(ctx context.Context, s *planningDomain.StudySession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockSessionRepo) SaveBatch(ctx context.Context, sessions []*planningDomain.StudySession) error {
	args := m.Called(ctx, sessions)
	return args.Error(0)
}

func (m *mockSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*planningDomain.StudySession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planningDomain.StudySession), args.Error(1)
}

func (m *mockSessionRepo) FindByUserAndRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*planningDomain.StudySession, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*planningDomain.StudySession), args.Error(1)
}

func (m *mockSessionRepo) DeleteFuturePlanned(ctx context.Context, userID uuid.UUID, after time.Time) (int64, error) {
	args := m.Called(ctx, userID, after)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSessionRepo) CountPlannedEndedBefore(ctx context.Context, userID uuid.UUID, before time.Time) (int, error) {
	args := m.Called(ctx, userID, before)
	return args.Int(0), args.Error(1)
}

func TestSummaryHandler_Handle(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	newHandler := func(items []*agendaDomain.Item, missed int) *SummaryHandler {
		itemRepo := new(mockItemRepo)
		sessionRepo := new(mockSessionRepo)
		itemRepo.On("FindByUserID", mock.Anything, userID, agendaDomain.ItemFilter{}).Return(items, nil)
		sessionRepo.On("CountPlannedEndedBefore", mock.Anything, userID, now).Return(missed, nil)

		handler := NewSummaryHandler(itemRepo, sessionRepo)
		handler.now = func() time.Time { return now }
		return handler
	}

	t.Run("reports completion rate and missed-session warning", func(t *testing.T) {
		done, err := agendaDomain.NewItem(userID, "done", agendaDomain.ClassAssignment)
		require.NoError(t, err)
		require.NoError(t, done.Complete())
		open, err := agendaDomain.NewItem(userID, "open", agendaDomain.ClassAssignment)
		require.NoError(t, err)
		other, err := agendaDomain.NewItem(userID, "also open", agendaDomain.ClassExam)
		require.NoError(t, err)

		handler := newHandler([]*agendaDomain.Item{done, open, other}, 2)

		dto, err := handler.Handle(context.Background(), SummaryQuery{UserID: userID})

		require.NoError(t, err)
		assert.Equal(t, 3, dto.TotalItems)
		assert.Equal(t, 1, dto.CompletedItems)
		assert.Equal(t, 2, dto.OpenItems)
		assert.Equal(t, 33.3, dto.CompletionRate)
		assert.Equal(t, 2, dto.MissedSessions)
		assert.Contains(t, dto.Warning, "2 planned study sessions")
	})

	t.Run("no items yields zero rate and no warning", func(t *testing.T) {
		handler := newHandler([]*agendaDomain.Item{}, 0)

		dto, err := handler.Handle(context.Background(), SummaryQuery{UserID: userID})

		require.NoError(t, err)
		assert.Zero(t, dto.CompletionRate)
		assert.Empty(t, dto.Warning)
	})
}
