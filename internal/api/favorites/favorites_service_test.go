package favorites

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wanderke/wanderke-api/internal/types"
)

// MockFavoritesRepo is a mock implementation of the FavoritesRepo interface
type MockFavoritesRepo struct {
	mock.Mock
}

func (m *MockFavoritesRepo) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoritesRepo) Add(ctx context.Context, userID uuid.UUID, ref types.FavoriteRef) error {
	args := m.Called(ctx, userID, ref)
	return args.Error(0)
}

func (m *MockFavoritesRepo) Remove(ctx context.Context, userID uuid.UUID, targetID uuid.UUID, targetType types.TargetType) (int64, error) {
	args := m.Called(ctx, userID, targetID, targetType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFavoritesRepo) List(ctx context.Context, userID uuid.UUID) ([]types.FavoriteRef, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.FavoriteRef), args.Error(1)
}

// MockResolver is a mock implementation of the Resolver interface
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, targetID uuid.UUID, targetType types.TargetType) (any, uuid.UUID, error) {
	args := m.Called(ctx, targetID, targetType)
	return args.Get(0), args.Get(1).(uuid.UUID), args.Error(2)
}

func TestAdd(t *testing.T) {
	logger := slog.Default()
	userID := uuid.New()
	targetID := uuid.New()
	countyID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockFavoritesRepo)
		mockResolver := new(MockResolver)
		service := NewFavoritesService(mockRepo, mockResolver, nil, logger)
		ctx := context.Background()

		place := &types.Place{ID: targetID, CountyID: countyID, Name: "Old Bridge"}
		mockRepo.On("UserExists", ctx, userID).Return(true, nil).Once()
		mockResolver.On("Resolve", ctx, targetID, types.TargetPlace).Return(place, countyID, nil).Once()
		mockRepo.On("Add", ctx, userID, types.FavoriteRef{
			TargetID:   targetID,
			TargetType: types.TargetPlace,
			CountyID:   countyID,
		}).Return(nil).Once()

		assert.NoError(t, service.Add(ctx, userID, targetID, types.TargetPlace))
		mockRepo.AssertExpectations(t)
		mockResolver.AssertExpectations(t)
	})

	t.Run("DuplicateAddsBothSucceed", func(t *testing.T) {
		mockRepo := new(MockFavoritesRepo)
		mockResolver := new(MockResolver)
		service := NewFavoritesService(mockRepo, mockResolver, nil, logger)
		ctx := context.Background()

		place := &types.Place{ID: targetID, CountyID: countyID}
		mockRepo.On("UserExists", ctx, userID).Return(true, nil).Twice()
		mockResolver.On("Resolve", ctx, targetID, types.TargetPlace).Return(place, countyID, nil).Twice()
		mockRepo.On("Add", ctx, userID, mock.AnythingOfType("types.FavoriteRef")).Return(nil).Twice()

		assert.NoError(t, service.Add(ctx, userID, targetID, types.TargetPlace))
		assert.NoError(t, service.Add(ctx, userID, targetID, types.TargetPlace))
		mockRepo.AssertNumberOfCalls(t, "Add", 2)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		mockRepo := new(MockFavoritesRepo)
		mockResolver := new(MockResolver)
		service := NewFavoritesService(mockRepo, mockResolver, nil, logger)
		ctx := context.Background()

		mockRepo.On("UserExists", ctx, userID).Return(false, nil).Once()

		err := service.Add(ctx, userID, targetID, types.TargetPlace)
		assert.ErrorIs(t, err, types.ErrNotFound)
		mockRepo.AssertNotCalled(t, "Add")
	})

	t.Run("MissingTarget", func(t *testing.T) {
		mockRepo := new(MockFavoritesRepo)
		mockResolver := new(MockResolver)
		service := NewFavoritesService(mockRepo, mockResolver, nil, logger)
		ctx := context.Background()

		mockRepo.On("UserExists", ctx, userID).Return(true, nil).Once()
		mockResolver.On("Resolve", ctx, targetID, types.TargetHotel).Return(nil, uuid.Nil, types.ErrNotFound).Once()

		err := service.Add(ctx, userID, targetID, types.TargetHotel)
		assert.ErrorIs(t, err, types.ErrNotFound)
		mockRepo.AssertNotCalled(t, "Add")
	})
}

func TestRemove(t *testing.T) {
	logger := slog.Default()
	userID := uuid.New()
	targetID := uuid.New()

	t.Run("RemoveTwiceIsIdempotent", func(t *testing.T) {
		mockRepo := new(MockFavoritesRepo)
		service := NewFavoritesService(mockRepo, new(MockResolver), nil, logger)
		ctx := context.Background()

		mockRepo.On("UserExists", ctx, userID).Return(true, nil).Twice()
		mockRepo.On("Remove", ctx, userID, targetID, types.TargetPlace).Return(int64(1), nil).Once()
		mockRepo.On("Remove", ctx, userID, targetID, types.TargetPlace).Return(int64(0), nil).Once()

		assert.NoError(t, service.Remove(ctx, userID, targetID, types.TargetPlace))
		assert.NoError(t, service.Remove(ctx, userID, targetID, types.TargetPlace))
		mockRepo.AssertExpectations(t)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		mockRepo := new(MockFavoritesRepo)
		service := NewFavoritesService(mockRepo, new(MockResolver), nil, logger)
		ctx := context.Background()

		mockRepo.On("UserExists", ctx, userID).Return(false, nil).Once()

		err := service.Remove(ctx, userID, targetID, types.TargetPlace)
		assert.ErrorIs(t, err, types.ErrNotFound)
		mockRepo.AssertNotCalled(t, "Remove")
	})
}

func TestList(t *testing.T) {
	logger := slog.Default()
	userID := uuid.New()

	t.Run("DanglingReferenceKeepsSlotWithNilDetails", func(t *testing.T) {
		mockRepo := new(MockFavoritesRepo)
		mockResolver := new(MockResolver)
		service := NewFavoritesService(mockRepo, mockResolver, nil, logger)
		ctx := context.Background()

		liveID := uuid.New()
		deadID := uuid.New()
		countyID := uuid.New()
		refs := []types.FavoriteRef{
			{TargetID: liveID, TargetType: types.TargetPlace, CountyID: countyID},
			{TargetID: deadID, TargetType: types.TargetHotel, CountyID: countyID},
		}
		place := &types.Place{ID: liveID, CountyID: countyID, Name: "Old Bridge"}

		mockRepo.On("UserExists", ctx, userID).Return(true, nil).Once()
		mockRepo.On("List", ctx, userID).Return(refs, nil).Once()
		mockResolver.On("Resolve", mock.Anything, liveID, types.TargetPlace).Return(place, countyID, nil).Once()
		mockResolver.On("Resolve", mock.Anything, deadID, types.TargetHotel).Return(nil, uuid.Nil, types.ErrNotFound).Once()

		resolved, err := service.List(ctx, userID)

		require.NoError(t, err)
		require.Len(t, resolved, 2, "a broken reference must not shorten the list")
		assert.Equal(t, place, resolved[0].Details)
		assert.Equal(t, liveID, resolved[0].TargetID)
		assert.Nil(t, resolved[1].Details)
		assert.Equal(t, deadID, resolved[1].TargetID)
	})

	t.Run("EmptyLedger", func(t *testing.T) {
		mockRepo := new(MockFavoritesRepo)
		service := NewFavoritesService(mockRepo, new(MockResolver), nil, logger)
		ctx := context.Background()

		mockRepo.On("UserExists", ctx, userID).Return(true, nil).Once()
		mockRepo.On("List", ctx, userID).Return([]types.FavoriteRef{}, nil).Once()

		resolved, err := service.List(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, resolved)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		mockRepo := new(MockFavoritesRepo)
		service := NewFavoritesService(mockRepo, new(MockResolver), nil, logger)
		ctx := context.Background()

		mockRepo.On("UserExists", ctx, userID).Return(false, nil).Once()

		_, err := service.List(ctx, userID)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}
