package county

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

// MockCountyRepo is a mock implementation of the CountyRepo interface
type MockCountyRepo struct {
	mock.Mock
}

func (m *MockCountyRepo) GetCounties(ctx context.Context) ([]types.County, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.County), args.Error(1)
}

func (m *MockCountyRepo) GetCounty(ctx context.Context, countyID uuid.UUID) (*types.County, error) {
	args := m.Called(ctx, countyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.County), args.Error(1)
}

func (m *MockCountyRepo) GetEventsByCounty(ctx context.Context, countyID uuid.UUID) ([]types.Event, error) {
	args := m.Called(ctx, countyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Event), args.Error(1)
}

func TestGetCounties(t *testing.T) {
	logger := slog.Default()

	t.Run("SecondCallServedFromCache", func(t *testing.T) {
		mockRepo := new(MockCountyRepo)
		service := NewCountyService(mockRepo, logger)
		ctx := context.Background()

		counties := []types.County{
			{ID: uuid.New(), Name: "Cluj", Capital: "Cluj-Napoca"},
			{ID: uuid.New(), Name: "Maramures", Capital: "Baia Mare"},
		}
		mockRepo.On("GetCounties", ctx).Return(counties, nil).Once()

		first, err := service.GetCounties(ctx)
		require.NoError(t, err)
		second, err := service.GetCounties(ctx)
		require.NoError(t, err)

		assert.Equal(t, counties, first)
		assert.Equal(t, counties, second)
		mockRepo.AssertNumberOfCalls(t, "GetCounties", 1)
	})

	t.Run("RepoErrorIsNotCached", func(t *testing.T) {
		mockRepo := new(MockCountyRepo)
		service := NewCountyService(mockRepo, logger)
		ctx := context.Background()

		mockRepo.On("GetCounties", ctx).Return(nil, assert.AnError).Once()
		mockRepo.On("GetCounties", ctx).Return([]types.County{}, nil).Once()

		_, err := service.GetCounties(ctx)
		require.Error(t, err)

		counties, err := service.GetCounties(ctx)
		require.NoError(t, err)
		assert.Empty(t, counties)
		mockRepo.AssertNumberOfCalls(t, "GetCounties", 2)
	})
}

func TestGetCounty(t *testing.T) {
	logger := slog.Default()
	countyID := uuid.New()

	t.Run("CachedAfterFirstLookup", func(t *testing.T) {
		mockRepo := new(MockCountyRepo)
		service := NewCountyService(mockRepo, logger)
		ctx := context.Background()

		county := &types.County{ID: countyID, Name: "Cluj"}
		mockRepo.On("GetCounty", ctx, countyID).Return(county, nil).Once()

		first, err := service.GetCounty(ctx, countyID)
		require.NoError(t, err)
		second, err := service.GetCounty(ctx, countyID)
		require.NoError(t, err)

		assert.Equal(t, county, first)
		assert.Equal(t, county, second)
		mockRepo.AssertNumberOfCalls(t, "GetCounty", 1)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockCountyRepo)
		service := NewCountyService(mockRepo, logger)
		ctx := context.Background()

		mockRepo.On("GetCounty", ctx, countyID).Return(nil, types.ErrNotFound).Once()

		_, err := service.GetCounty(ctx, countyID)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestGetEventsByCounty(t *testing.T) {
	mockRepo := new(MockCountyRepo)
	service := NewCountyService(mockRepo, slog.Default())
	ctx := context.Background()
	countyID := uuid.New()

	events := []types.Event{{ID: uuid.New(), CountyID: countyID, Name: "Untold"}}
	// Events bypass the cache, so every call hits the repository.
	mockRepo.On("GetEventsByCounty", ctx, countyID).Return(events, nil).Twice()

	_, err := service.GetEventsByCounty(ctx, countyID)
	require.NoError(t, err)
	_, err = service.GetEventsByCounty(ctx, countyID)
	require.NoError(t, err)
	mockRepo.AssertNumberOfCalls(t, "GetEventsByCounty", 2)
}
