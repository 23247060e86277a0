package favorites

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wanderke/wanderke-api/internal/types"
)

type MockPlaceLookup struct{ mock.Mock }

func (m *MockPlaceLookup) GetPlace(ctx context.Context, placeID uuid.UUID) (*types.Place, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Place), args.Error(1)
}

type MockCountyLookup struct{ mock.Mock }

func (m *MockCountyLookup) GetCounty(ctx context.Context, countyID uuid.UUID) (*types.County, error) {
	args := m.Called(ctx, countyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.County), args.Error(1)
}

type MockHotelLookup struct{ mock.Mock }

func (m *MockHotelLookup) GetHotel(ctx context.Context, hotelID uuid.UUID) (*types.Hotel, error) {
	args := m.Called(ctx, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Hotel), args.Error(1)
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	targetID := uuid.New()
	countyID := uuid.New()

	t.Run("Place", func(t *testing.T) {
		places := new(MockPlaceLookup)
		resolver := NewResolver(places, new(MockCountyLookup), new(MockHotelLookup))

		place := &types.Place{ID: targetID, CountyID: countyID, Name: "Old Bridge"}
		places.On("GetPlace", ctx, targetID).Return(place, nil).Once()

		details, gotCounty, err := resolver.Resolve(ctx, targetID, types.TargetPlace)

		require.NoError(t, err)
		assert.Equal(t, place, details)
		assert.Equal(t, countyID, gotCounty)
		places.AssertExpectations(t)
	})

	t.Run("CountyIsItsOwnCounty", func(t *testing.T) {
		counties := new(MockCountyLookup)
		resolver := NewResolver(new(MockPlaceLookup), counties, new(MockHotelLookup))

		county := &types.County{ID: targetID, Name: "Maramures"}
		counties.On("GetCounty", ctx, targetID).Return(county, nil).Once()

		details, gotCounty, err := resolver.Resolve(ctx, targetID, types.TargetCounty)

		require.NoError(t, err)
		assert.Equal(t, county, details)
		assert.Equal(t, targetID, gotCounty)
		counties.AssertExpectations(t)
	})

	t.Run("Hotel", func(t *testing.T) {
		hotels := new(MockHotelLookup)
		resolver := NewResolver(new(MockPlaceLookup), new(MockCountyLookup), hotels)

		hotel := &types.Hotel{ID: targetID, CountyID: countyID, Name: "Grand Hotel"}
		hotels.On("GetHotel", ctx, targetID).Return(hotel, nil).Once()

		details, gotCounty, err := resolver.Resolve(ctx, targetID, types.TargetHotel)

		require.NoError(t, err)
		assert.Equal(t, hotel, details)
		assert.Equal(t, countyID, gotCounty)
		hotels.AssertExpectations(t)
	})

	t.Run("UnknownTagFallsThroughToHotels", func(t *testing.T) {
		hotels := new(MockHotelLookup)
		resolver := NewResolver(new(MockPlaceLookup), new(MockCountyLookup), hotels)

		hotel := &types.Hotel{ID: targetID, CountyID: countyID}
		hotels.On("GetHotel", ctx, targetID).Return(hotel, nil).Once()

		details, _, err := resolver.Resolve(ctx, targetID, types.TargetType("Motel"))

		require.NoError(t, err)
		assert.Equal(t, hotel, details)
		hotels.AssertExpectations(t)
	})

	t.Run("MissingTarget", func(t *testing.T) {
		places := new(MockPlaceLookup)
		resolver := NewResolver(places, new(MockCountyLookup), new(MockHotelLookup))

		places.On("GetPlace", ctx, targetID).Return(nil, types.ErrNotFound).Once()

		details, _, err := resolver.Resolve(ctx, targetID, types.TargetPlace)

		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.Nil(t, details)
	})
}
