package favorites

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/wanderke/wanderke-api/internal/types"
)

// Lookup interfaces are satisfied by the place, county and hotel
// services. Keeping them here avoids a dependency on those packages'
// full service contracts.
type PlaceLookup interface {
	GetPlace(ctx context.Context, placeID uuid.UUID) (*types.Place, error)
}

type CountyLookup interface {
	GetCounty(ctx context.Context, countyID uuid.UUID) (*types.County, error)
}

type HotelLookup interface {
	GetHotel(ctx context.Context, hotelID uuid.UUID) (*types.Hotel, error)
}

var _ Resolver = (*ResolverImpl)(nil)

// Resolver dereferences a favourite against the collection named by
// its type tag.
type Resolver interface {
	// Resolve returns the target's details and its owning county ID.
	// Returns types.ErrNotFound when the target does not exist.
	Resolve(ctx context.Context, targetID uuid.UUID, targetType types.TargetType) (any, uuid.UUID, error)
}

type ResolverImpl struct {
	places   PlaceLookup
	counties CountyLookup
	hotels   HotelLookup
}

func NewResolver(places PlaceLookup, counties CountyLookup, hotels HotelLookup) *ResolverImpl {
	return &ResolverImpl{
		places:   places,
		counties: counties,
		hotels:   hotels,
	}
}

// Resolve dispatches on the closed type tag. Unknown tags fall through
// to the hotel collection, which is what the mobile client has always
// relied on.
func (r *ResolverImpl) Resolve(ctx context.Context, targetID uuid.UUID, targetType types.TargetType) (any, uuid.UUID, error) {
	switch targetType {
	case types.TargetPlace:
		place, err := r.places.GetPlace(ctx, targetID)
		if err != nil {
			return nil, uuid.Nil, wrapResolveErr(targetID, targetType, err)
		}
		return place, place.CountyID, nil

	case types.TargetCounty:
		county, err := r.counties.GetCounty(ctx, targetID)
		if err != nil {
			return nil, uuid.Nil, wrapResolveErr(targetID, targetType, err)
		}
		// A county is its own owning county.
		return county, county.ID, nil

	default:
		hotel, err := r.hotels.GetHotel(ctx, targetID)
		if err != nil {
			return nil, uuid.Nil, wrapResolveErr(targetID, targetType, err)
		}
		return hotel, hotel.CountyID, nil
	}
}

func wrapResolveErr(targetID uuid.UUID, targetType types.TargetType, err error) error {
	if errors.Is(err, types.ErrNotFound) {
		return fmt.Errorf("target %s of type %s: %w", targetID, targetType, types.ErrNotFound)
	}
	return fmt.Errorf("failed to resolve target %s of type %s: %w", targetID, targetType, err)
}
