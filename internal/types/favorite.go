package types

import (
	"time"

	"github.com/google/uuid"
)

// TargetType tags the resource collection a favourite points into.
// The set is closed; the resolver treats anything else as a hotel,
// matching the mobile client's historic dispatch.
type TargetType string

const (
	TargetPlace  TargetType = "Place"
	TargetCounty TargetType = "County"
	TargetHotel  TargetType = "Hotel"
)

// FavoriteRef is a user-owned weak reference to a resource. CountyID
// is denormalised at insert time so list screens never need a join:
// it equals TargetID when TargetType is County, and the owning county
// otherwise.
type FavoriteRef struct {
	TargetID   uuid.UUID  `json:"_id"`
	TargetType TargetType `json:"type"`
	CountyID   uuid.UUID  `json:"countyId"`
	CreatedAt  time.Time  `json:"-"`
}

// ResolvedFavorite pairs a reference with the dereferenced resource.
// Details is nil when the target has since been deleted; listings keep
// the entry rather than dropping or failing it.
type ResolvedFavorite struct {
	TargetID   uuid.UUID  `json:"_id"`
	TargetType TargetType `json:"type"`
	CountyID   uuid.UUID  `json:"countyId"`
	Details    any        `json:"details"`
}

// AddFavoriteRequest is the body of POST /api/users/addToFavorites and
// removeFromFavorites.
type AddFavoriteRequest struct {
	ItemID   string     `json:"itemId"`
	ItemType TargetType `json:"itemType"`
}

// FavoritesResponse wraps a favourites listing.
type FavoritesResponse struct {
	Favorites []ResolvedFavorite `json:"favorites"`
}
