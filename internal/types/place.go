package types

import (
	"time"

	"github.com/google/uuid"
)

// Place is a visitable point of interest inside a county.
type Place struct {
	ID          uuid.UUID `json:"_id"`
	CountyID    uuid.UUID `json:"county_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	ImageURL    string    `json:"imageUrl"`
	Rating      float64   `json:"rating"`
	Reviews     []Review  `json:"reviews"`
}

// Hotel is an accommodation listing inside a county.
type Hotel struct {
	ID          uuid.UUID `json:"_id"`
	CountyID    uuid.UUID `json:"county_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	ImageURL    string    `json:"imageUrl"`
	PriceRange  string    `json:"priceRange"`
	Rating      float64   `json:"rating"`
	Reviews     []Review  `json:"reviews"`
}

// Review is embedded in place and hotel payloads. Username and Avatar
// are denormalised copies of the author's display identity and are
// rewritten when the author renames themselves or changes their
// picture; see the user service.
type Review struct {
	ID        uuid.UUID `json:"_id"`
	Username  string    `json:"username"`
	Avatar    *string   `json:"avatar,omitempty"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"review"`
	CreatedAt time.Time `json:"createdAt"`
}
