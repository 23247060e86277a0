package types

import (
	"time"

	"github.com/google/uuid"
)

// County is a top-level geographic unit; places, hotels and events all
// hang off one.
type County struct {
	ID         uuid.UUID `json:"_id"`
	Name       string    `json:"name"`
	Capital    string    `json:"capital"`
	About      string    `json:"about"`
	ImageURL   string    `json:"imageUrl"`
	Population int       `json:"population"`
}

// Event is a county-scoped happening shown on the county detail screen.
type Event struct {
	ID          uuid.UUID `json:"_id"`
	CountyID    uuid.UUID `json:"county_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Venue       string    `json:"venue"`
	ImageURL    string    `json:"imageUrl"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
}
