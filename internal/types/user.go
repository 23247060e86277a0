package types

import (
	"github.com/google/uuid"
)

// User is the public view of an account as returned by GET /api/users.
// Password and bookkeeping columns are stripped before serialisation.
type User struct {
	ID        uuid.UUID     `json:"_id"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	Role      string        `json:"role"`
	Profile   *string       `json:"profile,omitempty"` // profile image URL
	Theme     *string       `json:"theme,omitempty"`
	Favorites []FavoriteRef `json:"favorites"`
}

// UpdateProfileParams carries the mutable profile fields. The account
// is addressed by email, matching the mobile client's update call.
type UpdateProfileParams struct {
	Username *string `json:"username,omitempty"`
	Profile  *string `json:"profile,omitempty"`
	Theme    *string `json:"theme,omitempty"`
}
