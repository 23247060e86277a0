package types

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role values accepted at login. Accounts carrying anything else are
// refused with ErrForbidden.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UserAuth represents the credential-side view of an account.
type UserAuth struct {
	ID        string    `json:"id" example:"d290f1ee-6c54-4b01-90e6-d701748f0851"` // Unique identifier (UUID).
	Username  string    `json:"username" example:"johndoe"`                        // Unique username.
	Email     string    `json:"email" example:"john.doe@example.com"`              // Email address used for login.
	Password  string    `json:"-"`                                                 // Stored secret (never exposed).
	Role      string    `json:"role" example:"user"`                               // User role ('user' or 'admin').
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Claims represents the custom claims included in the session token.
type Claims struct {
	UserID               string `json:"uid"`           // Custom claim for User ID.
	Username             string `json:"usr,omitempty"` // Custom claim for Username.
	Role                 string `json:"rol,omitempty"` // Custom claim for User Role.
	jwt.RegisteredClaims        // Standard claims (ExpiresAt, IssuedAt, Subject, ...).
}
