package types

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessage is a message sent through the app's contact form.
type ContactMessage struct {
	ID        uuid.UUID `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
