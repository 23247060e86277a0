package user

// UpdateUserRequest is the body of PUT /api/users. The email selects
// the account; the remaining fields are optional updates.
type UpdateUserRequest struct {
	Email    string  `json:"email"`
	Username *string `json:"username,omitempty"`
	Profile  *string `json:"profile,omitempty"`
	Theme    *string `json:"theme,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
