package models

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// example: bergziege
	Username string `json:"username"`

	// Password
	// required: true
	// example: gipfelkreuz
	Password string `json:"password"`
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	// Success message
	// example: User registered successfully
	Message string `json:"message"`

	// Set when the user was created but could not be written to disk
	Warning string `json:"warning,omitempty"`
}
