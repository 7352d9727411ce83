package models

// ErrorResponse represents an error body returned by every endpoint
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: Invalid username or password
	Error string `json:"error"`
}
