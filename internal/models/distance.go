package models

import (
	"time"

	"github.com/google/uuid"
)

// CreateEntryRequest represents the JSON body for recording a distance
// swagger:model CreateEntryRequest
type CreateEntryRequest struct {
	// Distance in kilometers
	// required: true
	// example: 4.2
	Kilometers float64 `json:"kilometers"`
}

// CreateEntryResponse represents a successful create response
// swagger:model CreateEntryResponse
type CreateEntryResponse struct {
	// Identifier of the new entry
	// example: 0b6f3c3e-4f7e-4a9b-9c1a-2f1d5b0c7e11
	ID uuid.UUID `json:"id"`

	// Set when the entry was stored but could not be written to disk
	Warning string `json:"warning,omitempty"`
}

// EditEntryRequest represents the JSON body for editing an entry
// swagger:model EditEntryRequest
type EditEntryRequest struct {
	// Distance in kilometers
	// required: true
	// example: 5.0
	Kilometers float64 `json:"kilometers"`

	// Kind slug
	// required: true
	// example: radfahren
	Kind string `json:"kind"`
}

// EditEntryResponse represents a successful edit response
// swagger:model EditEntryResponse
type EditEntryResponse struct {
	// Success message
	// example: Entry updated successfully
	Message string `json:"message"`

	// Set when the edit was applied but could not be written to disk
	Warning string `json:"warning,omitempty"`
}

// EntryResponse is the wire form of a single entry
// swagger:model EntryResponse
type EntryResponse struct {
	ID         uuid.UUID `json:"id"`
	Kilometers float64   `json:"kilometers"`
	Kind       Kind      `json:"kind"`
	Slug       string    `json:"slug"`
	Label      string    `json:"label"`
	Points     float64   `json:"points"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewEntryResponse converts a stored entry to its wire form.
func NewEntryResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		Kilometers: e.Kilometers,
		Kind:       e.Kind,
		Slug:       e.Kind.Slug(),
		Label:      e.Kind.String(),
		Points:     e.Points(),
		CreatedAt:  e.CreatedAt,
	}
}

// EntriesResponse lists the entries of the authenticated user
// swagger:model EntriesResponse
type EntriesResponse struct {
	List []EntryResponse `json:"list"`
}

// SumResponse is the unweighted distance total of a user
// swagger:model SumResponse
type SumResponse struct {
	// example: 42.0
	Kilometers float64 `json:"kilometers"`
}
