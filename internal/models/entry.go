package models

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded activity owned by a user.
type Entry struct {
	ID         uuid.UUID `json:"id"`         // Assigned at creation, immutable
	Kilometers float64   `json:"kilometers"` // Distance, non-negative
	Kind       Kind      `json:"kind"`       // Activity kind
	CreatedAt  time.Time `json:"created_at"` // UTC creation time, immutable
}

// Points returns the weighted score of the entry.
func (e Entry) Points() float64 {
	return e.Kilometers * e.Kind.Multiplier()
}
