package models

import "time"

// Activity event operations
const (
	OperationCreate = "create"
	OperationEdit   = "edit"
)

// ActivityEvent describes a change to a user's entries, published after the store accepted it.
type ActivityEvent struct {
	EventID    string    `json:"event_id"`   // Unique identifier of the event
	Operation  string    `json:"operation"`  // "create" or "edit"
	Username   string    `json:"username"`   // Owner of the entry
	EntryID    string    `json:"entry_id"`   // Affected entry
	Kilometers float64   `json:"kilometers"` // Distance after the change
	Kind       Kind      `json:"kind"`       // Kind after the change
	Points     float64   `json:"points"`     // Weighted points of the entry after the change
	Timestamp  time.Time `json:"timestamp"`  // When the change was accepted
}
