package models

// HighscoreEntry is one row of the leaderboard.
// swagger:model HighscoreEntry
type HighscoreEntry struct {
	// Username
	// example: bergziege
	User string `json:"user"`

	// Weighted points
	// example: 42.5
	Points float64 `json:"points"`
}

// HighscoreResponse represents the leaderboard response
// swagger:model HighscoreResponse
type HighscoreResponse struct {
	// Rows sorted by points, highest first
	List []HighscoreEntry `json:"list"`
}
