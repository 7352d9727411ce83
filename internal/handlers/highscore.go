package handlers

//go:generate mockgen -source=highscore.go -destination=highscore_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/kmlog/internal/models"
)

// HighscoreReader returns the leaderboard.
type HighscoreReader interface {
	Highscore(ctx context.Context) []models.HighscoreEntry
}

// NewHighscoreHandler returns an HTTP handler for the leaderboard.
// @Summary Highscore
// @Description Weighted points per user, highest first. Ties are ordered by username.
// @Tags entries
// @Produce json
// @Success 200 {object} models.HighscoreResponse "Leaderboard"
// @Router /highscore [get]
func NewHighscoreHandler(svc HighscoreReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list := svc.Highscore(r.Context())
		if list == nil {
			list = []models.HighscoreEntry{}
		}
		writeJSON(w, http.StatusOK, models.HighscoreResponse{List: list})
	}
}
