package storage

import (
	"sort"

	"github.com/sbilibin2017/kmlog/internal/models"
)

// Aggregate ranks every user present in entries by the sum of their entries'
// weighted distance. Ties are ordered by username so the result is stable.
func Aggregate(entries map[string][]models.Entry) []models.HighscoreEntry {
	list := make([]models.HighscoreEntry, 0, len(entries))
	for user, userEntries := range entries {
		var points float64
		for _, e := range userEntries {
			points += e.Points()
		}
		list = append(list, models.HighscoreEntry{User: user, Points: points})
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].Points != list[j].Points {
			return list[i].Points > list[j].Points
		}
		return list[i].User < list[j].User
	})
	return list
}
