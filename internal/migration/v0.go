package migration

import (
	"fmt"
	"time"

	"github.com/sbilibin2017/kmlog/internal/models"
)

// SentinelTime is stamped on entries whose creation time was never recorded.
var SentinelTime = time.Unix(0, 0).UTC()

// entryV0 predates kinds and timestamps. Some late V0 files already carry a
// kind, so both are optional here and only backfilled when missing.
type entryV0 struct {
	ID         *idV1        `json:"id"`
	Kilometers *kilometerV1 `json:"kilometers"`
	Kind       *models.Kind `json:"kind,omitempty"`
	Timestamp  *time.Time   `json:"timestamp,omitempty"`
}

type fileV0 struct {
	Users   map[string]models.User `json:"users"`
	Entries map[string][]entryV0   `json:"entries"`
}

func decodeV0(data []byte) (*models.Snapshot, error) {
	var f fileV0
	if err := strictUnmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: v0: %v", ErrCorruptStore, err)
	}
	if f.Users == nil || f.Entries == nil {
		return nil, fmt.Errorf("%w: v0: users and entries are required", ErrCorruptStore)
	}
	for name, list := range f.Entries {
		for i, e := range list {
			if e.ID == nil || e.Kilometers == nil {
				return nil, fmt.Errorf("%w: v0: entry %d of %q is incomplete", ErrCorruptStore, i, name)
			}
		}
	}
	return upgradeV0(f), nil
}

// upgradeV0 converts a V0 file to the current snapshot. Missing kinds become
// Running and missing timestamps become SentinelTime; users are copied as is.
func upgradeV0(f fileV0) *models.Snapshot {
	snap := models.NewSnapshot()
	for name, u := range f.Users {
		snap.Users[name] = u
	}
	for name, list := range f.Entries {
		entries := make([]models.Entry, 0, len(list))
		for _, e := range list {
			entry := models.Entry{
				ID:         e.ID.ID,
				Kilometers: e.Kilometers.Kilometers,
				Kind:       models.Running,
				CreatedAt:  SentinelTime,
			}
			if e.Kind != nil {
				entry.Kind = *e.Kind
			}
			if e.Timestamp != nil {
				entry.CreatedAt = e.Timestamp.UTC()
			}
			entries = append(entries, entry)
		}
		snap.Entries[name] = entries
	}
	return snap
}
