package migration

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/kmlog/internal/models"
)

type idV1 struct {
	ID uuid.UUID `json:"id"`
}

type kilometerV1 struct {
	Kilometers float64 `json:"kilometers"`
}

type entryV1 struct {
	ID         *idV1        `json:"id"`
	Kilometers *kilometerV1 `json:"kilometers"`
	Kind       *models.Kind `json:"kind"`
	Timestamp  *time.Time   `json:"timestamp"`
}

type fileV1 struct {
	DatabaseVersion *models.Version        `json:"databaseVersion,omitempty"`
	LegacyVersion   *models.Version        `json:"database_version,omitempty"`
	Users           map[string]models.User `json:"users"`
	Entries         map[string][]entryV1   `json:"entries"`
}

func decodeV1(data []byte) (*models.Snapshot, error) {
	var f fileV1
	if err := strictUnmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: v1: %v", ErrCorruptStore, err)
	}
	if f.Users == nil || f.Entries == nil {
		return nil, fmt.Errorf("%w: v1: users and entries are required", ErrCorruptStore)
	}

	snap := models.NewSnapshot()
	for name, u := range f.Users {
		snap.Users[name] = u
	}
	for name, list := range f.Entries {
		entries := make([]models.Entry, 0, len(list))
		for i, e := range list {
			if e.ID == nil || e.Kilometers == nil || e.Kind == nil || e.Timestamp == nil {
				return nil, fmt.Errorf("%w: v1: entry %d of %q is incomplete", ErrCorruptStore, i, name)
			}
			entries = append(entries, models.Entry{
				ID:         e.ID.ID,
				Kilometers: e.Kilometers.Kilometers,
				Kind:       *e.Kind,
				CreatedAt:  e.Timestamp.UTC(),
			})
		}
		snap.Entries[name] = entries
	}
	return snap, nil
}

// Encode serializes a snapshot in the current file layout.
func Encode(snap *models.Snapshot) ([]byte, error) {
	version := models.CurrentVersion
	f := fileV1{
		DatabaseVersion: &version,
		Users:           make(map[string]models.User, len(snap.Users)),
		Entries:         make(map[string][]entryV1, len(snap.Entries)),
	}
	for name, u := range snap.Users {
		f.Users[name] = u
	}
	for name, list := range snap.Entries {
		out := make([]entryV1, 0, len(list))
		for _, e := range list {
			kind := e.Kind
			ts := e.CreatedAt.UTC()
			out = append(out, entryV1{
				ID:         &idV1{ID: e.ID},
				Kilometers: &kilometerV1{Kilometers: e.Kilometers},
				Kind:       &kind,
				Timestamp:  &ts,
			})
		}
		f.Entries[name] = out
	}
	return json.Marshal(f)
}
