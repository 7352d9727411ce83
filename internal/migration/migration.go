// Package migration reads the database file of any known layout version and
// upgrades it to the current in-memory snapshot. It runs once at startup and
// only moves forward.
package migration

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/google/uuid"
	"github.com/sbilibin2017/kmlog/internal/logger"
	"github.com/sbilibin2017/kmlog/internal/models"
)

var (
	// ErrCorruptStore is returned when the file is neither a valid V0 nor a valid V1 database.
	ErrCorruptStore = errors.New("corrupt database file")
	// ErrUnknownVersion is returned for a version tag this build does not understand.
	ErrUnknownVersion = errors.New("unknown database version")
)

// versionProbe only looks at the envelope tag. Files written by the first
// server releases use the snake_case key.
type versionProbe struct {
	DatabaseVersion *models.Version `json:"databaseVersion"`
	LegacyVersion   *models.Version `json:"database_version"`
}

// Load reads the database file at path and returns it as a current-version
// snapshot together with the version found on disk. A missing file yields an
// empty snapshot; a present but unreadable file is always an error.
func Load(path string) (*models.Snapshot, models.Version, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Log.Infow("database file not found, starting empty", "path", path)
			return models.NewSnapshot(), models.CurrentVersion, nil
		}
		return nil, "", fmt.Errorf("read database %s: %w", path, err)
	}

	snap, version, err := Decode(data)
	if err != nil {
		logger.Log.Errorw("failed to load database", "path", path, "error", err)
		return nil, "", err
	}

	if version != models.CurrentVersion {
		logger.Log.Infow("database migrated",
			"path", path,
			"from", version,
			"to", models.CurrentVersion,
			"users", len(snap.Users),
			"entry_lists", len(snap.Entries),
		)
	}

	return snap, version, nil
}

// Detect returns the layout version declared by the file envelope.
func Detect(data []byte) (models.Version, error) {
	var probe versionProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}

	tag := probe.DatabaseVersion
	if tag == nil {
		tag = probe.LegacyVersion
	}
	if tag == nil {
		return models.V0, nil
	}

	switch *tag {
	case models.V1:
		return models.V1, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownVersion, *tag)
	}
}

// Decode parses data as the version its envelope declares and upgrades it to
// the current snapshot. Anything that is not strictly one of the known layouts
// is rejected with ErrCorruptStore or ErrUnknownVersion.
func Decode(data []byte) (*models.Snapshot, models.Version, error) {
	version, err := Detect(data)
	if err != nil {
		return nil, "", err
	}

	var snap *models.Snapshot
	switch version {
	case models.V1:
		snap, err = decodeV1(data)
	case models.V0:
		snap, err = decodeV0(data)
	}
	if err != nil {
		return nil, "", err
	}

	if err := Validate(snap); err != nil {
		return nil, "", err
	}
	return snap, version, nil
}

// Validate checks the invariants a loaded snapshot must hold.
func Validate(snap *models.Snapshot) error {
	for user, entries := range snap.Entries {
		seen := make(map[uuid.UUID]struct{}, len(entries))
		for _, e := range entries {
			if _, dup := seen[e.ID]; dup {
				return fmt.Errorf("%w: duplicate entry id %s for user %q", ErrCorruptStore, e.ID, user)
			}
			seen[e.ID] = struct{}{}
		}
	}
	return nil
}

// strictUnmarshal decodes exactly one JSON value into v, refusing unknown
// fields and trailing data.
func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("unexpected data after database object")
	}
	return nil
}
