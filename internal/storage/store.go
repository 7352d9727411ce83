// Package storage is the embedded database of the service. A Store owns the
// whole snapshot of users and entries, guards it with a single lock and
// rewrites the database file after every mutation.
package storage

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/kmlog/internal/credentials"
	"github.com/sbilibin2017/kmlog/internal/logger"
	"github.com/sbilibin2017/kmlog/internal/migration"
	"github.com/sbilibin2017/kmlog/internal/models"
)

// DefaultPath is where the database lives unless configured otherwise.
const DefaultPath = "./database.json"

const (
	filePerm = 0o600

	maxIDAttempts = 8
)

// Store is the single owner of the in-memory snapshot.
//
// Mutations hold the write lock across both the change and the file write, so
// readers never see a state that is newer than what was attempted on disk.
// If the write fails the change stays in memory and a *PersistError is
// returned next to the normal result.
type Store struct {
	mu   sync.RWMutex
	snap *models.Snapshot

	path   string
	random io.Reader
	clock  func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithRandom sets the entropy source for salts and entry IDs.
func WithRandom(r io.Reader) Option {
	return func(s *Store) {
		s.random = r
	}
}

// WithClock sets the time source for entry creation times.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// New wraps an already loaded snapshot. A nil snapshot starts empty.
func New(path string, snap *models.Snapshot, opts ...Option) *Store {
	if snap == nil {
		snap = models.NewSnapshot()
	}
	s := &Store{
		snap:   snap,
		path:   path,
		random: rand.Reader,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads and migrates the database file at path and returns a Store over it.
func Open(path string, opts ...Option) (*Store, error) {
	snap, version, err := migration.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Log.Infow("database loaded",
		"path", path,
		"version", version,
		"users", len(snap.Users),
		"entry_lists", len(snap.Entries),
	)
	return New(path, snap, opts...), nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// RegisterUser stores salted credentials for a new username. It returns false
// without changes when the name is taken.
func (s *Store) RegisterUser(username, password string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.snap.Users[username]; exists {
		return false, nil
	}

	user, err := credentials.New(s.random, password)
	if err != nil {
		return false, fmt.Errorf("create credentials: %w", err)
	}
	s.snap.Users[username] = user

	return true, s.persist()
}

// Authenticate reports whether password matches the stored credentials of username.
func (s *Store) Authenticate(username, password string) bool {
	if username == "" {
		return false
	}

	s.mu.RLock()
	user, ok := s.snap.Users[username]
	s.mu.RUnlock()

	if !ok {
		return false
	}
	return credentials.Verify(user, password)
}

// CreateEntry appends a new entry for username and returns its ID.
func (s *Store) CreateEntry(username string, kilometers float64, kind models.Kind) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.newEntryID(username)
	if err != nil {
		return uuid.Nil, err
	}

	s.snap.Entries[username] = append(s.snap.Entries[username], models.Entry{
		ID:         id,
		Kilometers: kilometers,
		Kind:       kind,
		CreatedAt:  s.clock().UTC(),
	})

	return id, s.persist()
}

// EditEntry replaces distance and kind of the entry of username with the same
// ID as updated. ID and creation time of the stored entry are kept. It returns
// false when the user has no such entry.
func (s *Store) EditEntry(username string, updated models.Entry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.snap.Entries[username]
	if !ok {
		return false, nil
	}

	for i := range entries {
		if entries[i].ID != updated.ID {
			continue
		}
		entries[i].Kilometers = updated.Kilometers
		entries[i].Kind = updated.Kind
		return true, s.persist()
	}
	return false, nil
}

// ListEntries returns a copy of the entries of username in insertion order.
func (s *Store) ListEntries(username string) []models.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.snap.Entries[username]
	out := make([]models.Entry, len(entries))
	copy(out, entries)
	return out
}

// GetEntry returns a single entry of username.
func (s *Store) GetEntry(username string, id uuid.UUID) (models.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.snap.Entries[username] {
		if e.ID == id {
			return e, true
		}
	}
	return models.Entry{}, false
}

// SumKilometers returns the unweighted distance total of username. The
// boolean is false when the user never recorded anything.
func (s *Store) SumKilometers(username string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, ok := s.snap.Entries[username]
	if !ok {
		return 0, false
	}
	var sum float64
	for _, e := range entries {
		sum += e.Kilometers
	}
	return sum, true
}

// Highscore ranks all users with entries by weighted distance.
func (s *Store) Highscore() []models.HighscoreEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Aggregate(s.snap.Entries)
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snap.Clone()
}

// newEntryID draws a random UUID that is not yet used by username.
// Must be called with the write lock held.
func (s *Store) newEntryID(username string) (uuid.UUID, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id, err := uuid.NewRandomFromReader(s.random)
		if err != nil {
			return uuid.Nil, fmt.Errorf("generate entry id: %w", err)
		}
		if !s.hasEntry(username, id) {
			return id, nil
		}
	}
	return uuid.Nil, fmt.Errorf("generate entry id: no unique id after %d attempts", maxIDAttempts)
}

func (s *Store) hasEntry(username string, id uuid.UUID) bool {
	for _, e := range s.snap.Entries[username] {
		if e.ID == id {
			return true
		}
	}
	return false
}

// persist writes the full snapshot. Must be called with the write lock held.
func (s *Store) persist() error {
	data, err := migration.Encode(s.snap)
	if err == nil {
		err = writeFileAtomic(s.path, data, filePerm)
	}
	if err != nil {
		logger.Log.Errorw("failed to persist database", "path", s.path, "error", err)
		return &PersistError{Path: s.path, Err: err}
	}
	return nil
}
