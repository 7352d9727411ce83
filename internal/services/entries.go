package services

//go:generate mockgen -source=entries.go -destination=entries_mock.go -package=services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/kmlog/internal/logger"
	"github.com/sbilibin2017/kmlog/internal/models"
	"github.com/segmentio/kafka-go"
)

var (
	// ErrEntryNotFound is returned when the user has no entry with the given ID.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrNoEntries is returned when the user never recorded anything.
	ErrNoEntries = errors.New("no entries for user")
	// ErrInvalidDistance is returned for negative or non-finite distances.
	ErrInvalidDistance = errors.New("distance must be a finite, non-negative number")
	// ErrInvalidKind is returned for kinds outside the supported set.
	ErrInvalidKind = models.ErrUnknownKind
)

// EntryStore defines entry operations of the database.
type EntryStore interface {
	CreateEntry(username string, kilometers float64, kind models.Kind) (uuid.UUID, error)
	EditEntry(username string, updated models.Entry) (bool, error)
	ListEntries(username string) []models.Entry
	GetEntry(username string, id uuid.UUID) (models.Entry, bool)
	SumKilometers(username string) (float64, bool)
	Highscore() []models.HighscoreEntry
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// EntryService records and edits activities and publishes activity events.
type EntryService struct {
	store       EntryStore
	kafkaWriter KafkaWriter
	now         func() time.Time
}

// NewEntryService creates a new EntryService. A nil writer disables event publishing.
func NewEntryService(store EntryStore, kafkaWriter KafkaWriter) *EntryService {
	return &EntryService{
		store:       store,
		kafkaWriter: kafkaWriter,
		now:         time.Now,
	}
}

// Create records a new activity and returns its ID. When the entry was stored
// but not persisted the ID is returned together with ErrNotPersisted.
func (s *EntryService) Create(ctx context.Context, username string, kilometers float64, kind models.Kind) (uuid.UUID, error) {
	if err := validate(kilometers, kind); err != nil {
		return uuid.Nil, err
	}

	id, err := s.store.CreateEntry(username, kilometers, kind)
	if err != nil && !errors.Is(err, ErrNotPersisted) {
		logger.Log.Errorw("failed to create entry", "username", username, "error", err)
		return uuid.Nil, err
	}

	s.publish(ctx, models.ActivityEvent{
		Operation:  models.OperationCreate,
		Username:   username,
		EntryID:    id.String(),
		Kilometers: kilometers,
		Kind:       kind,
		Points:     kilometers * kind.Multiplier(),
	})

	return id, err
}

// Edit changes distance and kind of an existing entry.
func (s *EntryService) Edit(ctx context.Context, username string, id uuid.UUID, kilometers float64, kind models.Kind) error {
	if err := validate(kilometers, kind); err != nil {
		return err
	}

	updated, err := s.store.EditEntry(username, models.Entry{ID: id, Kilometers: kilometers, Kind: kind})
	if !updated {
		if err != nil {
			logger.Log.Errorw("failed to edit entry", "username", username, "entry_id", id, "error", err)
			return err
		}
		return ErrEntryNotFound
	}

	s.publish(ctx, models.ActivityEvent{
		Operation:  models.OperationEdit,
		Username:   username,
		EntryID:    id.String(),
		Kilometers: kilometers,
		Kind:       kind,
		Points:     kilometers * kind.Multiplier(),
	})

	return err
}

// List returns all entries of a user in the order they were recorded.
func (s *EntryService) List(ctx context.Context, username string) []models.Entry {
	return s.store.ListEntries(username)
}

// Get returns one entry of a user.
func (s *EntryService) Get(ctx context.Context, username string, id uuid.UUID) (models.Entry, error) {
	entry, ok := s.store.GetEntry(username, id)
	if !ok {
		return models.Entry{}, ErrEntryNotFound
	}
	return entry, nil
}

// Sum returns the unweighted total distance of a user.
func (s *EntryService) Sum(ctx context.Context, username string) (float64, error) {
	sum, ok := s.store.SumKilometers(username)
	if !ok {
		return 0, ErrNoEntries
	}
	return sum, nil
}

// Highscore returns the leaderboard.
func (s *EntryService) Highscore(ctx context.Context) []models.HighscoreEntry {
	return s.store.Highscore()
}

func validate(kilometers float64, kind models.Kind) error {
	if math.IsNaN(kilometers) || math.IsInf(kilometers, 0) || kilometers < 0 {
		return ErrInvalidDistance
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	return nil
}

// publish sends an activity event to Kafka. Failures are logged only; the
// store already accepted the change.
func (s *EntryService) publish(ctx context.Context, event models.ActivityEvent) {
	event.EventID = uuid.NewString()
	event.Timestamp = s.now().UTC()

	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event_id", event.EventID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal activity event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.Username),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish activity event", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("Activity event published", "event_id", event.EventID, "operation", event.Operation)
	}
}
