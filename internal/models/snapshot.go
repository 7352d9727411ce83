package models

// Version identifies a generation of the database file layout.
type Version string

// Known database versions
const (
	V0 Version = "V0" // untagged files, entries without kind and timestamp
	V1 Version = "V1"

	CurrentVersion = V1
)

// Snapshot is the complete state of users and entries at a point in time.
type Snapshot struct {
	Version Version            // Layout version the snapshot conforms to
	Users   map[string]User    // Credentials keyed by username
	Entries map[string][]Entry // Entries keyed by owning username, insertion order
}

// NewSnapshot returns an empty snapshot of the current version.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Version: CurrentVersion,
		Users:   make(map[string]User),
		Entries: make(map[string][]Entry),
	}
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Version: s.Version,
		Users:   make(map[string]User, len(s.Users)),
		Entries: make(map[string][]Entry, len(s.Entries)),
	}
	for name, u := range s.Users {
		out.Users[name] = u
	}
	for name, list := range s.Entries {
		cp := make([]Entry, len(list))
		copy(cp, list)
		out.Entries[name] = cp
	}
	return out
}
