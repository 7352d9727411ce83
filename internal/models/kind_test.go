package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKinds_Exhaustive(t *testing.T) {
	kinds := Kinds()
	assert.Len(t, kinds, len(kindTable))

	seenSlugs := make(map[string]Kind)
	for _, k := range kinds {
		assert.True(t, k.Valid(), "kind %s should be valid", k)
		assert.Greater(t, k.Multiplier(), 0.0, "kind %s needs a positive multiplier", k)
		assert.NotEmpty(t, k.Slug())

		prev, dup := seenSlugs[k.Slug()]
		assert.False(t, dup, "slug %q used by %s and %s", k.Slug(), prev, k)
		seenSlugs[k.Slug()] = k
	}
}

func TestKindFromSlug_RoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(string(k), func(t *testing.T) {
			got, err := KindFromSlug(k.Slug())
			require.NoError(t, err)
			assert.Equal(t, k, got)
		})
	}
}

func TestKindFromSlug_RejectsUnknown(t *testing.T) {
	for _, slug := range []string{"wurst", "", "Running", "LAUFEN"} {
		_, err := KindFromSlug(slug)
		assert.ErrorIs(t, err, ErrUnknownKind, "slug %q", slug)
	}
}

func TestKind_Multipliers(t *testing.T) {
	tests := []struct {
		kind Kind
		want float64
	}{
		{Running, 1.0},
		{Biking, 0.25},
		{Climbing, 100.0},
		{Hiking, 2.0},
		{Swimming, 10.0},
		{Skating, 0.75},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.Multiplier(), string(tt.kind))
	}
}

func TestKind_UnmarshalJSON(t *testing.T) {
	var k Kind
	require.NoError(t, json.Unmarshal([]byte(`"Climbing"`), &k))
	assert.Equal(t, Climbing, k)

	err := json.Unmarshal([]byte(`"Flying"`), &k)
	assert.ErrorIs(t, err, ErrUnknownKind)

	err = json.Unmarshal([]byte(`42`), &k)
	assert.Error(t, err)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Radeln", Biking.String())
	assert.Equal(t, "Paddling", Kind("Paddling").String())
}

func TestSnapshot_CloneIsDeep(t *testing.T) {
	s := NewSnapshot()
	s.Users["alice"] = User{Hash: "h", Salt: "s"}
	s.Entries["alice"] = []Entry{{Kilometers: 1, Kind: Running}}

	cp := s.Clone()
	cp.Entries["alice"][0].Kilometers = 99
	cp.Users["bob"] = User{}

	assert.Equal(t, 1.0, s.Entries["alice"][0].Kilometers)
	assert.NotContains(t, s.Users, "bob")
	assert.Equal(t, CurrentVersion, cp.Version)
}
