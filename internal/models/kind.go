package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when a kind name or slug is not part of the closed set.
var ErrUnknownKind = errors.New("unknown activity kind")

// Kind is the category of a recorded activity.
// swagger:model Kind
type Kind string

// Supported activity kinds
const (
	Running  Kind = "Running"
	Biking   Kind = "Biking"
	Climbing Kind = "Climbing"
	Skating  Kind = "Skating"
	Hiking   Kind = "Hiking"
	Swimming Kind = "Swimming"
)

type kindInfo struct {
	multiplier float64
	slug       string
	label      string
}

var kindTable = map[Kind]kindInfo{
	Running:  {multiplier: 1.0, slug: "laufen", label: "Laufen"},
	Biking:   {multiplier: 0.25, slug: "radfahren", label: "Radeln"},
	Climbing: {multiplier: 100.0, slug: "klettern", label: "Klettern"},
	Skating:  {multiplier: 0.75, slug: "skaten", label: "Skaten"},
	Hiking:   {multiplier: 2.0, slug: "wandern", label: "Wandern"},
	Swimming: {multiplier: 10.0, slug: "schwimmen", label: "Schwimmen"},
}

// kindOrder fixes the listing order; kindTable is the source of truth for membership.
var kindOrder = []Kind{Running, Biking, Climbing, Skating, Hiking, Swimming}

var kindBySlug = func() map[string]Kind {
	m := make(map[string]Kind, len(kindTable))
	for k, info := range kindTable {
		m[info.slug] = k
	}
	return m
}()

// Kinds returns every supported kind in a stable order.
func Kinds() []Kind {
	out := make([]Kind, len(kindOrder))
	copy(out, kindOrder)
	return out
}

// KindFromSlug resolves a path segment such as "laufen" to its Kind.
func KindFromSlug(slug string) (Kind, error) {
	k, ok := kindBySlug[slug]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, slug)
	}
	return k, nil
}

// Valid reports whether k belongs to the supported set.
func (k Kind) Valid() bool {
	_, ok := kindTable[k]
	return ok
}

// Multiplier is the scoring weight applied to distances of this kind.
// Unknown kinds score zero.
func (k Kind) Multiplier() float64 {
	return kindTable[k].multiplier
}

// Slug is the stable path segment of the kind.
func (k Kind) Slug() string {
	return kindTable[k].slug
}

// String returns the display label.
func (k Kind) String() string {
	if info, ok := kindTable[k]; ok {
		return info.label
	}
	return string(k)
}

// UnmarshalJSON accepts only the known kind names.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	kind := Kind(s)
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	*k = kind
	return nil
}
