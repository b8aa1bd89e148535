// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sociogram

import (
	"encoding/json"
	"log/slog"
	"sort"
)

// Input record field names.
const (
	FieldName        = "Nombre"
	FieldCohort      = "Curso"
	FieldPreferences = "Seleccion_Jerarquica"

	// UnknownName is used when a record has no usable name.
	UnknownName = "Desconocido"
)

// Preference is one pick. Rank 1 is the strongest preference. A pick whose
// rank is not a number is Unranked: it still counts as an edge but is never
// shown in the ranked view.
type Preference struct {
	Target   string `json:"target"`
	Rank     int    `json:"rank"`
	Unranked bool   `json:"unranked,omitempty"`
}

// Record is one participant file. Records are never mutated after Load.
type Record struct {
	DisplayName string          `json:"display_name"`
	RawName     string          `json:"raw_name"`
	Key         string          `json:"canonical_key"`
	Cohort      string          `json:"cohort,omitempty"`
	Path        string          `json:"-"`
	Preferences []Preference    `json:"preferences"`
	Raw         json.RawMessage `json:"-"`
}

// Index holds the loaded participants, keyed by display name and by
// canonical key.
type Index struct {
	normalizer *Normalizer
	records    []*Record
	byName     map[string]*Record
	byKey      map[string]string
	owners     map[string][]string
	names      []string
}

func newIndex(n *Normalizer, records []*Record) *Index {
	idx := &Index{
		normalizer: n,
		records:    records,
		byName:     make(map[string]*Record, len(records)),
		byKey:      make(map[string]string, len(records)),
		owners:     make(map[string][]string),
		names:      make([]string, 0, len(records)),
	}
	for _, rec := range records {
		idx.byName[rec.DisplayName] = rec
		idx.names = append(idx.names, rec.DisplayName)

		// Reverse lookup is last-write-wins; every contributor is kept in owners.
		if prev, ok := idx.byKey[rec.Key]; ok && prev != rec.DisplayName {
			slog.Warn("canonical key collision",
				"key", rec.Key,
				"kept", rec.DisplayName,
				"shadowed", prev,
			)
		}
		idx.byKey[rec.Key] = rec.DisplayName
		idx.owners[rec.Key] = append(idx.owners[rec.Key], rec.DisplayName)
	}
	sort.Strings(idx.names)
	return idx
}

// Names returns the display names in lexicographic order.
func (idx *Index) Names() []string {
	out := make([]string, len(idx.names))
	copy(out, idx.names)
	return out
}

// Len is the number of loaded participants.
func (idx *Index) Len() int { return len(idx.records) }

// Records returns the records in load order.
func (idx *Index) Records() []*Record {
	out := make([]*Record, len(idx.records))
	copy(out, idx.records)
	return out
}

// Record returns the participant with the given display name.
func (idx *Index) Record(displayName string) (*Record, bool) {
	rec, ok := idx.byName[displayName]
	return rec, ok
}

// DisplayName resolves a canonical key back to a loaded display name.
func (idx *Index) DisplayName(key string) (string, bool) {
	name, ok := idx.byKey[key]
	return name, ok
}

// Lookup resolves a canonical key to its record.
func (idx *Index) Lookup(key string) (*Record, bool) {
	name, ok := idx.byKey[key]
	if !ok {
		return nil, false
	}
	return idx.Record(name)
}

// Collisions lists canonical keys produced by more than one display name,
// with every contributor in load order.
func (idx *Index) Collisions() map[string][]string {
	out := make(map[string][]string)
	for key, names := range idx.owners {
		if len(names) > 1 {
			out[key] = append([]string(nil), names...)
		}
	}
	return out
}

// Normalizer returns the normalizer used to build the index.
func (idx *Index) Normalizer() *Normalizer { return idx.normalizer }

// Key normalizes raw with the index's normalizer.
func (idx *Index) Key(raw string) string { return idx.normalizer.Key(raw) }

// Edge is one directed pick in the preference graph.
type Edge struct {
	Origin    string
	OriginKey string
	Target    string
	TargetKey string
	Rank      int
	Unranked  bool
}

// Edges returns every preference edge, records in load order and each
// record's picks in file order.
func (idx *Index) Edges() []Edge {
	var edges []Edge
	for _, rec := range idx.records {
		for _, p := range rec.Preferences {
			edges = append(edges, Edge{
				Origin:    rec.DisplayName,
				OriginKey: rec.Key,
				Target:    p.Target,
				TargetKey: idx.normalizer.Key(p.Target),
				Rank:      p.Rank,
				Unranked:  p.Unranked,
			})
		}
	}
	return edges
}
