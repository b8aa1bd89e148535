// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sociogram

import "sort"

// Stats is the reverse-selection index of the preference graph.
// For every key k: InDegree[k] == len(SelectedBy[k]).
type Stats struct {
	InDegree   map[string]int      `json:"in_degree"`
	SelectedBy map[string][]string `json:"selected_by"`
}

// Aggregate counts incoming picks per canonical key. Every loaded
// participant appears with at least zero; keys that are only ever picked
// (phantoms) are added as they are seen.
func Aggregate(idx *Index) Stats {
	stats := Stats{
		InDegree:   make(map[string]int, idx.Len()),
		SelectedBy: make(map[string][]string, idx.Len()),
	}
	for _, rec := range idx.records {
		stats.ensure(rec.Key)
	}
	for _, e := range idx.Edges() {
		stats.ensure(e.TargetKey)
		stats.InDegree[e.TargetKey]++
		stats.SelectedBy[e.TargetKey] = append(stats.SelectedBy[e.TargetKey], e.Origin)
	}
	return stats
}

func (s Stats) ensure(key string) {
	if _, ok := s.InDegree[key]; ok {
		return
	}
	s.InDegree[key] = 0
	s.SelectedBy[key] = []string{}
}

// Total is the number of edges counted.
func (s Stats) Total() int {
	total := 0
	for _, n := range s.InDegree {
		total += n
	}
	return total
}

// PopularityEntry is one row of the popularity ranking.
type PopularityEntry struct {
	Name   string `json:"name"`
	Key    string `json:"canonical_key"`
	Cohort string `json:"cohort,omitempty"`
	Count  int    `json:"count"`
}

// Popularity ranks the given display names by times selected, most
// selected first and ties by name.
func Popularity(idx *Index, stats Stats, names []string) []PopularityEntry {
	entries := make([]PopularityEntry, 0, len(names))
	for _, name := range names {
		rec, ok := idx.Record(name)
		if !ok {
			continue
		}
		entries = append(entries, PopularityEntry{
			Name:   rec.DisplayName,
			Key:    rec.Key,
			Cohort: rec.Cohort,
			Count:  stats.InDegree[rec.Key],
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// Phantom is a canonical key that was picked but never loaded.
type Phantom struct {
	Key        string   `json:"canonical_key"`
	Count      int      `json:"count"`
	SelectedBy []string `json:"selected_by"`
}

// Phantoms lists picked-but-unloaded keys, most picked first.
func Phantoms(idx *Index, stats Stats) []Phantom {
	var out []Phantom
	for key, count := range stats.InDegree {
		if _, ok := idx.byKey[key]; ok {
			continue
		}
		out = append(out, Phantom{Key: key, Count: count, SelectedBy: stats.SelectedBy[key]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}
