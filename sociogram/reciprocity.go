// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sociogram

import (
	"sort"
	"strconv"
)

// Reciprocal reports whether the participant named by target picked
// originKey back, and at which rank. A target with no loaded record never
// reciprocates. If the target lists the origin more than once, the first
// occurrence in file order wins. rank is 0 when that pick is unranked.
func (idx *Index) Reciprocal(originKey, target string) (rank int, ok bool) {
	back, ok := idx.reciprocal(originKey, target)
	return back.Rank, ok
}

func (idx *Index) reciprocal(originKey, target string) (Preference, bool) {
	rec, found := idx.Lookup(idx.Key(target))
	if !found {
		return Preference{}, false
	}
	return idx.pickOf(rec, originKey)
}

// pickOf returns the first pick rec made of key.
func (idx *Index) pickOf(rec *Record, key string) (Preference, bool) {
	for _, p := range rec.Preferences {
		if idx.Key(p.Target) == key {
			return p, true
		}
	}
	return Preference{}, false
}

// Row is a visible preference annotated with reciprocity.
type Row struct {
	Target         string `json:"target"`
	Label          string `json:"label"`
	Rank           int    `json:"rank"`
	Match          bool   `json:"match"`
	ReciprocalRank *int   `json:"reciprocal_rank,omitempty"`
}

// Rows resolves reciprocity for the visible preferences of rec.
func (idx *Index) Rows(rec *Record, limit int) []Row {
	visible := VisiblePreferences(rec.Preferences, limit)
	rows := make([]Row, 0, len(visible))
	for _, p := range visible {
		row := Row{Target: p.Target, Label: p.Target, Rank: p.Rank}
		if back, ok := idx.reciprocal(rec.Key, p.Target); ok {
			row.Match = true
			row.Label = p.Target + " ↔ (Te eligió)"
			if !back.Unranked {
				r := back.Rank
				row.ReciprocalRank = &r
				row.Label = MatchLabel(p.Target, r)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// MatchLabel is the table label for a reciprocated pick.
func MatchLabel(target string, rank int) string {
	return target + " ↔ (Te eligió #" + strconv.Itoa(rank) + ")"
}

// Pair is two loaded participants who picked each other.
type Pair struct {
	A     string `json:"a"`
	B     string `json:"b"`
	RankA int    `json:"rank_a"` // rank A gave B, 0 if unranked
	RankB int    `json:"rank_b"` // rank B gave A, 0 if unranked
}

// MutualPairs lists every reciprocated pair once, ordered by names.
// Self-picks are not pairs.
func MutualPairs(idx *Index) []Pair {
	seen := make(map[[2]string]bool)
	var pairs []Pair
	for _, rec := range idx.records {
		for _, p := range rec.Preferences {
			other, ok := idx.Lookup(idx.Key(p.Target))
			if !ok || other.DisplayName == rec.DisplayName {
				continue
			}
			back, ok := idx.pickOf(other, rec.Key)
			if !ok {
				continue
			}
			forward, _ := idx.pickOf(rec, other.Key)
			a, b, ra, rb := rec.DisplayName, other.DisplayName, forward.Rank, back.Rank
			if b < a {
				a, b, ra, rb = b, a, rb, ra
			}
			k := [2]string{a, b}
			if seen[k] {
				continue
			}
			seen[k] = true
			pairs = append(pairs, Pair{A: a, B: b, RankA: ra, RankB: rb})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
	return pairs
}
