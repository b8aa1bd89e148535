// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sociogram

import "sort"

// Limit bounds for the visible preference count.
const (
	MinLimit     = 1
	MaxLimit     = 10
	DefaultLimit = 3
)

// ClampLimit forces n into [MinLimit, MaxLimit].
func ClampLimit(n int) int {
	if n < MinLimit {
		return MinLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// VisiblePreferences keeps ranked picks with rank <= limit, sorted by rank.
// Equal ranks keep their file order.
func VisiblePreferences(prefs []Preference, limit int) []Preference {
	out := make([]Preference, 0, len(prefs))
	for _, p := range prefs {
		if !p.Unranked && p.Rank <= limit {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rank < out[j].Rank
	})
	return out
}

// Cohorts returns the distinct non-empty cohorts, sorted.
func Cohorts(idx *Index) []string {
	seen := make(map[string]bool)
	var out []string
	for _, rec := range idx.records {
		if rec.Cohort == "" || seen[rec.Cohort] {
			continue
		}
		seen[rec.Cohort] = true
		out = append(out, rec.Cohort)
	}
	sort.Strings(out)
	return out
}

// FilterByCohort keeps the names whose cohort is in cohorts. An empty
// cohort list keeps everything.
func FilterByCohort(idx *Index, names []string, cohorts []string) []string {
	if len(cohorts) == 0 {
		return append([]string(nil), names...)
	}
	want := make(map[string]bool, len(cohorts))
	for _, c := range cohorts {
		want[c] = true
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		if rec, ok := idx.Record(name); ok && want[rec.Cohort] {
			out = append(out, name)
		}
	}
	return out
}
