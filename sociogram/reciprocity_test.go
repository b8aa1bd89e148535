// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sociogram

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReciprocal_MutualPick(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ana.json", `{"Nombre": "Ana", "Seleccion_Jerarquica": {"Beto": 1}}`)
	writeFile(t, dir, "beto.json", `{"Nombre": "Beto", "Seleccion_Jerarquica": {"Ana": 2}}`)
	idx, _ := loadDir(t, dir)

	rank, ok := idx.Reciprocal("ANA", "Beto")
	assert.True(t, ok)
	assert.Equal(t, 2, rank)

	rank, ok = idx.Reciprocal("BETO", "Ana")
	assert.True(t, ok)
	assert.Equal(t, 1, rank)
}

func TestReciprocal(t *testing.T) {
	idx, _ := loadDir(t, classroom(t))

	tests := []struct {
		name     string
		origin   string
		target   string
		wantOK   bool
		wantRank int
	}{
		{"annotated target name", "ANA", "Carla (8B)", true, 3},
		{"lower case target", "BETO", "carla", true, 2},
		{"phantom target", "ANA", "Dani", false, 0},
		{"one-sided pick", "EVA", "Dani", false, 0},
		{"target picked origin back", "CARLA", "Ana", true, 2},
		{"duplicate target uses first occurrence", "BETO", "Carla", true, 2},
		{"self pick", "CARLA", "Carla", true, 1},
		{"unknown target", "ANA", "Nadie", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rank, ok := idx.Reciprocal(tt.origin, tt.target)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantRank, rank)
		})
	}
}

func TestReciprocal_DuplicateTargetFirstWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ana.json", `{"Nombre": "Ana", "Seleccion_Jerarquica": {"Beto": 1}}`)
	writeFile(t, dir, "beto.json", `{"Nombre": "Beto", "Seleccion_Jerarquica": {"Ana": 3, "Ana": 1}}`)
	idx, _ := loadDir(t, dir)

	rank, ok := idx.Reciprocal("ANA", "Beto")
	require.True(t, ok)
	assert.Equal(t, 3, rank)

	// The same pairs drive aggregation: both duplicates count.
	stats := Aggregate(idx)
	assert.Equal(t, 2, stats.InDegree["ANA"])
	assert.Equal(t, []string{"Beto", "Beto"}, stats.SelectedBy["ANA"])
}

func TestReciprocal_Symmetry(t *testing.T) {
	idx, _ := loadDir(t, classroom(t))
	for _, e := range idx.Edges() {
		rank, ok := idx.Reciprocal(e.OriginKey, e.Target)
		if !ok {
			continue
		}
		target, found := idx.Lookup(e.TargetKey)
		require.True(t, found)

		var listed bool
		for _, p := range target.Preferences {
			if idx.Key(p.Target) == e.OriginKey && p.Rank == rank {
				listed = true
				break
			}
		}
		assert.True(t, listed, "%s -> %s reported rank %d", e.Origin, e.Target, rank)
	}
}

func TestRows(t *testing.T) {
	idx, _ := loadDir(t, classroom(t))
	ana, ok := idx.Record("Ana (8A)")
	require.True(t, ok)

	three, two := 3, 2
	want := []Row{
		{Target: "Beto", Label: "Beto ↔ (Te eligió #2)", Rank: 1, Match: true, ReciprocalRank: &two},
		{Target: "Carla (8B)", Label: "Carla (8B) ↔ (Te eligió #3)", Rank: 2, Match: true, ReciprocalRank: &three},
	}
	if diff := cmp.Diff(want, idx.Rows(ana, 2)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}

	rows := idx.Rows(ana, 3)
	require.Len(t, rows, 3)
	assert.False(t, rows[2].Match)
	assert.Nil(t, rows[2].ReciprocalRank)
	assert.Equal(t, "Dani", rows[2].Label)
}

func TestMutualPairs(t *testing.T) {
	idx, _ := loadDir(t, classroom(t))
	got := MutualPairs(idx)
	want := []Pair{
		{A: "Ana (8A)", B: "Beto (8A)", RankA: 1, RankB: 2},
		{A: "Ana (8A)", B: "Carla (8B)", RankA: 2, RankB: 3},
		{A: "Beto (8A)", B: "Carla (8B)", RankA: 1, RankB: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pairs mismatch (-want +got):\n%s", diff)
	}
}

func TestReciprocal_UnrankedPick(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ana.json", `{"Nombre": "Ana", "Seleccion_Jerarquica": {"Beto": 1, "Carla": 2}}`)
	writeFile(t, dir, "beto.json", `{"Nombre": "Beto", "Seleccion_Jerarquica": {"Ana": "primero"}}`)
	writeFile(t, dir, "carla.json", `{"Nombre": "Carla", "Seleccion_Jerarquica": {"Ana": null, "Beto": 1}}`)

	idx, _ := loadDir(t, dir)

	rank, ok := idx.Reciprocal("ANA", "Beto")
	assert.True(t, ok)
	assert.Equal(t, 0, rank)

	ana, found := idx.Record("Ana")
	require.True(t, found)
	rows := idx.Rows(ana, MaxLimit)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Match)
	assert.Nil(t, rows[0].ReciprocalRank)
	assert.Equal(t, "Beto ↔ (Te eligió)", rows[0].Label)

	// Unranked picks are not visible rows of their own author.
	beto, found := idx.Record("Beto")
	require.True(t, found)
	assert.Empty(t, idx.Rows(beto, MaxLimit))

	assert.Equal(t, []Pair{
		{A: "Ana", B: "Beto", RankA: 1, RankB: 0},
		{A: "Ana", B: "Carla", RankA: 2, RankB: 0},
	}, MutualPairs(idx))
}
