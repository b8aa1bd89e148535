// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package sociogram loads ranked peer-preference records and aggregates them
into popularity counts and reciprocity ("match") information.

# Records

Each participant is one JSON file anywhere under the data directory:

	{
	  "Nombre": "Ana",
	  "Curso": "8A",
	  "Seleccion_Jerarquica": {"Beto": 1, "Carla": 2}
	}

Missing "Nombre" becomes "Desconocido", missing "Curso" is empty and a
missing "Seleccion_Jerarquica" is an empty list. Picks keep file order,
including duplicate keys. Files that cannot be read or parsed are skipped.

	idx, names := sociogram.NewLoader(nil).Load("datos")

# Canonical Keys

Names are matched through canonical keys:

	sociogram.Normalize("  Pedro Makouzi (8A) ") // "PEDRO NAKOUZI"

Keys are upper-cased, have parenthesized annotations removed, have known
misspellings corrected and have whitespace collapsed. The correction table
can be loaded from YAML with LoadCorrections.

# Aggregation

	stats := sociogram.Aggregate(idx)
	stats.InDegree["BETO"]   // times picked
	stats.SelectedBy["BETO"] // who picked, in load order

Keys picked by someone but never loaded ("phantoms") are counted too.

# Reciprocity

	rank, ok := idx.Reciprocal("ANA", "Beto")

ok is true when Beto's own record picks Ana; rank is the first rank Beto
gave her, or 0 if that pick had no numeric rank. Unranked picks count as
edges everywhere but are never listed by VisiblePreferences.

# Caching

Cache rebuilds a Snapshot only when the directory fingerprint (paths, sizes,
modification times) changes. Watcher can invalidate it on fsnotify events.
*/
package sociogram
