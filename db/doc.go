// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the optional access-log database and creates its schema.

# Drivers

	conn, err := db.Open("sqlite", "file:accesos.db")
	conn, err := db.Open("postgres", "postgres://...")

sqlite uses modernc.org/sqlite (pure Go); postgres uses lib/pq. Queries pick
their bind parameters with Placeholder, since sqlite takes "?" and postgres
takes "$1".

# Schema

CreateSchema is idempotent (IF NOT EXISTS):

	access_log(id, accessed_at, username, ip_hash)

accessed_at is stored as RFC 3339 text so both databases sort it the same
way.
*/
package db
