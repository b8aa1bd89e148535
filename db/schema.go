// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

var ErrUnknownDriver = errors.New("unknown database type")

// Open connects to a sqlite or postgres database and verifies the connection.
func Open(dbType, url string) (*sql.DB, error) {
	driver, err := driverName(dbType)
	if err != nil {
		return nil, err
	}
	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbType, err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s: %w", dbType, err)
	}
	if driver == "sqlite" {
		// sqlite allows one writer at a time
		conn.SetMaxOpenConns(1)
	}
	return conn, nil
}

func driverName(dbType string) (string, error) {
	switch dbType {
	case "sqlite":
		return "sqlite", nil
	case "postgres":
		return "postgres", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, dbType)
	}
}

// Placeholder returns the n-th (1-based) bind parameter for dbType.
func Placeholder(dbType string, n int) string {
	if dbType == "postgres" {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Plain TEXT columns keep the schema portable between sqlite and postgres.
const schema = `
CREATE TABLE IF NOT EXISTS access_log (
    id TEXT PRIMARY KEY,
    accessed_at TEXT NOT NULL,
    username TEXT NOT NULL,
    ip_hash TEXT
);

CREATE INDEX IF NOT EXISTS idx_access_log_accessed_at ON access_log(accessed_at);
CREATE INDEX IF NOT EXISTS idx_access_log_username ON access_log(username);
`
