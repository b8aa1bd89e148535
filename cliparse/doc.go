// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:], cliparse.ModeServe)

ModeReport skips the login settings, for commands that never serve HTTP.

# CLI Flags

	-p, --port           Server port (default: 3318)
	    --data           Record directory (default: datos)
	    --users          Comma-separated allowed users
	    --admin          Admin user (may download the access log)
	    --session-salt   Session cookie signing secret
	    --session-ttl    Session lifetime (default: 12h)
	    --access-log     Access log CSV (default: historial_accesos.csv)
	-d, --database-url   Store the access log in a database instead
	-t, --database-type  sqlite or postgres (default: sqlite)
	    --corrections    YAML name-correction table
	    --fold-accents   Match names ignoring accents
	    --watch          Reload on record file changes
	    --limit          Default preferences shown (1-10, default: 3)

# Environment Variables

Flags fall back to environment variables, which may come from a .env file:

	PORT, DATA_DIR, ALLOWED_USERS, ADMIN_USER, SESSION_SALT, SESSION_TTL,
	ACCESS_LOG, DATABASE_URL, DATABASE_TYPE, CORRECTIONS_FILE,
	FOLD_ACCENTS, WATCH_DATA, DEFAULT_LIMIT

CLI flags take precedence over environment variables.

# Validation

In ModeServe, ParseFlags returns an error if required values are missing:

  - ALLOWED_USERS must list at least one user
  - SESSION_SALT must be provided
*/
package cliparse
