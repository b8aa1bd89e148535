// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the sociogram dashboard.

Sociogram reads one JSON record per surveyed student, each naming the
classmates they would pick in rank order, and serves a dashboard API over
the resulting preference graph: who picked whom, who was picked most, and
which picks were returned.

# Commands

Run the API server:

	ALLOWED_USERS=Eros,Ana SESSION_SALT=... go run . serve

Or with flags:

	go run . serve -p 3318 --data datos --users Eros,Ana --admin Eros

Print a one-off report without starting a server:

	go run . report --data datos

# Configuration

Required settings for serve:

  - ALLOWED_USERS (--users): Comma-separated names allowed to log in
  - SESSION_SALT (--session-salt): Secret for session cookie signing

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATA_DIR (--data): Record directory (default: datos)
  - ADMIN_USER (--admin): User who may read the access log
  - ACCESS_LOG (--access-log): CSV log path (default: historial_accesos.csv)
  - DATABASE_URL (-d), DATABASE_TYPE (-t): Keep the access log in sqlite or postgres instead
  - CORRECTIONS_FILE (--corrections): YAML name corrections
  - FOLD_ACCENTS, WATCH_DATA, DEFAULT_LIMIT, SESSION_TTL

A .env file in the working directory is read first; real environment
variables win over it.

# Architecture

  - sociogram: Name normalization, record loading, aggregation, reciprocity
  - handlers: HTTP request handlers (session, dashboard, access log)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, sessions, JSON helpers
  - models: Request/response types
  - auth: Allow-list, sessions, cookie signing
  - accesslog: CSV and SQL login history
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
