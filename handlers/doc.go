// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the sociogram dashboard API.

# Handler Types

Each handler is a struct holding the services it needs:

  - SessionHandler: Login against the allow-list, logout, current user
  - DashboardHandler: Participants, individual view, popularity, matches
  - AccessLogHandler: Admin view and CSV download of the login history

Handlers are created via constructor functions:

	dashboardHandler := handlers.NewDashboardHandler(cache, cfg)

# Data Loading

DashboardHandler never reads record files itself. Every request asks the
sociogram.Cache for a snapshot; the cache rebuilds only when the data
directory changed, so edits to the JSON files show up on the next request.

# Individual View

GET /participants/{name}?limit=N returns the participant's picks with
rank <= N (clamped to 1..10, default from config). Each row says whether
the target picked the participant back and at which rank:

	{"target": "Beto", "label": "Beto ↔ (Te eligió #1)", "rank": 1, "match": true, "reciprocal_rank": 1}

# Login

POST /login accepts {"username": "..."}. Names are compared after
normalization, so " eros " logs in as EROS. Every successful login is
appended to the access log before the session cookie is set; a failed
append is logged but does not block the login.

# Error Handling

Errors use middleware.ErrorResponse with appropriate status codes:

  - 400 Bad Request: Invalid JSON, non-numeric limit
  - 401 Unauthorized: Unknown user, missing or expired session
  - 403 Forbidden: Access log requested by a non-admin
  - 404 Not Found: Participant has no record
  - 503 Service Unavailable: Data directory could not be read
*/
package handlers
