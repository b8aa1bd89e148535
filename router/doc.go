// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes using Go 1.22+ pattern matching.

# Routes

Public:

	GET  /health                   → "OK"
	GET  /                         → "sociogram API v1"
	POST /login                    → SessionHandler.Login
	POST /logout                   → SessionHandler.Logout

Logged in (session cookie):

	GET  /me                       → SessionHandler.Me
	GET  /participants             → DashboardHandler.GetParticipants
	GET  /participants/{name}      → DashboardHandler.GetParticipant
	GET  /cohorts                  → DashboardHandler.GetCohorts
	GET  /popularity               → DashboardHandler.GetPopularity
	GET  /matches                  → DashboardHandler.GetMatches
	GET  /phantoms                 → DashboardHandler.GetPhantoms

Admin only:

	GET  /access-log               → AccessLogHandler.List
	GET  /access-log.csv           → AccessLogHandler.Download

# Usage

	mux := router.NewRouter(router.Deps{
		Cache:     cache,
		Users:     users,
		Sessions:  sessions,
		AccessLog: store,
	}, cfg)
	server := http.Server{Handler: middleware.CORS(mux)}

Every route except /health and / is wrapped with middleware.WithLogging.
*/
package router
