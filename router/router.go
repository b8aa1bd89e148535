// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/sociogram/accesslog"
	"github.com/danielhkuo/sociogram/auth"
	"github.com/danielhkuo/sociogram/cliparse"
	"github.com/danielhkuo/sociogram/handlers"
	"github.com/danielhkuo/sociogram/middleware"
	"github.com/danielhkuo/sociogram/sociogram"
)

// Deps are the shared services behind the routes.
type Deps struct {
	Cache     *sociogram.Cache
	Users     *auth.Allowlist
	Sessions  *auth.Sessions
	AccessLog accesslog.Store
}

func NewRouter(deps Deps, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(deps.Users, deps.Sessions, deps.AccessLog, cfg)
	dashboardHandler := handlers.NewDashboardHandler(deps.Cache, cfg)
	accessLogHandler := handlers.NewAccessLogHandler(deps.AccessLog)

	session := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireSession(deps.Sessions, h))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(deps.Sessions, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Login (public)
	mux.HandleFunc("POST /login", middleware.WithLogging(sessionHandler.Login))
	mux.HandleFunc("POST /logout", middleware.WithLogging(sessionHandler.Logout))
	mux.HandleFunc("GET /me", session(sessionHandler.Me))

	// Dashboard (logged in)
	mux.HandleFunc("GET /participants", session(dashboardHandler.GetParticipants))
	mux.HandleFunc("GET /participants/{name}", session(dashboardHandler.GetParticipant))
	mux.HandleFunc("GET /cohorts", session(dashboardHandler.GetCohorts))
	mux.HandleFunc("GET /popularity", session(dashboardHandler.GetPopularity))
	mux.HandleFunc("GET /matches", session(dashboardHandler.GetMatches))
	mux.HandleFunc("GET /phantoms", session(dashboardHandler.GetPhantoms))

	// Access log (admin only)
	mux.HandleFunc("GET /access-log", admin(accessLogHandler.List))
	mux.HandleFunc("GET /access-log.csv", admin(accessLogHandler.Download))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("sociogram API v1"))
	})

	return mux
}
