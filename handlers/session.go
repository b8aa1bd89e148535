// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/sociogram/accesslog"
	"github.com/danielhkuo/sociogram/auth"
	"github.com/danielhkuo/sociogram/cliparse"
	"github.com/danielhkuo/sociogram/middleware"
	"github.com/danielhkuo/sociogram/models"
)

type SessionHandler struct {
	users    *auth.Allowlist
	sessions *auth.Sessions
	log      accesslog.Store
	cfg      cliparse.Config
}

func NewSessionHandler(users *auth.Allowlist, sessions *auth.Sessions, log accesslog.Store, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{users: users, sessions: sessions, log: log, cfg: cfg}
}

// Login handles POST /login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user, err := h.users.Authenticate(req.Username)
	if err != nil {
		slog.Warn("login rejected", "remote", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Usuario no autorizado")
		return
	}

	// A failed log write doesn't block the login
	entry := accesslog.Entry{
		Time:   time.Now(),
		User:   user,
		IPHash: auth.HashIP(middleware.GetClientIP(r), h.cfg.SessionSalt),
	}
	if err := h.log.Append(r.Context(), entry); err != nil {
		slog.Error("failed to record access", "user", user, "error", err)
	}

	admin := h.users.IsAdmin(user)
	cookie, _ := h.sessions.Create(user, admin)
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    cookie,
		Path:     "/",
		MaxAge:   int(h.cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	slog.Info("user logged in", "user", user, "admin", admin)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		User:  user,
		Admin: admin,
	})
}

// Logout handles POST /logout
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(middleware.SessionCookie); err == nil {
		h.sessions.Delete(c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Sesión cerrada",
	})
}

// Me handles GET /me
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Login required")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.MeResponse{
		User:      sess.User,
		Admin:     sess.Admin,
		LoggedAt:  sess.CreatedAt,
		LoggedAgo: humanize.Time(sess.CreatedAt),
	})
}
