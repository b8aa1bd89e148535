// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/sociogram/accesslog"
	"github.com/danielhkuo/sociogram/middleware"
	"github.com/danielhkuo/sociogram/models"
)

type AccessLogHandler struct {
	store accesslog.Store
}

func NewAccessLogHandler(store accesslog.Store) *AccessLogHandler {
	return &AccessLogHandler{store: store}
}

// List handles GET /access-log (admin only)
// Newest entries first
func (h *AccessLogHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.List(r.Context())
	if err != nil {
		slog.Error("failed to read access log", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read access log")
		return
	}

	out := make([]models.AccessEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		out = append(out, models.AccessEntry{
			Time:   e.Time,
			User:   e.User,
			Ago:    humanize.Time(e.Time),
			IPHash: e.IPHash,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.AccessLogResponse{
		Entries: out,
		Total:   len(out),
	})
}

// Download handles GET /access-log.csv (admin only)
func (h *AccessLogHandler) Download(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.List(r.Context())
	if err != nil {
		slog.Error("failed to read access log", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read access log")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="historial_accesos.csv"`)
	w.WriteHeader(http.StatusOK)
	if err := accesslog.WriteCSV(w, entries); err != nil {
		slog.Error("failed to write access log download", "error", err)
	}
}
