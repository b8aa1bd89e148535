// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/sociogram/cliparse"
	"github.com/danielhkuo/sociogram/middleware"
	"github.com/danielhkuo/sociogram/models"
	"github.com/danielhkuo/sociogram/sociogram"
)

type DashboardHandler struct {
	cache *sociogram.Cache
	cfg   cliparse.Config
}

func NewDashboardHandler(cache *sociogram.Cache, cfg cliparse.Config) *DashboardHandler {
	return &DashboardHandler{cache: cache, cfg: cfg}
}

// snapshot loads the current data or writes an error response.
func (h *DashboardHandler) snapshot(w http.ResponseWriter, r *http.Request) (*sociogram.Snapshot, bool) {
	snap, err := h.cache.Snapshot(r.Context())
	if err != nil {
		slog.Error("failed to load records", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Failed to load records")
		return nil, false
	}
	return snap, true
}

// GetParticipants handles GET /participants?cohort=8A&cohort=8B
func (h *DashboardHandler) GetParticipants(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	cohorts := r.URL.Query()["cohort"]
	names := nonNil(sociogram.FilterByCohort(snap.Index, snap.Names, cohorts))

	middleware.JSONResponse(w, http.StatusOK, models.ParticipantsResponse{
		Names:      names,
		Cohorts:    nonNil(sociogram.Cohorts(snap.Index)),
		Total:      len(names),
		LoadedAt:   snap.LoadedAt,
		Collisions: len(snap.Index.Collisions()),
	})
}

// GetCohorts handles GET /cohorts
func (h *DashboardHandler) GetCohorts(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.CohortsResponse{
		Cohorts: nonNil(sociogram.Cohorts(snap.Index)),
	})
}

// GetParticipant handles GET /participants/{name}?limit=N
// Preferences are limited to rank <= N and annotated with reciprocity
func (h *DashboardHandler) GetParticipant(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	limit := h.cfg.DefaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}
	limit = sociogram.ClampLimit(limit)

	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	rec, found := snap.Index.Record(name)
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "Participant not found")
		return
	}

	rows := snap.Index.Rows(rec, limit)
	matches := 0
	for _, row := range rows {
		if row.Match {
			matches++
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.ParticipantDetail{
		Name:        rec.DisplayName,
		Key:         rec.Key,
		Cohort:      rec.Cohort,
		InDegree:    snap.Stats.InDegree[rec.Key],
		SelectedBy:  nonNil(snap.Stats.SelectedBy[rec.Key]),
		Limit:       limit,
		Preferences: rows,
		Matches:     matches,
	})
}

// GetPopularity handles GET /popularity?cohort=8A
func (h *DashboardHandler) GetPopularity(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	cohorts := r.URL.Query()["cohort"]
	names := sociogram.FilterByCohort(snap.Index, snap.Names, cohorts)

	middleware.JSONResponse(w, http.StatusOK, models.PopularityResponse{
		Cohorts: cohorts,
		Entries: sociogram.Popularity(snap.Index, snap.Stats, names),
	})
}

// GetMatches handles GET /matches
func (h *DashboardHandler) GetMatches(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	pairs := sociogram.MutualPairs(snap.Index)
	if pairs == nil {
		pairs = []sociogram.Pair{}
	}
	middleware.JSONResponse(w, http.StatusOK, models.MatchesResponse{Pairs: pairs})
}

// GetPhantoms handles GET /phantoms
// Lists names that were picked but have no record
func (h *DashboardHandler) GetPhantoms(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	phantoms := sociogram.Phantoms(snap.Index, snap.Stats)
	if phantoms == nil {
		phantoms = []sociogram.Phantom{}
	}
	middleware.JSONResponse(w, http.StatusOK, models.PhantomsResponse{Phantoms: phantoms})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
