package models

import (
	"time"

	"github.com/danielhkuo/sociogram/sociogram"
)

// Request types

type LoginRequest struct {
	Username string `json:"username"`
}

// Response types

type LoginResponse struct {
	User  string `json:"user"`
	Admin bool   `json:"admin"`
}

type MeResponse struct {
	User      string    `json:"user"`
	Admin     bool      `json:"admin"`
	LoggedAt  time.Time `json:"logged_at"`
	LoggedAgo string    `json:"logged_ago"`
}

type ParticipantsResponse struct {
	Names      []string  `json:"names"`
	Cohorts    []string  `json:"cohorts"`
	Total      int       `json:"total"`
	LoadedAt   time.Time `json:"loaded_at"`
	Collisions int       `json:"collisions"`
}

type CohortsResponse struct {
	Cohorts []string `json:"cohorts"`
}

// ParticipantDetail is the individual view of one participant.
type ParticipantDetail struct {
	Name        string          `json:"name"`
	Key         string          `json:"canonical_key"`
	Cohort      string          `json:"cohort,omitempty"`
	InDegree    int             `json:"in_degree"`
	SelectedBy  []string        `json:"selected_by"`
	Limit       int             `json:"limit"`
	Preferences []sociogram.Row `json:"preferences"`
	Matches     int             `json:"matches"`
}

type PopularityResponse struct {
	Cohorts []string                    `json:"cohorts,omitempty"`
	Entries []sociogram.PopularityEntry `json:"entries"`
}

type MatchesResponse struct {
	Pairs []sociogram.Pair `json:"pairs"`
}

type PhantomsResponse struct {
	Phantoms []sociogram.Phantom `json:"phantoms"`
}

// AccessEntry is one row of the admin access log view.
type AccessEntry struct {
	Time   time.Time `json:"time"`
	User   string    `json:"user"`
	Ago    string    `json:"ago"`
	IPHash string    `json:"ip_hash,omitempty"`
}

type AccessLogResponse struct {
	Entries []AccessEntry `json:"entries"`
	Total   int           `json:"total"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
