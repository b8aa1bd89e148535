// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the API.

# Request Types

  - LoginRequest: username

# Response Types

  - LoginResponse, MeResponse: user, admin
  - ParticipantsResponse: sorted names, cohorts, load time
  - ParticipantDetail: in-degree, selected_by and the visible preference
    rows with reciprocity (sociogram.Row)
  - PopularityResponse: sociogram.PopularityEntry rows, most selected first
  - MatchesResponse: mutual pairs
  - PhantomsResponse: picked names with no record
  - AccessLogResponse: access entries, newest first, with a humanized age
  - ErrorResponse: error, message

# JSON Conventions

Field names are snake_case. Canonical keys are exposed as "canonical_key".
Optional fields use omitempty; reciprocal_rank is absent when a pick is
not returned.
*/
package models
