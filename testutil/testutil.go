// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/sociogram/accesslog"
	"github.com/danielhkuo/sociogram/auth"
	"github.com/danielhkuo/sociogram/cliparse"
	"github.com/danielhkuo/sociogram/db"
	"github.com/danielhkuo/sociogram/middleware"
	"github.com/danielhkuo/sociogram/sociogram"
)

// SetupTestDB creates a fresh sqlite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig(dataDir string) cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DataDir:       dataDir,
		AllowedUsers:  []string{"Eros", "Ana"},
		AdminUser:     "EROS",
		SessionSalt:   "test-session-salt",
		SessionTTL:    time.Hour,
		AccessLogPath: "historial_accesos.csv",
		DatabaseType:  "sqlite",
		DefaultLimit:  sociogram.DefaultLimit,
	}
}

// WriteRecord writes a raw JSON record to dir/rel
func WriteRecord(t *testing.T, dir, rel, body string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create record dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("Failed to write record: %v", err)
	}
}

// CreateClassroom writes a small data set and returns its directory.
//
//	Ana (8A)   → Beto 1, Carla 2, Dani 3
//	Beto (8A)  → Ana 1, Carla 2
//	Carla (8B) → Eva 1, Ana 2
//	Eva (8B)   → (no picks)
//
// Dani has no record.
func CreateClassroom(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "datos")
	WriteRecord(t, dir, "8A/ana.json", `{"Nombre": "Ana", "Curso": "8A", "Seleccion_Jerarquica": {"Beto": 1, "Carla": 2, "Dani": 3}}`)
	WriteRecord(t, dir, "8A/beto.json", `{"Nombre": "Beto", "Curso": "8A", "Seleccion_Jerarquica": {"Ana": 1, "Carla": 2}}`)
	WriteRecord(t, dir, "8B/carla.json", `{"Nombre": "Carla", "Curso": "8B", "Seleccion_Jerarquica": {"Eva": 1, "Ana (8A)": 2}}`)
	WriteRecord(t, dir, "8B/eva.json", `{"Nombre": "Eva", "Curso": "8B"}`)
	return dir
}

// NewTestCache builds a snapshot cache over dir with the default normalizer
func NewTestCache(dir string) *sociogram.Cache {
	return sociogram.NewCache(sociogram.NewLoader(nil), dir)
}

// NewTestAccessLog returns a CSV access log in a temp dir
func NewTestAccessLog(t *testing.T) *accesslog.CSVStore {
	t.Helper()
	return accesslog.NewCSVStore(filepath.Join(t.TempDir(), "historial_accesos.csv"))
}

// NewTestAllowlist returns the allow-list matching GetTestConfig
func NewTestAllowlist(cfg cliparse.Config) *auth.Allowlist {
	return auth.NewAllowlist(cfg.AllowedUsers, cfg.AdminUser, nil)
}

// SessionCookie logs a user in directly and returns the cookie to send
func SessionCookie(sessions *auth.Sessions, user string, admin bool) *http.Cookie {
	value, _ := sessions.Create(user, admin)
	return &http.Cookie{Name: middleware.SessionCookie, Value: value}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
