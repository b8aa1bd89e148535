// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/sociogram/accesslog"
	"github.com/danielhkuo/sociogram/auth"
	"github.com/danielhkuo/sociogram/cliparse"
	"github.com/danielhkuo/sociogram/testutil"
)

func setupRouter(t *testing.T) (*http.ServeMux, Deps, cliparse.Config) {
	t.Helper()
	dir := testutil.CreateClassroom(t)
	cfg := testutil.GetTestConfig(dir)
	deps := Deps{
		Cache:     testutil.NewTestCache(dir),
		Users:     testutil.NewTestAllowlist(cfg),
		Sessions:  auth.NewSessions(cfg.SessionSalt, cfg.SessionTTL),
		AccessLog: accesslog.NewSQLStore(testutil.SetupTestDB(t), "sqlite"),
	}
	return NewRouter(deps, cfg), deps, cfg
}

func TestHealthEndpoint(t *testing.T) {
	mux, _, _ := setupRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux, _, _ := setupRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "sociogram API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestSessionGate(t *testing.T) {
	mux, deps, _ := setupRouter(t)
	ana := testutil.SessionCookie(deps.Sessions, "ANA", false)
	eros := testutil.SessionCookie(deps.Sessions, "EROS", true)

	testCases := []struct {
		name           string
		path           string
		cookie         *http.Cookie
		expectedStatus int
	}{
		{"participants anonymous", "/participants", nil, http.StatusUnauthorized},
		{"participants logged in", "/participants", ana, http.StatusOK},
		{"detail logged in", "/participants/Ana%20%288A%29", ana, http.StatusOK},
		{"detail unknown", "/participants/Dani", ana, http.StatusNotFound},
		{"popularity", "/popularity", ana, http.StatusOK},
		{"matches", "/matches", ana, http.StatusOK},
		{"phantoms", "/phantoms", ana, http.StatusOK},
		{"cohorts", "/cohorts", ana, http.StatusOK},
		{"me", "/me", ana, http.StatusOK},
		{"access log anonymous", "/access-log", nil, http.StatusUnauthorized},
		{"access log regular user", "/access-log", ana, http.StatusForbidden},
		{"access log admin", "/access-log", eros, http.StatusOK},
		{"access log csv admin", "/access-log.csv", eros, http.StatusOK},
		{"forged cookie", "/participants", &http.Cookie{Name: ana.Name, Value: ana.Value + "x"}, http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.path, nil)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)
		})
	}
}

func TestLoginFlow(t *testing.T) {
	mux, deps, _ := setupRouter(t)

	req := httptest.NewRequest("POST", "/login", strings.NewReader(`{"username": " eros "}`))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("Expected a session cookie")
	}

	req = httptest.NewRequest("GET", "/access-log.csv", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	if !strings.HasPrefix(w.Body.String(), "Fecha_Hora,Usuario\n") {
		t.Errorf("Expected CSV header, got %q", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), ",EROS\n") {
		t.Errorf("Expected EROS login row, got %q", w.Body.String())
	}

	entries, err := deps.AccessLog.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 || entries[0].IPHash == "" {
		t.Errorf("Expected one hashed entry, got %+v", entries)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux, _, _ := setupRouter(t)

	// Test that unsupported methods on defined routes return 405
	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},       // Only GET is defined
		{"GET", "/login"},         // Only POST is defined
		{"DELETE", "/popularity"}, // Only GET is defined
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}
