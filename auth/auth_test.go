// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/sociogram/sociogram"
)

func TestAllowlist(t *testing.T) {
	users := NewAllowlist([]string{"Eros", " ana maria ", ""}, "eros", nil)

	tests := []struct {
		name      string
		input     string
		wantUser  string
		wantErr   bool
		wantAdmin bool
	}{
		{"exact", "EROS", "EROS", false, true},
		{"lower case with spaces", "  eros ", "EROS", false, true},
		{"second user", "Ana   Maria", "ANA MARIA", false, false},
		{"unknown", "Mallory", "", true, false},
		{"empty", "", "", true, false},
		{"blank", "   ", "", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := users.Authenticate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Authenticate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != ErrNotAllowed {
				t.Errorf("Authenticate() error = %v, want %v", err, ErrNotAllowed)
			}
			if user != tt.wantUser {
				t.Errorf("Authenticate() user = %q, want %q", user, tt.wantUser)
			}
			if got := users.IsAdmin(user); got != tt.wantAdmin {
				t.Errorf("IsAdmin(%q) = %v, want %v", user, got, tt.wantAdmin)
			}
		})
	}
}

func TestAllowlist_NoAdmin(t *testing.T) {
	users := NewAllowlist([]string{"Ana"}, "", nil)
	if users.IsAdmin("") {
		t.Error("IsAdmin(\"\") should be false when no admin is configured")
	}
	if users.IsAdmin("ANA") {
		t.Error("IsAdmin(\"ANA\") should be false when no admin is configured")
	}
}

func TestAllowlist_UsesNormalizer(t *testing.T) {
	n, err := sociogram.NewNormalizer(nil, true)
	if err != nil {
		t.Fatal(err)
	}
	users := NewAllowlist([]string{"José"}, "", n)
	if _, err := users.Authenticate("jose"); err != nil {
		t.Errorf("Authenticate() with accent folding: %v", err)
	}
}

func TestSignToken(t *testing.T) {
	token := GenerateSessionToken()
	salt := "test-salt"
	signed := SignToken(token, salt)

	if strings.Contains(signed, "=") {
		t.Error("SignToken() contains padding characters")
	}

	tests := []struct {
		name    string
		signed  string
		salt    string
		wantErr bool
	}{
		{"valid", signed, salt, false},
		{"wrong salt", signed, "other-salt", true},
		{"tampered token", "x" + signed, salt, true},
		{"tampered mac", signed + "x", salt, true},
		{"no separator", token, salt, true},
		{"empty mac", token + ".", salt, true},
		{"empty", "", salt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VerifyToken(tt.signed, tt.salt)
			if (err != nil) != tt.wantErr {
				t.Fatalf("VerifyToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != ErrInvalidToken {
				t.Errorf("VerifyToken() error = %v, want %v", err, ErrInvalidToken)
			}
			if !tt.wantErr && got != token {
				t.Errorf("VerifyToken() = %q, want %q", got, token)
			}
		})
	}
}

func TestGenerateSessionToken(t *testing.T) {
	tokens := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := GenerateSessionToken()
		if token == "" {
			t.Fatal("GenerateSessionToken() returned empty string")
		}
		if tokens[token] {
			t.Errorf("GenerateSessionToken() produced duplicate token: %s", token)
		}
		tokens[token] = true
	}
}

func TestSessions(t *testing.T) {
	sessions := NewSessions("salt", time.Hour)

	cookie, sess := sessions.Create("EROS", true)
	if sess.User != "EROS" || !sess.Admin {
		t.Fatalf("Create() session = %+v", sess)
	}

	got, err := sessions.Get(cookie)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Token != sess.Token {
		t.Errorf("Get() token = %q, want %q", got.Token, sess.Token)
	}

	if _, err := sessions.Get(SignToken("unknown", "salt")); err != ErrInvalidSession {
		t.Errorf("Get(unknown) error = %v, want %v", err, ErrInvalidSession)
	}
	if _, err := sessions.Get(SignToken(sess.Token, "forged")); err != ErrInvalidSession {
		t.Errorf("Get(forged) error = %v, want %v", err, ErrInvalidSession)
	}

	sessions.Delete(cookie)
	if _, err := sessions.Get(cookie); err != ErrInvalidSession {
		t.Errorf("Get() after Delete error = %v, want %v", err, ErrInvalidSession)
	}
	if sessions.Len() != 0 {
		t.Errorf("Len() = %d, want 0", sessions.Len())
	}
}

func TestSessions_Expiry(t *testing.T) {
	sessions := NewSessions("salt", time.Minute)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	sessions.now = func() time.Time { return now }

	cookie, _ := sessions.Create("ANA", false)

	now = now.Add(30 * time.Second)
	if _, err := sessions.Get(cookie); err != nil {
		t.Fatalf("Get() before expiry error = %v", err)
	}

	now = now.Add(time.Minute)
	if _, err := sessions.Get(cookie); err != ErrSessionExpired {
		t.Errorf("Get() after expiry error = %v, want %v", err, ErrSessionExpired)
	}
	if sessions.Len() != 0 {
		t.Errorf("expired session was not removed")
	}
}

func TestHashIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		salt string
	}{
		{"ipv4", "192.168.1.1", "salt"},
		{"ipv6", "2001:db8::1", "salt"},
		{"localhost", "127.0.0.1", "different-salt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash := HashIP(tt.ip, tt.salt)

			// Should be 16 hex chars (8 bytes)
			if len(hash) != 16 {
				t.Errorf("HashIP() length = %d, want 16", len(hash))
			}

			// Should be deterministic
			if hash != HashIP(tt.ip, tt.salt) {
				t.Error("HashIP() is not deterministic")
			}

			// Different salt should produce different hash
			if hash == HashIP(tt.ip, tt.salt+"x") {
				t.Error("HashIP() produced same hash with different salt")
			}
		})
	}
}
