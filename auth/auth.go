// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/sociogram/sociogram"
)

var (
	ErrNotAllowed     = errors.New("user not allowed")
	ErrInvalidToken   = errors.New("invalid token format")
	ErrInvalidSession = errors.New("invalid session")
	ErrSessionExpired = errors.New("session expired")
)

// Allowlist is the plaintext list of users who may log in. Names are
// compared by canonical key, so "  eros " matches "EROS".
type Allowlist struct {
	normalizer *sociogram.Normalizer
	users      map[string]bool
	admin      string
}

func NewAllowlist(users []string, admin string, n *sociogram.Normalizer) *Allowlist {
	if n == nil {
		n, _ = sociogram.NewNormalizer(nil, false)
	}
	a := &Allowlist{normalizer: n, users: make(map[string]bool, len(users))}
	for _, u := range users {
		if key := n.Key(u); key != "" {
			a.users[key] = true
		}
	}
	a.admin = n.Key(admin)
	return a
}

// Authenticate returns the normalized user name if it is allowed.
func (a *Allowlist) Authenticate(raw string) (string, error) {
	user := a.normalizer.Key(raw)
	if user == "" || !a.users[user] {
		return "", ErrNotAllowed
	}
	return user, nil
}

// IsAdmin reports whether the normalized user is the admin.
func (a *Allowlist) IsAdmin(user string) bool {
	return a.admin != "" && user == a.admin
}

// GenerateSessionToken creates a random session identifier
func GenerateSessionToken() string {
	return uuid.NewString()
}

// SignToken appends an HMAC of the token so cookies can't be forged
func SignToken(token, salt string) string {
	return token + "." + tokenMAC(token, salt)
}

// VerifyToken checks a signed token and returns the bare token
func VerifyToken(signed, salt string) (string, error) {
	i := strings.LastIndexByte(signed, '.')
	if i <= 0 || i == len(signed)-1 {
		return "", ErrInvalidToken
	}
	token, mac := signed[:i], signed[i+1:]
	if !hmac.Equal([]byte(mac), []byte(tokenMAC(token, salt))) {
		return "", ErrInvalidToken
	}
	return token, nil
}

func tokenMAC(token, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(token))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner cookies
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits)
	return hex.EncodeToString(sum[:8])
}
