// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"sync"
	"time"
)

// Session is one logged-in browser.
type Session struct {
	Token     string
	User      string
	Admin     bool
	CreatedAt time.Time
}

// Sessions is an in-memory session table. Sessions are lost on restart.
type Sessions struct {
	mu   sync.Mutex
	m    map[string]Session
	salt string
	ttl  time.Duration
	now  func() time.Time
}

func NewSessions(salt string, ttl time.Duration) *Sessions {
	return &Sessions{
		m:    make(map[string]Session),
		salt: salt,
		ttl:  ttl,
		now:  time.Now,
	}
}

// Create starts a session and returns the signed cookie value.
func (s *Sessions) Create(user string, admin bool) (string, Session) {
	sess := Session{
		Token:     GenerateSessionToken(),
		User:      user,
		Admin:     admin,
		CreatedAt: s.now(),
	}
	s.mu.Lock()
	s.m[sess.Token] = sess
	s.mu.Unlock()
	return SignToken(sess.Token, s.salt), sess
}

// Get resolves a signed cookie value to its session.
func (s *Sessions) Get(signed string) (Session, error) {
	token, err := VerifyToken(signed, s.salt)
	if err != nil {
		return Session{}, ErrInvalidSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.m[token]
	if !ok {
		return Session{}, ErrInvalidSession
	}
	if s.ttl > 0 && s.now().Sub(sess.CreatedAt) > s.ttl {
		delete(s.m, token)
		return Session{}, ErrSessionExpired
	}
	return sess, nil
}

// Delete ends the session behind a signed cookie value, if any.
func (s *Sessions) Delete(signed string) {
	token, err := VerifyToken(signed, s.salt)
	if err != nil {
		return
	}
	s.mu.Lock()
	delete(s.m, token)
	s.mu.Unlock()
}

// Len is the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
