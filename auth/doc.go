// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the login allow-list, session tokens and hashing
utilities.

# Allow-list

Logins are checked against a plaintext list of user names:

	users := auth.NewAllowlist([]string{"Eros", "Ana"}, "EROS", normalizer)
	user, err := users.Authenticate("  eros ") // "EROS", nil
	users.IsAdmin(user)                        // true

Names are compared by canonical key (see package sociogram), so case and
surrounding whitespace don't matter. This is access gating, not security.

# Sessions

Sessions live in memory and are identified by random UUID tokens:

	sessions := auth.NewSessions(salt, 12*time.Hour)
	cookie, sess := sessions.Create(user, users.IsAdmin(user))
	sess, err := sessions.Get(cookie)

The cookie value is the token followed by an HMAC-SHA256 signature:

	signed := auth.SignToken(token, salt)
	token, err := auth.VerifyToken(signed, salt)

# IP Hashing

Access log entries store a hashed client address:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
