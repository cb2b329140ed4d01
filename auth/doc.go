// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin keys and IP hashing.

# Admin Keys

Admin keys use HMAC-SHA256 over a scope name:

	adminKey := auth.GenerateAdminKey(auth.ModeScope, salt)
	err := auth.ValidateAdminKey(auth.ModeScope, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
anyone holding the salt (the server and the operator's CLI) derives the same
key, and the server never stores it.

# IP Hashing

The vote log stores a hash rather than the address:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
