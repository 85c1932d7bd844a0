// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing, session tokens and credential checks.

# Passwords

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(plain)
	err := auth.ComparePassword(hash, plain) // ErrInvalidCredentials on mismatch

New passwords must pass IsStrongPassword: at least 8 characters with a
lowercase letter, an uppercase letter, a digit and a symbol.

# Session Tokens

Tokens are HS256 JWTs carrying the user id in the "_id" claim:

	token, err := auth.GenerateToken(userID, cfg.JWTSecret, cfg.TokenTTL)
	claims, err := auth.ParseToken(token, cfg.JWTSecret)

ParseToken rejects other signing methods, foreign issuers and expired tokens
with ErrInvalidToken.

# Usernames

Usernames are restricted to letters and digits:

	if !auth.IsAlphanumeric(username) { ... }
*/
package auth
