// Copyright (c) 2026 Sentra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the credential and session management core.

It defines the User credential record and the logic for registration,
two-factor enrollment, login, and bearer-token authorization.

# Architecture

This layer is the "Truth" of the system. The single invariant everything else
leans on: a user has AT MOST ONE valid session token at any time. Logging in
overwrites the stored token, which instantly invalidates whatever was issued
before — no revocation list exists or is needed.
*/
package auth

import "time"

// # Domain Entities

// User represents a registered credential record.
//
// Username is the immutable primary identifier. PasswordHash and TOTPSecret
// are written once at registration and never rotated here.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Explicitly omitted from JSON for security.
	TOTPSecret   string `json:"-"` // Leaves the store exactly once, at registration.

	// ActiveToken is the most recently issued session token, or nil if the
	// user has never logged in. It is the sole authorization reference.
	ActiveToken *string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Authentication Constraints

const (
	// SessionTokenTTL is the fixed lifetime of an issued session token.
	// Deliberately short: there is no refresh mechanism, a new login is
	// the only way to obtain a fresh token.
	SessionTokenTTL = 10 * time.Minute

	// QRImageSize is the pixel width/height of rendered enrollment QR codes.
	QRImageSize = 256
)

// # Field Identifiers

// Global field names for validation and payload mapping in the auth domain.
const (
	FieldUsername = "username"
	FieldPassword = "password"
	FieldOTP      = "otp"
	FieldToken    = "token"
	FieldSecret   = "secret"
	FieldMessage  = "message"
)
