// Copyright (c) 2026 Sentra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the core identity and access management system.

It handles registration with two-factor enrollment, credential verification,
and the single-active-session token lifecycle.

Architecture:

  - Service: Orchestrates business logic (Register, Login, Authorize).
  - Repository: Abstracted interfaces for Postgres (credentials) and Redis
    (active-token cache).
  - Security: Leverages bcrypt, RFC 6238 TOTP, and HMAC-signed JWTs.

The token state machine is deliberately small: none → issued (login) →
superseded (next login overwrites) or expired (TTL elapses). Both end states
are terminal; no refresh transition exists.
*/
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/taibuivan/sentra/internal/platform/apperr"
	"github.com/taibuivan/sentra/internal/platform/sec"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing and verifying session tokens.
type TokenProvider interface {
	// Issue creates a signed session token for the given username and
	// returns it together with its absolute expiry timestamp.
	Issue(username string) (string, time.Time, error)

	// Verify checks signature integrity and expiry. It returns the subject
	// username, or [sec.ErrTokenExpired] / [sec.ErrTokenInvalid].
	Verify(tokenString string) (string, error)

	// TTL reports the fixed lifetime applied to issued tokens.
	TTL() time.Duration
}

// Service implements the authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, enrollment,
// or token validation logic must be reviewed by the security team.
//
// # Concurrency
//
// The service holds no mutable state of its own; all session state lives in
// the credential store. It is safe for concurrent use.
type Service struct {
	credentials   CredentialRepository
	tokenCache    ActiveTokenCache
	tokenProvider TokenProvider
	totpIssuer    string
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	credentialRepo CredentialRepository,
	tokenCache ActiveTokenCache,
	tokenProv TokenProvider,
	totpIssuer string,
) *Service {
	return &Service{
		credentials:   credentialRepo,
		tokenCache:    tokenCache,
		tokenProvider: tokenProv,
		totpIssuer:    totpIssuer,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new user.
type RegisterInput struct {
	Username string
	Password string
}

// Enrollment carries the one-time registration output.
//
// Secret is the raw TOTP secret. This is the ONLY moment it leaves the
// service; afterwards it exists solely inside the credential store.
type Enrollment struct {
	Secret string
}

/*
Register hashes, enrolls, and persists a brand new credential record.

Description: Hashes the password (bcrypt, salted), generates a fresh 160-bit
TOTP secret, and stores both. The raw secret is returned exactly once for
authenticator-app enrollment.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Enrollment: The raw TOTP secret for one-time display
  - error: Storage failures (a duplicate username surfaces as an internal
    storage error, per the published contract)
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Enrollment, error) {

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Generate the per-user TOTP secret. Generated once, never rotated.
	secret, err := sec.GenerateTOTPSecret(service.totpIssuer, input.Username)
	if err != nil {
		return nil, fmt.Errorf("auth_service_totp_generation_failed: %w", err)
	}

	// Construct the new credential record. ActiveToken starts nil: the user
	// has no session until the first successful login.
	user := &User{
		Username:     input.Username,
		PasswordHash: hashedPassword,
		TOTPSecret:   secret,
	}

	// Persist the record. The repository maps constraint violations.
	if err := service.credentials.Create(context, user); err != nil {
		return nil, err
	}

	return &Enrollment{Secret: secret}, nil
}

/*
EnrollmentQR renders the authenticator-app enrollment QR code for a user.

Description: Looks up the stored TOTP secret, builds the deterministic
otpauth:// provisioning URI, and renders it as a PNG.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - []byte: PNG image bytes
  - error: apperr.NotFound for unknown usernames, or rendering failures
*/
func (service *Service) EnrollmentQR(context context.Context, username string) ([]byte, error) {

	// Resolve the credential record; unknown usernames come back as NotFound.
	user, err := service.credentials.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	// Build the provisioning URI and render it. Pure transformations.
	uri := sec.ProvisioningURI(user.Username, user.TOTPSecret, service.totpIssuer)

	image, err := sec.RenderQR(uri, QRImageSize)
	if err != nil {
		return nil, fmt.Errorf("auth_service_qr_render_failed: %w", err)
	}

	return image, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
	OTP      string
}

// Session represents a successfully issued session token.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

/*
Login validates both authentication factors and issues a session token.

Description: Password and one-time code are checked in strict order; the OTP
is never evaluated unless the password verified. On success a fresh token is
issued and stored as the user's SINGLE active token, superseding any prior
session instantly.

Failure messages are intentionally asymmetric: unknown user and wrong
password collapse into one generic response (no username enumeration), while
a wrong one-time code is reported distinctly.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: The signed token and its expiry
  - error: Unauthorized, SecondFactorFailed, or storage failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {

	// Look up the credential record. Only an unknown user takes the same
	// branch as a wrong password below; a failing store is not a credential
	// problem and must surface as one.
	user, err := service.credentials.FindByUsername(context, input.Username)
	if err != nil {
		if apperr.HasCode(err, "NOT_FOUND") {
			return nil, apperr.Unauthorized("Invalid credentials")
		}
		return nil, fmt.Errorf("auth_service_credential_lookup_failed: %w", err)
	}

	// First factor: constant-time bcrypt comparison.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	// Second factor: only evaluated after the password verified.
	if !sec.VerifyTOTP(user.TOTPSecret, input.OTP) {
		return nil, apperr.SecondFactorFailed()
	}

	// Mint the session token.
	token, expiresAt, err := service.tokenProvider.Issue(user.Username)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}

	// Enforcement point for "single active session": the atomic overwrite
	// invalidates every previously issued token for this user.
	if err := service.credentials.UpdateActiveToken(context, user.Username, token); err != nil {
		return nil, fmt.Errorf("auth_service_token_store_failed: %w", err)
	}

	// Mirror into the volatile cache. Best-effort: a cache write failure
	// must not fail the login, validation falls back to the store. The key
	// is dropped on failure — the cache must never keep serving a token the
	// store has already overwritten.
	if err := service.tokenCache.Set(context, user.Username, token, service.tokenProvider.TTL()); err != nil {
		_ = service.tokenCache.Del(context, user.Username)
	}

	return &Session{Token: token, ExpiresAt: expiresAt}, nil
}

// # Request Authorization

/*
Authorize resolves a presented bearer token into its subject username.

Description: The cheap cryptographic checks run first and fail fast without
touching storage. Only a token with a valid signature and unexpired TTL is
compared — byte for byte — against the user's single stored active token;
any mismatch means a later login superseded it.

Parameters:
  - context: context.Context
  - presentedToken: string

Returns:
  - string: The authorized username
  - error: One of the four distinct token failures (missing / expired /
    invalid / superseded), or storage failures
*/
func (service *Service) Authorize(context context.Context, presentedToken string) (string, error) {
	if presentedToken == "" {
		return "", apperr.TokenMissing()
	}

	// Signature and expiry first — no store lookup on failure.
	username, err := service.tokenProvider.Verify(presentedToken)
	if err != nil {
		if errors.Is(err, sec.ErrTokenExpired) {
			return "", apperr.TokenExpired()
		}
		return "", apperr.TokenInvalid()
	}

	// Resolve the stored active token: cache first, store on miss.
	activeToken, err := service.tokenCache.Get(context, username)
	if err != nil || activeToken == "" {
		activeToken, err = service.credentials.GetActiveToken(context, username)
		if err != nil {
			return "", fmt.Errorf("auth_service_active_token_lookup_failed: %w", err)
		}

		// Re-warm the cache for subsequent requests. Best-effort.
		if activeToken != "" {
			_ = service.tokenCache.Set(context, username, activeToken, service.tokenProvider.TTL())
		}
	}

	// The equality check IS the revocation mechanism: a token that is not
	// byte-for-byte the stored one was overwritten by a later login.
	if subtle.ConstantTimeCompare([]byte(activeToken), []byte(presentedToken)) != 1 {
		return "", apperr.TokenSuperseded()
	}

	return username, nil
}
