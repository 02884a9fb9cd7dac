// Copyright (c) 2026 Sentra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing, TOTP)
// from the domain logic. It acts as an Infrastructure service injected into
// the Application layer via small interfaces.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Sentinel errors returned by [TokenService.Verify]. The session guard maps
// each one to a distinct authentication failure kind, so they must never be
// collapsed into a single error value.
var (
	// ErrTokenExpired indicates a well-formed, correctly signed token whose
	// expiry timestamp has passed.
	ErrTokenExpired = errors.New("sec: token has expired")

	// ErrTokenInvalid indicates a malformed token, an unexpected signing
	// algorithm, or a signature that does not verify.
	ErrTokenInvalid = errors.New("sec: token is invalid")
)

// SessionClaims represents the payload embedded inside a session JWT.
//
// The subject username travels under the compact claim key "user"; it is the
// only application claim, matching the public token contract.
type SessionClaims struct {
	jwt.RegisteredClaims

	Username string `json:"user"`
}

// TokenService handles generation and verification of session JWTs using
// HMAC-SHA256 and a single process-wide secret key.
//
// # Key Management
//
// The signing secret is loaded once from configuration and must remain stable
// for the process lifetime — rotating it invalidates every outstanding token.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret string, issuer string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: signing secret must not be empty")
	}
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// TTL returns the fixed lifetime applied to every issued token.
func (service *TokenService) TTL() time.Duration {
	return service.ttl
}

// Issue creates a signed session token for the given username.
//
// # Returns
//   - The signed JWT string.
//   - The absolute expiry timestamp (now + TTL).
//   - An error if signing fails.
func (service *TokenService) Issue(username string) (string, time.Time, error) {
	currentTime := time.Now()
	expiresAt := currentTime.Add(service.ttl)

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, expiresAt, nil
}

// Verify checks the signature integrity and expiry of a session JWT.
//
// # Failure Modes
//   - [ErrTokenExpired] when the signature is fine but the TTL elapsed.
//   - [ErrTokenInvalid] for every other parse or signature failure.
//
// No storage lookup happens here; the caller is responsible for checking the
// token against the user's single active-token record.
func (service *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Username == "" {
		return "", ErrTokenInvalid
	}

	return claims.Username, nil
}
