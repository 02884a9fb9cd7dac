// Copyright (c) 2026 Sentra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package middleware provides the HTTP middleware chain for the Sentra API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, AuthZ/AuthN, and CORS.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taibuivan/sentra/internal/platform/apperr"
	"github.com/taibuivan/sentra/internal/platform/constants"
	"github.com/taibuivan/sentra/internal/platform/ctxutil"
	"github.com/taibuivan/sentra/internal/platform/respond"
)

// Authorizer resolves a presented bearer token into the subject username.
//
// # Why an interface?
//
// Defining Authorizer here decouples the middleware from the `auth` service
// implementation, allowing us to easily inject mocks during unit testing.
//
// Implementations must perform the FULL check: signature, expiry, and the
// equality comparison against the user's single stored active token. Each
// failure kind comes back as its own [apperr.AppError] code.
type Authorizer interface {
	Authorize(ctx context.Context, presentedToken string) (string, error)
}

// RequireAuth blocks every request that does not carry the user's currently
// active bearer token.
//
// # Flow
//  1. Extract 'Authorization: Bearer <token>'. Absent or malformed → 401 TOKEN_MISSING.
//  2. Delegate to [Authorizer] for signature, expiry, and active-token checks.
//  3. Inject the subject username into the request context for downstream use.
//
// Handlers behind this guard may assume ctxutil.GetAuthUser is non-empty.
func RequireAuth(authorizer Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Token Extraction ───────────────────────────────────────────
			token := BearerToken(request)
			if token == "" {
				respond.Error(writer, request, apperr.TokenMissing())
				return
			}

			// ── 2. Full Authorization ─────────────────────────────────────────
			username, err := authorizer.Authorize(request.Context(), token)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), username)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from the Authorization header.
// Returns an empty string when the header is absent or not in Bearer format.
func BearerToken(request *http.Request) string {
	authHeader := request.Header.Get(constants.AuthorizationHeader)
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], constants.BearerScheme) {
		return ""
	}

	return parts[1]
}
