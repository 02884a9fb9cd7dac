// Copyright (c) 2026 Sentra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sentra/internal/platform/apperr"
	"github.com/taibuivan/sentra/internal/platform/ctxutil"
	"github.com/taibuivan/sentra/internal/platform/middleware"
)

// stubAuthorizer accepts exactly one token and returns a fixed failure for
// everything else.
type stubAuthorizer struct {
	validToken string
	username   string
	failure    error
}

func (s *stubAuthorizer) Authorize(_ context.Context, presentedToken string) (string, error) {
	if presentedToken == s.validToken {
		return s.username, nil
	}
	return "", s.failure
}

func newGuardedProbe(authorizer middleware.Authorizer) (http.Handler, *string) {
	var seenUser string

	probe := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seenUser = ctxutil.GetAuthUser(request.Context())
		writer.WriteHeader(http.StatusOK)
	})

	return middleware.RequireAuth(authorizer)(probe), &seenUser
}

func TestRequireAuth_ValidToken(t *testing.T) {
	authorizer := &stubAuthorizer{validToken: "good-token", username: "alice"}
	guarded, seenUser := newGuardedProbe(authorizer)

	request := httptest.NewRequest(http.MethodGet, "/products", nil)
	request.Header.Set("Authorization", "Bearer good-token")

	recorder := httptest.NewRecorder()
	guarded.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "alice", *seenUser)
}

func TestRequireAuth_MissingToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no_header", ""},
		{"wrong_scheme", "Basic abc123"},
		{"bare_token", "some-token"},
		{"empty_bearer", "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authorizer := &stubAuthorizer{failure: apperr.TokenInvalid()}
			guarded, _ := newGuardedProbe(authorizer)

			request := httptest.NewRequest(http.MethodGet, "/products", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}

			recorder := httptest.NewRecorder()
			guarded.ServeHTTP(recorder, request)

			// Extraction failures never reach the authorizer.
			require.Equal(t, http.StatusUnauthorized, recorder.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, "Token is missing!", body["message"])
			assert.Equal(t, "TOKEN_MISSING", body["code"])
		})
	}
}

func TestRequireAuth_RejectedToken(t *testing.T) {
	tests := []struct {
		name        string
		failure     *apperr.AppError
		wantMessage string
	}{
		{"expired", apperr.TokenExpired(), "Token has expired!"},
		{"invalid", apperr.TokenInvalid(), "Invalid token!"},
		{"superseded", apperr.TokenSuperseded(), "Invalid or superseded token!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authorizer := &stubAuthorizer{failure: tt.failure}
			guarded, _ := newGuardedProbe(authorizer)

			request := httptest.NewRequest(http.MethodGet, "/products", nil)
			request.Header.Set("Authorization", "Bearer stale-token")

			recorder := httptest.NewRecorder()
			guarded.ServeHTTP(recorder, request)

			require.Equal(t, http.StatusUnauthorized, recorder.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMessage, body["message"])
			assert.Equal(t, tt.failure.Code, body["code"])
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"standard", "Bearer abc123", "abc123"},
		{"case_insensitive_scheme", "bearer abc123", "abc123"},
		{"absent", "", ""},
		{"wrong_scheme", "Basic abc123", ""},
		{"trailing_parts", "Bearer abc 123", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, middleware.BearerToken(request))
		})
	}
}
