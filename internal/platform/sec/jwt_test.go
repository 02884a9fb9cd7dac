// Copyright (c) 2026 Sentra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sentra/internal/platform/sec"
)

/*
TestNewTokenService_EmptySecret verifies that construction fails closed when
no signing secret is configured.
*/
func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", "sentra.app", time.Minute)
	assert.Error(t, err)
}

/*
TestTokenService_IssueAndVerify tests the happy-path roundtrip: a freshly
issued token verifies and yields the original subject.
*/
func TestTokenService_IssueAndVerify(t *testing.T) {
	service, err := sec.NewTokenService("test-signing-secret", "sentra.app", 10*time.Minute)
	require.NoError(t, err)

	token, expiresAt, err := service.Issue("alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Expiry should sit roughly one TTL in the future.
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), expiresAt, 5*time.Second)

	username, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

/*
TestTokenService_Verify_Failures enumerates the distinct verification failure
modes. Expired and invalid are separate sentinels and must stay that way.
*/
func TestTokenService_Verify_Failures(t *testing.T) {
	service, err := sec.NewTokenService("test-signing-secret", "sentra.app", 10*time.Minute)
	require.NoError(t, err)

	t.Run("garbage_token", func(t *testing.T) {
		_, err := service.Verify("not.a.jwt")
		assert.ErrorIs(t, err, sec.ErrTokenInvalid)
	})

	t.Run("tampered_token", func(t *testing.T) {
		token, _, err := service.Issue("alice")
		require.NoError(t, err)

		_, err = service.Verify(token + "x")
		assert.ErrorIs(t, err, sec.ErrTokenInvalid)
	})

	t.Run("wrong_key", func(t *testing.T) {
		other, err := sec.NewTokenService("a-different-secret", "sentra.app", 10*time.Minute)
		require.NoError(t, err)

		token, _, err := other.Issue("alice")
		require.NoError(t, err)

		_, err = service.Verify(token)
		assert.ErrorIs(t, err, sec.ErrTokenInvalid)
	})

	t.Run("expired_token", func(t *testing.T) {
		// Negative TTL produces an already-expired token.
		shortLived, err := sec.NewTokenService("test-signing-secret", "sentra.app", -time.Minute)
		require.NoError(t, err)

		token, _, err := shortLived.Issue("alice")
		require.NoError(t, err)

		_, err = service.Verify(token)
		assert.ErrorIs(t, err, sec.ErrTokenExpired)
	})
}
