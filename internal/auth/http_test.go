// Copyright (c) 2026 Sentra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sentra/internal/auth"
)

// newTestRouter builds a router with the real service wired to in-memory
// stores, mirroring the production route surface.
func newTestRouter(t *testing.T) (*chi.Mux, *serviceFixture) {
	t.Helper()

	f := newServiceFixture(t)
	router := chi.NewRouter()
	auth.NewHandler(f.service).RegisterRoutes(router)
	return router, f
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

// # Register

func TestHandler_Register(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := postJSON(t, router, "/register", map[string]string{
		"username": "alice",
		"password": "s3cret",
	})

	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "User registered successfully", body["message"])
	assert.NotEmpty(t, body["secret"])
}

func TestHandler_Register_BadRequest(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("missing_password", func(t *testing.T) {
		recorder := postJSON(t, router, "/register", map[string]string{
			"username": "alice",
		})

		require.Equal(t, http.StatusBadRequest, recorder.Code)

		body := decodeBody(t, recorder)
		assert.Equal(t, "Invalid input data", body["message"])
		assert.Equal(t, "VALIDATION_ERROR", body["code"])
	})

	t.Run("malformed_json", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader([]byte("{broken")))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

// # Enrollment QR

func TestHandler_EnrollmentQR(t *testing.T) {
	router, f := newTestRouter(t)
	f.register(t, "alice", "s3cret")

	request := httptest.NewRequest(http.MethodGet, "/qrcode/alice", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "image/png", recorder.Header().Get("Content-Type"))
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, recorder.Body.Bytes()[:4])
}

func TestHandler_EnrollmentQR_UnknownUser(t *testing.T) {
	router, _ := newTestRouter(t)

	request := httptest.NewRequest(http.MethodGet, "/qrcode/nobody", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusNotFound, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "User not found", body["message"])
}

// # Login

// TestHandler_Login walks the full happy path over the wire: register,
// derive a one-time code from the returned secret, and exchange both
// factors for a session token.
func TestHandler_Login(t *testing.T) {
	router, _ := newTestRouter(t)

	registered := postJSON(t, router, "/register", map[string]string{
		"username": "alice",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, registered.Code)
	secret := decodeBody(t, registered)["secret"].(string)

	code, err := totp.GenerateCode(secret, time.Now().UTC())
	require.NoError(t, err)

	recorder := postJSON(t, router, "/login", map[string]string{
		"username": "alice",
		"password": "s3cret",
		"otp":      code,
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, decodeBody(t, recorder)["token"])
}

func TestHandler_Login_Failures(t *testing.T) {
	router, f := newTestRouter(t)
	secret := f.register(t, "alice", "s3cret")

	t.Run("missing_otp", func(t *testing.T) {
		recorder := postJSON(t, router, "/login", map[string]string{
			"username": "alice",
			"password": "s3cret",
		})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("wrong_password", func(t *testing.T) {
		code, err := totp.GenerateCode(secret, time.Now().UTC())
		require.NoError(t, err)

		recorder := postJSON(t, router, "/login", map[string]string{
			"username": "alice",
			"password": "wrong",
			"otp":      code,
		})

		require.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "Invalid credentials", decodeBody(t, recorder)["message"])
	})

	t.Run("wrong_otp", func(t *testing.T) {
		recorder := postJSON(t, router, "/login", map[string]string{
			"username": "alice",
			"password": "s3cret",
			"otp":      "000000",
		})

		require.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "Invalid 2FA code", decodeBody(t, recorder)["message"])
	})
}
