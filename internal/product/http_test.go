// Copyright (c) 2026 Sentra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sentra/internal/platform/apperr"
	"github.com/taibuivan/sentra/internal/platform/middleware"
	"github.com/taibuivan/sentra/internal/product"
)

// allowAuthorizer lets every "valid-token" request through as "alice",
// standing in for the real auth service.
type allowAuthorizer struct{}

func (allowAuthorizer) Authorize(_ context.Context, presentedToken string) (string, error) {
	if presentedToken == "valid-token" {
		return "alice", nil
	}
	return "", apperr.TokenInvalid()
}

func newGuardedRouter() (*chi.Mux, *memoryRepository) {
	repo := &memoryRepository{}
	handler := product.NewHandler(product.NewService(repo))

	router := chi.NewRouter()
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth(allowAuthorizer{}))
		handler.RegisterRoutes(protected)
	})
	return router, repo
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Bearer valid-token")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func validPayload() map[string]any {
	return map[string]any{
		"name":        "Mechanical Keyboard",
		"description": "Tenkeyless, brown switches",
		"price":       89.99,
		"quantity":    12,
	}
}

func TestHandler_RequiresToken(t *testing.T) {
	router, _ := newGuardedRouter()

	request := httptest.NewRequest(http.MethodGet, "/products", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Token is missing!", body["message"])
}

func TestHandler_CreateProduct(t *testing.T) {
	router, repo := newGuardedRouter()

	recorder := doJSON(t, router, http.MethodPost, "/product", validPayload())
	require.Equal(t, http.StatusCreated, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Product created successfully", body["message"])

	stored, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Mechanical Keyboard", stored[0].Name)
}

// TestHandler_CreateProduct_MissingFields checks that absent keys are
// rejected field by field — a zero price is present, an omitted one is not.
func TestHandler_CreateProduct_MissingFields(t *testing.T) {
	router, _ := newGuardedRouter()

	payload := validPayload()
	delete(payload, "price")
	delete(payload, "quantity")

	recorder := doJSON(t, router, http.MethodPost, "/product", payload)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Missing required fields", body["message"])
	assert.Len(t, body["details"], 2)
}

func TestHandler_ListProducts(t *testing.T) {
	router, _ := newGuardedRouter()

	// Empty catalogue serializes as [], not null.
	recorder := doJSON(t, router, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "[]", string(bytes.TrimSpace(recorder.Body.Bytes())))

	doJSON(t, router, http.MethodPost, "/product", validPayload())

	recorder = doJSON(t, router, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var listed []map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Mechanical Keyboard", listed[0]["name"])
	assert.NotEmpty(t, listed[0]["id"])
}

func TestHandler_UpdateProduct(t *testing.T) {
	router, repo := newGuardedRouter()

	doJSON(t, router, http.MethodPost, "/product", validPayload())
	stored, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)

	payload := validPayload()
	payload["price"] = 69.99

	recorder := doJSON(t, router, http.MethodPut, "/products/"+stored[0].ID, payload)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Product updated", body["message"])

	stored, err = repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 69.99, stored[0].Price)

	// Unknown ids succeed idempotently.
	recorder = doJSON(t, router, http.MethodPut, "/products/unknown-id", payload)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_DeleteProduct(t *testing.T) {
	router, repo := newGuardedRouter()

	doJSON(t, router, http.MethodPost, "/product", validPayload())
	stored, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)

	recorder := doJSON(t, router, http.MethodDelete, "/products/"+stored[0].ID, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Product deleted", body["message"])

	stored, err = repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)

	// Deleting again still reports success.
	recorder = doJSON(t, router, http.MethodDelete, "/products/unknown-id", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
