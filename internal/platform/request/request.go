// Copyright (c) 2026 Sentra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/sentra/internal/platform/apperr"
	"github.com/taibuivan/sentra/internal/platform/ctxutil"
	"github.com/taibuivan/sentra/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
AuthUser extracts the authenticated subject username from the request context.

Returns an empty string if the request is not authenticated.
*/
func AuthUser(request *http.Request) string {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredAuthUser ensures the request is authenticated and returns the subject.

Returns:
  - string: The authenticated username
  - error: apperr.TokenMissing if the guard never ran for this request
*/
func RequiredAuthUser(request *http.Request) (string, error) {

	// Get the authorized subject
	username := ctxutil.GetAuthUser(request.Context())

	// If the user is not authenticated, return an error
	if username == "" {
		return "", apperr.TokenMissing()
	}

	return username, nil
}
