// Copyright (c) 2026 Sentra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
HTTP delivery layer for the auth domain.

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface (plus a PNG endpoint for QR codes).
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/sentra/internal/platform/request"
	"github.com/taibuivan/sentra/internal/platform/respond"
	"github.com/taibuivan/sentra/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// All three endpoints are public by design — registration, enrollment QR
// retrieval, and login happen before the caller holds any token.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// RegisterRoutes mounts the authentication routes on the given router.
//
// # Endpoints
//   - POST /register           : Creates a new account, returns the TOTP secret once.
//   - GET  /qrcode/{username}  : Renders the enrollment QR PNG.
//   - POST /login              : Verifies both factors and returns a session token.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/register", handler.register)
	router.Get("/qrcode/{username}", handler.enrollmentQR)
	router.Post("/login", handler.login)
}

// # Request Payloads

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	OTP      string `json:"otp"`
}

/*
Register handles the creation of a new credential record.

POST /register

Description: Validates input, hashes the password, enrolls a TOTP secret, and
persists the record. The raw secret appears in this response and nowhere else.

Request:
  - Body: registerRequest (Username, Password)

Response:
  - 200: {message, secret}
  - 400: Missing or malformed fields
  - 500: Store failure (including duplicate username)
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	enrollment, err := handler.authService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "User registered successfully",
		FieldSecret:  enrollment.Secret,
	})
}

/*
EnrollmentQR serves the authenticator-app enrollment image.

GET /qrcode/{username}

Description: Renders the user's provisioning URI as a scannable PNG. The
endpoint is unauthenticated by username alone, faithful to the original
enrollment flow.

Response:
  - 200: image/png bytes
  - 404: Unknown username
*/
func (handler *Handler) enrollmentQR(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, FieldUsername)

	image, err := handler.authService.EnrollmentQR(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.PNG(writer, image)
}

/*
Login verifies both authentication factors and issues a session token.

POST /login

Description: Password first, one-time code second; the issued token replaces
any previously active session for the user.

Request:
  - Body: loginRequest (Username, Password, OTP)

Response:
  - 200: {token}
  - 400: Missing fields
  - 401: "Invalid credentials" (unknown user or wrong password) or
    "Invalid 2FA code" (wrong one-time code) — distinct messages
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldPassword, input.Password).
		Required(FieldOTP, input.OTP)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Username: input.Username,
		Password: input.Password,
		OTP:      input.OTP,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldToken: session.Token,
	})
}
