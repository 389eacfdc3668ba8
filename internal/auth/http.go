// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/internal/platform/validate"
)

// Handler implements the authentication HTTP endpoints.
//
// # Scope
//
// This handler manages the session lifecycle entry points (login,
// logout). Token transport is an HTTP-only cookie; handlers never put
// the raw token in a response body.
type Handler struct {
	authService *Service

	// secureCookies marks the session cookie Secure. Enabled when the
	// service is served over an encrypted transport (production).
	secureCookies bool
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{authService: service, secureCookies: secureCookies}
}

// loginRequest represents the JSON payload expected for authentication.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /login requests.
//
// # Returns
//   - Writes HTTP 200 OK on success and sets the session cookie.
//   - Writes HTTP 400 Bad Request if fields are missing.
//   - Writes HTTP 401 Unauthorized for bad credentials (reason never
//     distinguishes unknown user from wrong password).
func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input loginRequest
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	if input.Username == "" || input.Password == "" {
		respond.Error(writer, request, validate.RequiredError("username/password", "are required"))
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Username: input.Username,
		Password: input.Password,
	})

	if err != nil {
		// Returns HTTP 401 Unauthorized without leaking the reason
		// (wrong password vs unknown username).
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Cookie Transport ───────────────────────────────────────────────

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    result.Token,
		Path:     constants.SessionCookiePath,
		Expires:  result.ExpiresAt,
		HttpOnly: true,
		Secure:   handler.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	respond.OK(writer, map[string]any{
		"user":       result.User,
		"expires_at": result.ExpiresAt,
	})
}

// Logout handles GET /logout requests.
//
// # Idempotency
//
// Logging out without a session, or with an already-destroyed token, is
// still a success: the end state (no session) is identical.
func (handler *Handler) Logout(writer http.ResponseWriter, request *http.Request) {
	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
		if err := handler.authService.Logout(request.Context(), cookie.Value); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	// Expire the cookie client-side regardless of server-side state.
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   handler.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	respond.NoContent(writer)
}
