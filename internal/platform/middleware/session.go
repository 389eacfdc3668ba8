// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// SessionValidator resolves an opaque client token into a session identity.
//
// # Why an interface?
//
// Defining SessionValidator here decouples the middleware from the auth
// service implementation, allowing mocks to be injected during unit testing.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*sec.Identity, error)
}

// RequireSession gates privileged routes behind a valid session cookie.
//
// # Flow
//
//  1. Read the session cookie; absence means unauthenticated.
//  2. Resolve the opaque token through [SessionValidator].
//  3. Inject the resulting [*sec.Identity] into the request context.
//
// On any failure the request is denied with 401 before the wrapped
// handler executes — privileged operations are never partially run for
// unauthenticated callers.
func RequireSession(validator SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Cookie Extraction ──────────────────────────────────────────
			cookie, err := request.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Token Validation ───────────────────────────────────────────
			identity, err := validator.Validate(request.Context(), cookie.Value)
			if err != nil {
				// Unknown and expired tokens are indistinguishable to the
				// client. Unexpected store failures still surface as 500s.
				var appError *apperr.AppError
				if errors.As(err, &appError) && appError.HTTPStatus < 500 {
					respond.Error(writer, request, apperr.Unauthorized("Invalid or expired session"))
					return
				}
				respond.Error(writer, request, err)
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
