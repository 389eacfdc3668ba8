// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/internal/ratelimit"
)

// Throttle enforces a windowed quota bucket per client IP.
//
// # Ordering
//
// Throttle must run BEFORE any handler that touches stateful
// dependencies: a rejected request gets its 429 without a single
// credential lookup or database insert. Buckets stack — mounting
// Throttle(General) globally and Throttle(Login) on the login route
// means a login attempt must pass both.
func Throttle(limiter *ratelimit.Limiter, bucket ratelimit.Bucket) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			clientIP := RealIP(request)

			allowed, err := limiter.Allow(request.Context(), clientIP, bucket)
			if err != nil {
				// Counter store failure: fail closed, but as a server
				// error rather than a quota rejection.
				respond.Error(writer, request, apperr.Internal(err))
				return
			}

			if !allowed {
				respond.Error(writer, request, apperr.RateLimited(bucket.RetryAfter()))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
