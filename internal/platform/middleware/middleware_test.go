// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/middleware"
)

// okHandler is the innermost handler for middleware tests.
var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

// fireRequest sends one request from the given client IP through handler.
func fireRequest(handler http.Handler, clientIP string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, "/posts", nil)
	request.Header.Set(constants.HeaderXRealIP, clientIP)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestFloodGuard_ShedsBurstTraffic verifies the per-IP token bucket: the
first request passes and a burst well beyond the bucket capacity gets
shed with 429s.
*/
func TestFloodGuard_ShedsBurstTraffic(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.FloodGuard(ctx)(okHandler)

	require.Equal(t, http.StatusOK, fireRequest(handler, "10.0.0.1").Code)

	// Drive the bucket far past its burst capacity. The token refill over
	// this tight loop is a handful of tokens at most, so the tail of the
	// burst must be rejected.
	total := constants.DefaultRateLimitBurst * 2
	rejected := 0
	lastStatus := 0
	for i := 0; i < total; i++ {
		lastStatus = fireRequest(handler, "10.0.0.1").Code
		if lastStatus == http.StatusTooManyRequests {
			rejected++
		}
	}

	assert.Greater(t, rejected, 0, "burst beyond capacity must be shed")
	assert.Equal(t, http.StatusTooManyRequests, lastStatus)
}

/*
TestFloodGuard_ClientsAreIndependent verifies one abusive IP never
exhausts another client's bucket.
*/
func TestFloodGuard_ClientsAreIndependent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.FloodGuard(ctx)(okHandler)

	for i := 0; i < constants.DefaultRateLimitBurst*2; i++ {
		fireRequest(handler, "10.0.0.1")
	}
	require.Equal(t, http.StatusTooManyRequests, fireRequest(handler, "10.0.0.1").Code)

	assert.Equal(t, http.StatusOK, fireRequest(handler, "10.0.0.2").Code)
}

/*
TestFloodGuard_InstancesAreIndependent verifies each FloodGuard owns its
own per-IP state: exhausting one instance leaves a second instance's
buckets untouched.
*/
func TestFloodGuard_InstancesAreIndependent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := middleware.FloodGuard(ctx)(okHandler)
	for i := 0; i < constants.DefaultRateLimitBurst*2; i++ {
		fireRequest(first, "10.0.0.1")
	}
	require.Equal(t, http.StatusTooManyRequests, fireRequest(first, "10.0.0.1").Code)

	second := middleware.FloodGuard(ctx)(okHandler)
	assert.Equal(t, http.StatusOK, fireRequest(second, "10.0.0.1").Code)
}
