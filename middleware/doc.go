// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start and completion with a request id taken from
X-Request-ID or generated with google/uuid. The id is echoed back in the
response header.

# Metrics

WithMetrics counts requests and observes latency in Prometheus vectors
labelled by method, route pattern and status:

	dailyq_api_http_requests_total
	dailyq_api_http_request_duration_seconds
	dailyq_api_rate_limit_hits_total

# Authentication

RequireAuth validates a bearer session token and stores the user id in the
request context:

	protect := middleware.RequireAuth(cfg.JWTSecret)
	mux.HandleFunc("GET /api/users/{id}", protect(h.GetUser))

	userID, ok := middleware.UserIDFromContext(r.Context())

# Rate Limiting

WithRateLimit throttles a route per client IP. Two RateLimiter
implementations exist: an in-process token bucket per key
(golang.org/x/time/rate) and a fixed-window Redis counter shared across
instances. Denied requests get 429 with a Retry-After header.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Error bodies have the shape {"error": "message"}.

ParseOptionalJSONBody accepts requests that carry no body at all. Handlers
decode with it and then check required fields, so an empty body fails the
same way as an empty object. GET routes also fall back to the query string.

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Handles X-Forwarded-For and X-Real-IP. Used as the rate limit key.
*/
package middleware
