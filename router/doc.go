// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router configures HTTP routes for the dailyq API.

# Usage

	limiter := middleware.NewMemoryRateLimiter()
	mux := router.NewRouter(db, cfg, limiter)
	server := http.Server{Handler: middleware.CORS(mux)}

# Route Patterns

Routes use Go 1.22+ enhanced patterns with method prefixes:

	mux.HandleFunc("GET /api/groups/{id}", handler)

Path parameters are read with r.PathValue("id").

# Middleware

Every API route is wrapped with WithLogging and WithMetrics. Routes under
/api/users/{id} and POST /api/votes also go through RequireAuth. Signup
and login are rate limited per client IP to cfg.AuthRateLimit requests per
minute.

# Operational Endpoints

	GET /health   → "OK", or 503 when the database does not answer a ping
	GET /metrics  → Prometheus exposition
	GET /         → "dailyq API v1"
*/
package router
