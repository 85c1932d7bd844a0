// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the dailyq API server.

dailyq is the backend of a daily-question social app. Friends form groups,
each group receives a question per day, and members vote for one another as
the answer. Votes feed per-member tallies, streak stats and notifications.

# Starting the Server

The server reads environment variables (optionally from a .env file) or CLI flags:

	DATABASE_URL=dailyq.db SECRET=changeme go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -secret changeme

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - SECRET (-secret): HMAC key for signing JWTs

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - TOKEN_TTL (-token-ttl): JWT lifetime (default: 72h)
  - LOG_LEVEL (-log-level): debug, info, warn or error
  - AUTH_RATE_LIMIT (-auth-rate): signup/login requests per minute per client
  - RATE_LIMIT_REDIS_ADDR (-redis): share rate limits across instances

# Architecture

  - handlers: HTTP request handlers (groups, members, questions, users, votes)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, JWT auth, rate limiting, JSON helpers
  - store: SQL data access with error classification
  - stats: vote tallies, hasVoted and user statistics
  - models: Request/response and domain types
  - auth: Password hashing, validation and JWT issuing
  - db: Connections and embedded migrations
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
