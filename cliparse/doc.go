// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - JWTSecret: Session token signing secret (required)
  - TokenTTL: Session token lifetime (default: 72h)
  - LogLevel: slog level (default: info)
  - AuthRateLimit: Signup/login requests per minute per IP (default: 10)
  - RedisAddr, RedisPassword, RedisDB: Shared rate limiter (optional)

# CLI Flags

	-env        Dotenv file (default: .env)
	-p          Server port
	-d          Database URL
	-t          Database type
	-log-level  Log level
	-secret     JWT secret
	-token-ttl  Token lifetime
	-auth-rate  Auth rate limit
	-redis      Redis address

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	LOG_LEVEL       → -log-level
	SECRET          → -secret
	TOKEN_TTL       → -token-ttl
	AUTH_RATE_LIMIT → -auth-rate
	RATE_LIMIT_REDIS_ADDR → -redis
	RATE_LIMIT_REDIS_PASSWORD
	RATE_LIMIT_REDIS_DB

The dotenv file is loaded with godotenv after flag parsing and never
overrides variables already present in the environment. A missing .env
is ignored; a missing file named with -env is an error.

# Validation

ParseFlags returns an error if required values are missing or malformed:

  - DATABASE_URL must be provided
  - SECRET must be provided
  - DATABASE_TYPE must be sqlite or postgres
*/
package cliparse
