package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort          = 3318
	defaultEnvFile       = ".env"
	defaultTokenTTL      = 72 * time.Hour
	defaultAuthRateLimit = 10
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	JWTSecret     string
	TokenTTL      time.Duration
	LogLevel      slog.Level
	AuthRateLimit int // signup/login requests per minute per client IP
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// ParseFlags validates flags and fills the rest from the environment.
// Precedence: CLI flag, then environment, then the dotenv file.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile, logLevel, tokenTTL string

	fs := flag.NewFlagSet("dailyq", flag.ContinueOnError)

	fs.StringVar(&envFile, "env", defaultEnvFile, "Dotenv file to load")

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "secret", "", "JWT signing secret (prefer env)")
	fs.StringVar(&tokenTTL, "token-ttl", "", "Session token lifetime, e.g. 72h")

	// Rate limiting
	fs.IntVar(&cfg.AuthRateLimit, "auth-rate", 0, "Signup/login requests per minute per IP")
	fs.StringVar(&cfg.RedisAddr, "redis", "", "Redis address for shared rate limiting")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		port, err := envInt("PORT", defaultPort)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
	}
	if logLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
			return Config{}, fmt.Errorf("invalid log level %q", logLevel)
		}
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("SECRET required")
	}

	if tokenTTL == "" {
		tokenTTL = os.Getenv("TOKEN_TTL")
	}
	cfg.TokenTTL = defaultTokenTTL
	if tokenTTL != "" {
		ttl, err := time.ParseDuration(tokenTTL)
		if err != nil || ttl <= 0 {
			return Config{}, fmt.Errorf("invalid token TTL %q", tokenTTL)
		}
		cfg.TokenTTL = ttl
	}

	if cfg.AuthRateLimit == 0 {
		limit, err := envInt("AUTH_RATE_LIMIT", defaultAuthRateLimit)
		if err != nil {
			return Config{}, err
		}
		cfg.AuthRateLimit = limit
	}

	if cfg.RedisAddr == "" {
		cfg.RedisAddr = os.Getenv("RATE_LIMIT_REDIS_ADDR")
	}
	cfg.RedisPassword = os.Getenv("RATE_LIMIT_REDIS_PASSWORD")
	redisDB, err := envInt("RATE_LIMIT_REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}
	cfg.RedisDB = redisDB

	return cfg, nil
}

// loadEnvFile loads the dotenv file without overriding variables already set.
// A missing default file is fine; a missing explicit one is an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && path == defaultEnvFile {
			return nil
		}
		return fmt.Errorf("env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

func envInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}
