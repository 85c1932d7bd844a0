// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Supported DATABASE_TYPE values
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

var sqlitePragmas = []string{"foreign_keys(1)", "busy_timeout(5000)"}

//go:embed migrations
var migrations embed.FS

// Open connects to the database for the given type and verifies the connection.
// SQLite gets a single connection since it serializes writers anyway,
// with foreign keys and a busy timeout enabled.
func Open(ctx context.Context, dbType, url string) (*sql.DB, error) {
	driver, err := driverName(dbType)
	if err != nil {
		return nil, err
	}

	if dbType == TypeSQLite {
		url = sqliteDSN(url)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dbType == TypeSQLite {
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(25)
		conn.SetMaxIdleConns(25)
		conn.SetConnMaxLifetime(time.Hour)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// Migrate applies all pending migrations for the given database type.
// Safe to call multiple times - goose tracks applied versions.
func Migrate(ctx context.Context, conn *sql.DB, dbType string) error {
	dialect, err := gooseDialect(dbType)
	if err != nil {
		return err
	}

	fsys, err := fs.Sub(migrations, "migrations/"+dbType)
	if err != nil {
		return fmt.Errorf("failed to locate migrations: %w", err)
	}

	provider, err := goose.NewProvider(dialect, conn, fsys)
	if err != nil {
		return fmt.Errorf("failed to configure migrations: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	for _, res := range results {
		slog.Info("migration applied", "source", res.Source.Path, "duration_ms", res.Duration.Milliseconds())
	}

	return nil
}

// sqliteDSN appends the pragmas every connection needs unless the DSN already sets them.
// foreign_keys is off by default in SQLite, which would silently skip every cascade.
func sqliteDSN(url string) string {
	for _, pragma := range sqlitePragmas {
		name := pragma[:strings.Index(pragma, "(")]
		if strings.Contains(url, "_pragma="+name) {
			continue
		}
		sep := "?"
		if strings.Contains(url, "?") {
			sep = "&"
		}
		url += sep + "_pragma=" + pragma
	}
	return url
}

func driverName(dbType string) (string, error) {
	switch dbType {
	case TypeSQLite:
		return "sqlite", nil
	case TypePostgres:
		return "postgres", nil
	}
	return "", fmt.Errorf("unsupported database type %q", dbType)
}

func gooseDialect(dbType string) (goose.Dialect, error) {
	switch dbType {
	case TypeSQLite:
		return goose.DialectSQLite3, nil
	case TypePostgres:
		return goose.DialectPostgres, nil
	}
	return "", fmt.Errorf("unsupported database type %q", dbType)
}
