// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/dailyq/models"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound indicates the requested row does not exist
	ErrNotFound = errors.New("store: not found")
	// ErrConflict indicates a uniqueness constraint rejected the write
	ErrConflict = errors.New("store: conflict")
	// ErrNotMember indicates a user outside the group took part in a group action
	ErrNotMember = errors.New("store: not a group member")
)

// Store executes parameterized queries against the relational store.
// Placeholders use $N, which both lib/pq and modernc.org/sqlite accept.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Ping reports whether the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func mutation(res sql.Result) (models.MutationResult, error) {
	affected, err := res.RowsAffected()
	if err != nil {
		return models.MutationResult{}, fmt.Errorf("rows affected: %w", err)
	}
	return models.MutationResult{AffectedRows: affected}, nil
}

// classify maps driver constraint errors onto store sentinels
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
