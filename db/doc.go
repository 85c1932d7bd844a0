// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens database connections and applies schema migrations.

# Connections

Open picks the driver from the database type:

	conn, err := db.Open(ctx, db.TypePostgres, "postgres://...")
	conn, err := db.Open(ctx, db.TypeSQLite, "file:dailyq.db?_pragma=foreign_keys(1)")

PostgreSQL uses lib/pq; SQLite uses the pure-Go modernc.org/sqlite driver.

# Migrations

Migrations are embedded SQL files run by goose, one directory per dialect:

	migrations/postgres/00001_init.sql
	migrations/sqlite/00001_init.sql

Apply them at startup:

	if err := db.Migrate(ctx, conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

# Tables

  - users: accounts with unique username and streak counter
  - friend_groups: groups with an owning user
  - memberships: user ↔ group relation
  - questions: one question per group per calendar date
  - votes: one vote per voter per question
  - notifications: per-user, per-group unread vote counter

# Relationships

	users 1──* friend_groups (owner)
	users *──* friend_groups (via memberships)
	friend_groups 1──* questions
	questions 1──* votes
	friend_groups 1──* notifications

All foreign keys use ON DELETE CASCADE. SQLite needs the foreign_keys
pragma in its DSN for the cascades to apply.
*/
package db
