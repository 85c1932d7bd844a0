// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSqliteDSN(t *testing.T) {
	testCases := []struct {
		name string
		url  string
		want string
	}{
		{"bare path", "dailyq.db", "dailyq.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"},
		{"existing query", "file:dailyq.db?cache=shared", "file:dailyq.db?cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"},
		{"caller pragma kept", "dailyq.db?_pragma=busy_timeout(100)", "dailyq.db?_pragma=busy_timeout(100)&_pragma=foreign_keys(1)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sqliteDSN(tc.url))
		})
	}
}

func TestOpen_SQLiteEnforcesForeignKeys(t *testing.T) {
	ctx := context.Background()
	conn, err := Open(ctx, TypeSQLite, "file:"+filepath.Join(t.TempDir(), "bare.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, Migrate(ctx, conn, TypeSQLite))

	var enabled int
	require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled))
	assert.Equal(t, 1, enabled)

	_, err = conn.ExecContext(ctx, `INSERT INTO memberships (user_id, group_id) VALUES (888, 999)`)
	assert.Error(t, err, "membership for missing rows must be rejected")

	// Cascades run on delete
	_, err = conn.ExecContext(ctx, `INSERT INTO users (name, username, password_hash) VALUES ('Ana', 'ana', 'x')`)
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, `INSERT INTO friend_groups (name, owner_id) VALUES ('Friends', 1)`)
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, `INSERT INTO memberships (user_id, group_id) VALUES (1, 1)`)
	require.NoError(t, err)

	_, err = conn.ExecContext(ctx, `DELETE FROM users WHERE id = 1`)
	require.NoError(t, err)

	var remaining int
	require.NoError(t, conn.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM friend_groups) + (SELECT COUNT(*) FROM memberships)
	`).Scan(&remaining))
	assert.Zero(t, remaining)
}

func TestOpen_UnsupportedType(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "x")
	assert.Error(t, err)
}
