// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/dailyq/auth"
	"github.com/danielhkuo/dailyq/cliparse"
	"github.com/danielhkuo/dailyq/db"
	"github.com/danielhkuo/dailyq/models"
)

const (
	// TestSecret signs session tokens in tests
	TestSecret = "test-jwt-secret"
	// TestPassword is the plain password of every fixture user
	TestPassword = "Passw0rd!"
)

// SetupTestDB creates a fresh SQLite database in a temp dir with all migrations applied
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")

	ctx := context.Background()
	conn, err := db.Open(ctx, db.TypeSQLite, dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.Migrate(ctx, conn, db.TypeSQLite); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   "file::memory:",
		DatabaseType:  db.TypeSQLite,
		JWTSecret:     TestSecret,
		TokenTTL:      time.Hour,
		AuthRateLimit: 100,
	}
}

// CreateTestUser inserts a user with TestPassword and returns its id
func CreateTestUser(t *testing.T, conn *sql.DB, name, username string) int64 {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	var id int64
	err = conn.QueryRow(`
		INSERT INTO users (name, username, password_hash, streak, created_at)
		VALUES ($1, $2, $3, 0, $4)
		RETURNING id
	`, name, username, hash, time.Now().UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return id
}

// SetTestStreak overwrites a user's streak
func SetTestStreak(t *testing.T, conn *sql.DB, userID int64, streak int) {
	t.Helper()

	if _, err := conn.Exec(`UPDATE users SET streak = $1 WHERE id = $2`, streak, userID); err != nil {
		t.Fatalf("Failed to set streak: %v", err)
	}
}

// CreateTestGroup inserts a group owned by ownerID and returns its id
func CreateTestGroup(t *testing.T, conn *sql.DB, name string, ownerID int64) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO friend_groups (name, owner_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, name, ownerID, time.Now().UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test group: %v", err)
	}
	return id
}

// AddTestMember adds userID to groupID
func AddTestMember(t *testing.T, conn *sql.DB, groupID, userID int64) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO memberships (user_id, group_id, joined_at)
		VALUES ($1, $2, $3)
	`, userID, groupID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to add test member: %v", err)
	}
}

// CreateTestQuestion inserts a question for the group on date (YYYY-MM-DD)
func CreateTestQuestion(t *testing.T, conn *sql.DB, groupID int64, question, date string) int64 {
	t.Helper()

	d, err := models.ParseDate(date)
	if err != nil {
		t.Fatalf("Invalid test date %q: %v", date, err)
	}

	var id int64
	err = conn.QueryRow(`
		INSERT INTO questions (group_id, question, date)
		VALUES ($1, $2, $3)
		RETURNING id
	`, groupID, question, d).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}
	return id
}

// CreateTestVote records a vote directly, skipping membership checks
func CreateTestVote(t *testing.T, conn *sql.DB, questionID, fromID, toID int64) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO votes (question_id, from_id, to_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, questionID, fromID, toID, time.Now().UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
	return id
}

// CreateTestNotification inserts a notification row for userID in groupID
func CreateTestNotification(t *testing.T, conn *sql.DB, groupID, userID int64, count int, lastUpdate time.Time) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO notifications (group_id, user_id, notifications, last_update)
		VALUES ($1, $2, $3, $4)
	`, groupID, userID, count, lastUpdate.UTC())
	if err != nil {
		t.Fatalf("Failed to create test notification: %v", err)
	}
}

// AuthHeader returns an Authorization header for userID signed with TestSecret
func AuthHeader(t *testing.T, userID int64) map[string]string {
	t.Helper()

	token, err := auth.GenerateToken(userID, TestSecret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertError checks the response is {"error": message} with the given status
func AssertError(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	AssertStatus(t, w, status)

	var resp models.ErrorResponse
	AssertJSON(t, w, &resp)
	if resp.Error != message {
		t.Errorf("Expected error %q, got %q", message, resp.Error)
	}
}
