// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/danielhkuo/dailyq/models"
)

// CreateUser inserts a user and returns its id.
// A taken username yields ErrConflict.
func (s *Store) CreateUser(ctx context.Context, name, username, passwordHash string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (name, username, password_hash, streak, created_at)
		VALUES ($1, $2, $3, 0, $4)
		RETURNING id
	`, name, username, passwordHash, time.Now().UTC()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", classify(err))
	}
	return id, nil
}

func (s *Store) UserByUsername(ctx context.Context, username string) (models.User, error) {
	return s.queryUser(ctx, `
		SELECT id, name, username, streak, password_hash, created_at
		FROM users WHERE username = $1
	`, username)
}

func (s *Store) UserByID(ctx context.Context, id int64) (models.User, error) {
	return s.queryUser(ctx, `
		SELECT id, name, username, streak, password_hash, created_at
		FROM users WHERE id = $1
	`, id)
}

func (s *Store) queryUser(ctx context.Context, query string, arg any) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Username, &u.Streak, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		return models.User{}, fmt.Errorf("query user: %w", classify(err))
	}
	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, id int64, name, username string) (models.MutationResult, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET name = $1, username = $2 WHERE id = $3
	`, name, username, id)
	if err != nil {
		return models.MutationResult{}, fmt.Errorf("update user: %w", classify(err))
	}
	return mutation(res)
}

func (s *Store) UpdatePassword(ctx context.Context, id int64, passwordHash string) (models.MutationResult, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET password_hash = $1 WHERE id = $2
	`, passwordHash, id)
	if err != nil {
		return models.MutationResult{}, fmt.Errorf("update password: %w", err)
	}
	return mutation(res)
}

func (s *Store) DeleteUser(ctx context.Context, id int64) (models.MutationResult, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return models.MutationResult{}, fmt.Errorf("delete user: %w", err)
	}
	return mutation(res)
}

// Streak returns the user's streak, or ErrNotFound when the user does not exist
func (s *Store) Streak(ctx context.Context, id int64) (int, error) {
	var streak int
	err := s.db.QueryRowContext(ctx, `SELECT streak FROM users WHERE id = $1`, id).Scan(&streak)
	if err != nil {
		return 0, fmt.Errorf("query streak: %w", classify(err))
	}
	return streak, nil
}

// MembershipCounts returns how many groups the user joined and owns
func (s *Store) MembershipCounts(ctx context.Context, id int64) (joined, owned int, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM memberships WHERE user_id = $1),
			(SELECT COUNT(*) FROM friend_groups WHERE owner_id = $1)
	`, id).Scan(&joined, &owned)
	if err != nil {
		return 0, 0, fmt.Errorf("query membership counts: %w", err)
	}
	return joined, owned, nil
}

// VotesOnDate returns all votes cast on questions issued on date, across groups
func (s *Store) VotesOnDate(ctx context.Context, date models.Date) ([]models.Vote, error) {
	return s.queryVotes(ctx, `
		SELECT v.id, v.question_id, q.group_id, v.from_id, v.to_id, q.date
		FROM questions q
		INNER JOIN votes v ON q.id = v.question_id
		WHERE q.date = $1
		ORDER BY v.id
	`, date)
}

// Notifications lists the user's per-group notifications with the group name
func (s *Store) Notifications(ctx context.Context, userID int64) ([]models.Notification, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT n.id, n.group_id, n.notifications, n.last_update, g.name
		FROM notifications n
		INNER JOIN friend_groups g ON n.group_id = g.id
		WHERE n.user_id = $1
		ORDER BY n.last_update DESC, n.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.GroupID, &n.Notifications, &n.LastUpdate, &n.Name); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
