// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"time"
)

// CastVote records fromID's vote for toID on a question and bumps toID's
// notification counter for the question's group, in a single transaction.
//
// Returns ErrNotFound for an unknown question, ErrNotMember when either user
// is outside the question's group and ErrConflict when fromID already voted.
func (s *Store) CastVote(ctx context.Context, questionID, fromID, toID int64, at time.Time) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var groupID int64
	err = tx.QueryRowContext(ctx, `SELECT group_id FROM questions WHERE id = $1`, questionID).Scan(&groupID)
	if err != nil {
		return 0, fmt.Errorf("query question: %w", classify(err))
	}

	var members int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT user_id) FROM memberships
		WHERE group_id = $1 AND user_id IN ($2, $3)
	`, groupID, fromID, toID).Scan(&members)
	if err != nil {
		return 0, fmt.Errorf("query memberships: %w", err)
	}
	want := 2
	if fromID == toID {
		want = 1
	}
	if members < want {
		return 0, ErrNotMember
	}

	var voteID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO votes (question_id, from_id, to_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, questionID, fromID, toID, at).Scan(&voteID)
	if err != nil {
		return 0, fmt.Errorf("insert vote: %w", classify(err))
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO notifications (group_id, user_id, notifications, last_update)
		VALUES ($1, $2, 1, $3)
		ON CONFLICT (group_id, user_id) DO UPDATE SET
			notifications = notifications.notifications + 1,
			last_update = excluded.last_update
	`, groupID, toID, at)
	if err != nil {
		return 0, fmt.Errorf("upsert notification: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit vote: %w", err)
	}
	return voteID, nil
}
