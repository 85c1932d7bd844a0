// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/dailyq/models"
)

// latestQuestion selects the max question date of the group bound to $1
const latestQuestion = `(SELECT MAX(date) FROM questions WHERE group_id = $1)`

// ListGroups returns every group
func (s *Store) ListGroups(ctx context.Context) ([]models.Group, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, owner_id FROM friend_groups ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}
	defer rows.Close()

	groups := []models.Group{}
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.OwnerID); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// CreateGroup inserts a group owned by ownerID
func (s *Store) CreateGroup(ctx context.Context, name string, ownerID int64) (models.MutationResult, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO friend_groups (name, owner_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, name, ownerID, time.Now().UTC()).Scan(&id)
	if err != nil {
		return models.MutationResult{}, fmt.Errorf("insert group: %w", classify(err))
	}
	return models.MutationResult{ID: id, AffectedRows: 1}, nil
}

func (s *Store) UpdateGroup(ctx context.Context, id int64, name string, ownerID int64) (models.MutationResult, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE friend_groups SET name = $1, owner_id = $2 WHERE id = $3
	`, name, ownerID, id)
	if err != nil {
		return models.MutationResult{}, fmt.Errorf("update group: %w", classify(err))
	}
	return mutation(res)
}

func (s *Store) DeleteGroup(ctx context.Context, id int64) (models.MutationResult, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM friend_groups WHERE id = $1`, id)
	if err != nil {
		return models.MutationResult{}, fmt.Errorf("delete group: %w", err)
	}
	return mutation(res)
}

// LatestGroupQuestion joins the group with its most recent question.
// Returns ErrNotFound when the group has no question yet.
func (s *Store) LatestGroupQuestion(ctx context.Context, groupID int64) (*models.GroupQuestion, error) {
	var info models.GroupQuestion
	err := s.db.QueryRowContext(ctx, `
		SELECT g.id, g.name, g.owner_id, q.id, q.question, q.date
		FROM friend_groups g
		INNER JOIN questions q ON g.id = q.group_id
		WHERE g.id = $1 AND q.date = `+latestQuestion+`
		ORDER BY q.id DESC
		LIMIT 1
	`, groupID).Scan(&info.ID, &info.Name, &info.OwnerID, &info.QuestionID, &info.Question, &info.Date)
	if err != nil {
		return nil, fmt.Errorf("query latest question: %w", classify(err))
	}
	return &info, nil
}

// VotesFromUserOnLatestQuestion returns the votes fromID cast on the group's latest question
func (s *Store) VotesFromUserOnLatestQuestion(ctx context.Context, groupID, fromID int64) ([]models.Vote, error) {
	return s.queryVotes(ctx, `
		SELECT v.id, v.question_id, q.group_id, v.from_id, v.to_id, q.date
		FROM votes v
		INNER JOIN questions q ON v.question_id = q.id
		WHERE q.group_id = $1 AND v.from_id = $2 AND q.date = `+latestQuestion+`
		ORDER BY v.id
	`, groupID, fromID)
}

// VotesOnLatestQuestion returns every vote cast on the group's latest question
func (s *Store) VotesOnLatestQuestion(ctx context.Context, groupID int64) ([]models.Vote, error) {
	return s.queryVotes(ctx, `
		SELECT v.id, v.question_id, q.group_id, v.from_id, v.to_id, q.date
		FROM questions q
		INNER JOIN votes v ON v.question_id = q.id
		WHERE q.group_id = $1 AND q.date = `+latestQuestion+`
		ORDER BY v.id
	`, groupID)
}

// Members lists the users of a group in id order
func (s *Store) Members(ctx context.Context, groupID int64) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, m.user_id, m.group_id, u.name, u.streak, u.username
		FROM memberships m
		INNER JOIN users u ON u.id = m.user_id
		WHERE m.group_id = $1
		ORDER BY u.id
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.UserID, &m.GroupID, &m.Name, &m.Streak, &m.Username); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *Store) AddMember(ctx context.Context, groupID, userID int64) (models.MutationResult, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO memberships (user_id, group_id, joined_at)
		VALUES ($1, $2, $3)
	`, userID, groupID, time.Now().UTC())
	if err != nil {
		return models.MutationResult{}, fmt.Errorf("insert membership: %w", classify(err))
	}
	return mutation(res)
}

func (s *Store) RemoveMember(ctx context.Context, groupID, userID int64) (models.MutationResult, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM memberships WHERE user_id = $1 AND group_id = $2
	`, userID, groupID)
	if err != nil {
		return models.MutationResult{}, fmt.Errorf("delete membership: %w", err)
	}
	return mutation(res)
}

// QuestionsForDate returns the group's questions issued on date
func (s *Store) QuestionsForDate(ctx context.Context, groupID int64, date models.Date) ([]models.Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, group_id, question, date
		FROM questions
		WHERE group_id = $1 AND date = $2
		ORDER BY id
	`, groupID, date)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.GroupID, &q.Question, &q.Date); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *Store) queryVotes(ctx context.Context, query string, args ...any) ([]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query votes: %w", err)
	}
	defer rows.Close()

	return scanVotes(rows)
}

func scanVotes(rows *sql.Rows) ([]models.Vote, error) {
	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.QuestionID, &v.GroupID, &v.FromID, &v.ToID, &v.Date); err != nil {
			return nil, fmt.Errorf("scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}
