// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package stats derives vote tallies, the has-voted flag and per-user
// participation statistics from rows already filtered by the database.
package stats

import (
	"errors"

	"github.com/danielhkuo/dailyq/models"
)

// ErrNoActiveQuestion is returned when a group has no question yet
var ErrNoActiveQuestion = errors.New("stats: no active question")

// TallyVotes annotates each member with the number of votes they received.
// Output order matches members; votes for users outside members are dropped.
func TallyVotes(members []models.Member, votes []models.Vote) []models.Member {
	counts := make(map[int64]int, len(members))
	for _, v := range votes {
		counts[v.ToID]++
	}

	result := make([]models.Member, len(members))
	for i, m := range members {
		m.VoteCount = counts[m.ID]
		result[i] = m
	}
	return result
}

// ResolveHasVoted merges the has-voted flag into the group's latest question.
// votes must already be restricted to the requesting user and that question.
func ResolveHasVoted(info *models.GroupQuestion, votes []models.Vote) (models.GroupQuestion, error) {
	if info == nil {
		return models.GroupQuestion{}, ErrNoActiveQuestion
	}
	out := *info
	out.HasVoted = len(votes) > 0
	return out, nil
}

// BuildUserStats computes the participation snapshot for userID from the
// votes cast today across all groups.
func BuildUserStats(userID int64, streak, joined, owned int, todaysVotes []models.Vote) models.UserStats {
	userVotes := 0
	for _, v := range todaysVotes {
		if v.ToID == userID {
			userVotes++
		}
	}

	return models.UserStats{
		Streak:       streak,
		JoinedGroups: joined,
		OwnedGroups:  owned,
		Votes: models.VoteSummary{
			VotedPercentage: Percentage(userVotes, len(todaysVotes)),
			AllVotes:        len(todaysVotes),
			UserVotes:       userVotes,
		},
	}
}

// Percentage returns part/total*100, or 0 when total is not positive
func Percentage(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
