// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/dailyq/models"
)

func members(ids ...int64) []models.Member {
	out := make([]models.Member, len(ids))
	for i, id := range ids {
		out[i] = models.Member{ID: id, UserID: id, GroupID: 1}
	}
	return out
}

func votesTo(ids ...int64) []models.Vote {
	out := make([]models.Vote, len(ids))
	for i, id := range ids {
		out[i] = models.Vote{ID: int64(i + 1), ToID: id}
	}
	return out
}

func TestTallyVotes(t *testing.T) {
	tests := []struct {
		name    string
		members []models.Member
		votes   []models.Vote
		want    []int
	}{
		{
			name:    "counts per member",
			members: members(1, 2),
			votes:   votesTo(1, 1, 2),
			want:    []int{2, 1},
		},
		{
			name:    "member without votes gets zero",
			members: members(1, 2, 3),
			votes:   votesTo(2),
			want:    []int{0, 1, 0},
		},
		{
			name:    "votes for non-members are dropped",
			members: members(1),
			votes:   votesTo(1, 9, 9),
			want:    []int{1},
		},
		{
			name:    "no votes",
			members: members(4, 5),
			votes:   nil,
			want:    []int{0, 0},
		},
		{
			name:    "no members",
			members: nil,
			votes:   votesTo(1),
			want:    []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TallyVotes(tt.members, tt.votes)
			require.Len(t, got, len(tt.members))

			counts := make([]int, len(got))
			for i, m := range got {
				assert.Equal(t, tt.members[i].ID, m.ID, "order must follow members")
				counts[i] = m.VoteCount
			}
			assert.Equal(t, tt.want, counts)
		})
	}
}

func TestTallyVotesSumMatchesVotesForMembers(t *testing.T) {
	ms := members(1, 2, 3)
	vs := votesTo(1, 2, 2, 3, 3, 3, 7, 8)

	sum := 0
	for _, m := range TallyVotes(ms, vs) {
		sum += m.VoteCount
	}
	assert.Equal(t, 6, sum)
}

func TestTallyVotesDoesNotMutateInput(t *testing.T) {
	ms := members(1)
	TallyVotes(ms, votesTo(1, 1))
	assert.Zero(t, ms[0].VoteCount)
}

func TestResolveHasVoted(t *testing.T) {
	info := &models.GroupQuestion{ID: 3, Name: "Friends", QuestionID: 10, Question: "Who is funniest?"}

	got, err := ResolveHasVoted(info, []models.Vote{{ID: 1, QuestionID: 10, FromID: 2}})
	require.NoError(t, err)
	assert.True(t, got.HasVoted)
	assert.Equal(t, int64(10), got.QuestionID)

	got, err = ResolveHasVoted(info, nil)
	require.NoError(t, err)
	assert.False(t, got.HasVoted)

	_, err = ResolveHasVoted(nil, nil)
	assert.ErrorIs(t, err, ErrNoActiveQuestion)
}

func TestBuildUserStats(t *testing.T) {
	got := BuildUserStats(7, 5, 3, 1, votesTo(7, 9))

	assert.Equal(t, models.UserStats{
		Streak:       5,
		JoinedGroups: 3,
		OwnedGroups:  1,
		Votes: models.VoteSummary{
			VotedPercentage: 50,
			AllVotes:        2,
			UserVotes:       1,
		},
	}, got)
}

func TestBuildUserStatsNoVotes(t *testing.T) {
	got := BuildUserStats(7, 0, 0, 0, nil)

	assert.Equal(t, 0.0, got.Votes.VotedPercentage)
	assert.False(t, math.IsNaN(got.Votes.VotedPercentage))
	assert.Zero(t, got.Votes.AllVotes)
	assert.Zero(t, got.Votes.UserVotes)
}

func TestPercentageBounds(t *testing.T) {
	for total := 0; total <= 5; total++ {
		for part := 0; part <= total; part++ {
			p := Percentage(part, total)
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 100.0)
		}
	}
	assert.Equal(t, 100.0, Percentage(3, 3))
}
