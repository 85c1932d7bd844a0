// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/dailyq/models"
	"github.com/danielhkuo/dailyq/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers_Lifecycle(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	id, err := s.CreateUser(ctx, "Ana", "ana", "hash-1")
	require.NoError(t, err)
	assert.NotZero(t, id)

	_, err = s.CreateUser(ctx, "Other Ana", "ana", "hash-2")
	assert.True(t, errors.Is(err, ErrConflict), "duplicate username should conflict, got %v", err)

	byName, err := s.UserByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, id, byName.ID)
	assert.Equal(t, "hash-1", byName.PasswordHash)

	_, err = s.UserByUsername(ctx, "nobody")
	assert.True(t, errors.Is(err, ErrNotFound))

	res, err := s.UpdateUser(ctx, id, "Ana B", "anab")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.AffectedRows)

	byID, err := s.UserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ana B", byID.Name)
	assert.Equal(t, "anab", byID.Username)

	res, err = s.UpdatePassword(ctx, id, "hash-3")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.AffectedRows)

	byID, err = s.UserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "hash-3", byID.PasswordHash)

	res, err = s.DeleteUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.AffectedRows)

	_, err = s.UserByID(ctx, id)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestUpdateUser_UsernameTaken(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	testutil.CreateTestUser(t, conn, "Ana", "ana")
	ben := testutil.CreateTestUser(t, conn, "Ben", "ben")

	_, err := s.UpdateUser(ctx, ben, "Ben", "ana")
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestStreakAndMembershipCounts(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	u1 := testutil.CreateTestUser(t, conn, "Ana", "ana")
	u2 := testutil.CreateTestUser(t, conn, "Ben", "ben")
	testutil.SetTestStreak(t, conn, u1, 5)

	g1 := testutil.CreateTestGroup(t, conn, "One", u1)
	g2 := testutil.CreateTestGroup(t, conn, "Two", u2)
	testutil.AddTestMember(t, conn, g1, u1)
	testutil.AddTestMember(t, conn, g2, u1)
	testutil.AddTestMember(t, conn, g2, u2)

	streak, err := s.Streak(ctx, u1)
	require.NoError(t, err)
	assert.Equal(t, 5, streak)

	_, err = s.Streak(ctx, 9999)
	assert.True(t, errors.Is(err, ErrNotFound))

	joined, owned, err := s.MembershipCounts(ctx, u1)
	require.NoError(t, err)
	assert.Equal(t, 2, joined)
	assert.Equal(t, 1, owned)

	joined, owned, err = s.MembershipCounts(ctx, 9999)
	require.NoError(t, err)
	assert.Zero(t, joined)
	assert.Zero(t, owned)
}

func TestVotesOnDate(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	u1 := testutil.CreateTestUser(t, conn, "Ana", "ana")
	u2 := testutil.CreateTestUser(t, conn, "Ben", "ben")
	g1 := testutil.CreateTestGroup(t, conn, "One", u1)
	g2 := testutil.CreateTestGroup(t, conn, "Two", u2)

	today1 := testutil.CreateTestQuestion(t, conn, g1, "Q1", "2024-05-01")
	today2 := testutil.CreateTestQuestion(t, conn, g2, "Q2", "2024-05-01")
	yesterday := testutil.CreateTestQuestion(t, conn, g1, "Q0", "2024-04-30")
	testutil.CreateTestVote(t, conn, today1, u1, u2)
	testutil.CreateTestVote(t, conn, today2, u2, u1)
	testutil.CreateTestVote(t, conn, yesterday, u1, u1)

	date, err := models.ParseDate("2024-05-01")
	require.NoError(t, err)

	votes, err := s.VotesOnDate(ctx, date)
	require.NoError(t, err)
	require.Len(t, votes, 2)
	assert.Equal(t, g1, votes[0].GroupID)
	assert.Equal(t, g2, votes[1].GroupID)
}

func TestNotifications(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	u1 := testutil.CreateTestUser(t, conn, "Ana", "ana")
	u2 := testutil.CreateTestUser(t, conn, "Ben", "ben")
	g1 := testutil.CreateTestGroup(t, conn, "One", u1)
	g2 := testutil.CreateTestGroup(t, conn, "Two", u1)

	older := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	testutil.CreateTestNotification(t, conn, g1, u1, 2, older)
	testutil.CreateTestNotification(t, conn, g2, u1, 1, newer)
	testutil.CreateTestNotification(t, conn, g1, u2, 7, newer)

	list, err := s.Notifications(ctx, u1)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, g2, list[0].GroupID)
	assert.Equal(t, "Two", list[0].Name)
	assert.Equal(t, 1, list[0].Notifications)
	assert.True(t, list[0].LastUpdate.Equal(newer))

	assert.Equal(t, "One", list[1].Name)
	assert.Equal(t, 2, list[1].Notifications)

	empty, err := s.Notifications(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
