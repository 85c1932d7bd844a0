// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielhkuo/dailyq/middleware"
	"github.com/danielhkuo/dailyq/models"
)

// withUser attaches an authenticated user id the way RequireAuth does
func withUser(req *http.Request, userID int64) *http.Request {
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// errDriver stands in for a raw driver error that must never reach clients
var errDriver = errors.New(`pq: relation "friend_groups" does not exist`)

// failingStore fails every call with errDriver
type failingStore struct{}

func (failingStore) ListGroups(context.Context) ([]models.Group, error) { return nil, errDriver }
func (failingStore) CreateGroup(context.Context, string, int64) (models.MutationResult, error) {
	return models.MutationResult{}, errDriver
}
func (failingStore) UpdateGroup(context.Context, int64, string, int64) (models.MutationResult, error) {
	return models.MutationResult{}, errDriver
}
func (failingStore) DeleteGroup(context.Context, int64) (models.MutationResult, error) {
	return models.MutationResult{}, errDriver
}
func (failingStore) LatestGroupQuestion(context.Context, int64) (*models.GroupQuestion, error) {
	return nil, errDriver
}
func (failingStore) VotesFromUserOnLatestQuestion(context.Context, int64, int64) ([]models.Vote, error) {
	return nil, errDriver
}
func (failingStore) VotesOnLatestQuestion(context.Context, int64) ([]models.Vote, error) {
	return nil, errDriver
}
func (failingStore) Members(context.Context, int64) ([]models.Member, error) { return nil, errDriver }
func (failingStore) AddMember(context.Context, int64, int64) (models.MutationResult, error) {
	return models.MutationResult{}, errDriver
}
func (failingStore) RemoveMember(context.Context, int64, int64) (models.MutationResult, error) {
	return models.MutationResult{}, errDriver
}
func (failingStore) QuestionsForDate(context.Context, int64, models.Date) ([]models.Question, error) {
	return nil, errDriver
}
func (failingStore) CreateUser(context.Context, string, string, string) (int64, error) {
	return 0, errDriver
}
func (failingStore) UserByUsername(context.Context, string) (models.User, error) {
	return models.User{}, errDriver
}
func (failingStore) UserByID(context.Context, int64) (models.User, error) {
	return models.User{}, errDriver
}
func (failingStore) UpdateUser(context.Context, int64, string, string) (models.MutationResult, error) {
	return models.MutationResult{}, errDriver
}
func (failingStore) UpdatePassword(context.Context, int64, string) (models.MutationResult, error) {
	return models.MutationResult{}, errDriver
}
func (failingStore) DeleteUser(context.Context, int64) (models.MutationResult, error) {
	return models.MutationResult{}, errDriver
}
func (failingStore) Streak(context.Context, int64) (int, error) { return 0, errDriver }
func (failingStore) MembershipCounts(context.Context, int64) (int, int, error) {
	return 0, 0, errDriver
}
func (failingStore) VotesOnDate(context.Context, models.Date) ([]models.Vote, error) {
	return nil, errDriver
}
func (failingStore) Notifications(context.Context, int64) ([]models.Notification, error) {
	return nil, errDriver
}
func (failingStore) CastVote(context.Context, int64, int64, int64, time.Time) (int64, error) {
	return 0, errDriver
}

// statsStore answers the statistics queries from fixed values
type statsStore struct {
	UserStore
	streak      int
	joined      int
	owned       int
	todaysVotes []models.Vote
	askedDate   models.Date
}

func (s *statsStore) Streak(context.Context, int64) (int, error) { return s.streak, nil }
func (s *statsStore) MembershipCounts(context.Context, int64) (int, int, error) {
	return s.joined, s.owned, nil
}
func (s *statsStore) VotesOnDate(_ context.Context, date models.Date) ([]models.Vote, error) {
	s.askedDate = date
	return s.todaysVotes, nil
}
