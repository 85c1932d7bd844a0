// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the calendar date format used for question dates
const DateLayout = "2006-01-02"

// Fixed client-facing messages
const (
	MsgAllFieldsRequired  = "All fields are required."
	MsgUserNotFound       = "User not found."
	MsgNoActiveQuestion   = "No active question for this group."
	MsgInternal           = "There was an error while processing the request."
	MsgPasswordUpdated    = "Password has been successfully updated."
	MsgUsernameNotValid   = "Username is not valid."
	MsgAlreadyMember      = "User is already a member of this group."
	MsgAlreadyVoted       = "You have already voted on this question."
	MsgUsernameTaken      = "Username already in use."
	MsgQuestionNotFound   = "Question not found."
	MsgNotGroupMember     = "User is not a member of this group."
	MsgVoteRecorded       = "Vote recorded."
	MsgRateLimitExceeded  = "Too many requests, try again later."
	MsgUnauthorized       = "Authorization token required."
	MsgInvalidCredentials = "Incorrect username or password."
	MsgIncorrectPassword  = "Incorrect password."
	MsgWeakPassword       = "Password not strong enough."
	MsgInvalidID          = "Invalid id."
	MsgInvalidDate        = "Date is not valid."
	MsgGroupMismatch      = "Group id does not match the request path."
	MsgWrongUser          = "Not authorized for this user."
	MsgInvalidJSON        = "Invalid JSON."
)

// Date is a calendar date without time of day.
// Postgres hands DATE columns back as time.Time, SQLite as text; Scan accepts both.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		return d.parseText(v)
	case []byte:
		return d.parseText(string(v))
	case nil:
		*d = Date{}
		return nil
	}
	return fmt.Errorf("cannot scan %T into Date", src)
}

func (d *Date) parseText(s string) error {
	if len(s) >= len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Request types

type GroupRequest struct {
	Name  string `json:"name"`
	Owner int64  `json:"owner"`
}

type GetGroupRequest struct {
	FromID int64 `json:"from_id"`
}

type AddMemberRequest struct {
	UserID int64 `json:"user_id"`
}

type RemoveMemberRequest struct {
	UserID  int64 `json:"user_id"`
	GroupID int64 `json:"group_id"`
}

type QuestionRequest struct {
	Date string `json:"date"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type CastVoteRequest struct {
	QuestionID int64 `json:"question_id"`
	ToID       int64 `json:"to_id"`
}

// Response types

// MutationResult mirrors what the gateway reports for a write
type MutationResult struct {
	ID           int64 `json:"id,omitempty"`
	AffectedRows int64 `json:"affectedRows"`
}

type AuthResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CastVoteResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type VoteSummary struct {
	VotedPercentage float64 `json:"votedPercentage"`
	AllVotes        int     `json:"allVotes"`
	UserVotes       int     `json:"userVotes"`
}

type UserStats struct {
	Streak       int         `json:"streak"`
	JoinedGroups int         `json:"joinedGroups"`
	OwnedGroups  int         `json:"ownedGroups"`
	Votes        VoteSummary `json:"votes"`
}

// Domain types

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Streak       int       `json:"streak"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

type Group struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"owner_id"`
}

// Member is a user row joined through memberships, annotated with the
// votes received on the group's latest question
type Member struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	GroupID   int64  `json:"group_id"`
	Name      string `json:"name"`
	Streak    int    `json:"streak"`
	Username  string `json:"username"`
	VoteCount int    `json:"voteCount"`
}

type Question struct {
	ID       int64  `json:"id"`
	GroupID  int64  `json:"group_id"`
	Question string `json:"question"`
	Date     Date   `json:"date"`
}

// GroupQuestion is a group joined with its latest question
type GroupQuestion struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	OwnerID    int64  `json:"owner_id"`
	QuestionID int64  `json:"question_id"`
	Question   string `json:"question"`
	Date       Date   `json:"date"`
	HasVoted   bool   `json:"hasVoted"`
}

type Vote struct {
	ID         int64 `json:"id"`
	QuestionID int64 `json:"question_id"`
	GroupID    int64 `json:"group_id"`
	FromID     int64 `json:"from_id"`
	ToID       int64 `json:"to_id"`
	Date       Date  `json:"date"`
}

type Notification struct {
	ID              int64     `json:"id"`
	GroupID         int64     `json:"group_id"`
	Name            string    `json:"name"`
	Notifications   int       `json:"notifications"`
	LastUpdate      time.Time `json:"last_update"`
	LastUpdateHuman string    `json:"last_update_human"`
}

// Error response

type ErrorResponse struct {
	Error string `json:"error"`
}
