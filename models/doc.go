// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - GroupRequest: name, owner
  - GetGroupRequest: from_id
  - AddMemberRequest: user_id
  - RemoveMemberRequest: user_id, group_id
  - QuestionRequest: date (YYYY-MM-DD)
  - SignupRequest, LoginRequest: credentials
  - UpdateUserRequest: name, username
  - UpdatePasswordRequest: oldPassword, newPassword
  - CastVoteRequest: question_id, to_id

# Response Types

  - MutationResult: id (on insert), affectedRows
  - AuthResponse: username, token
  - UserStats: streak, joinedGroups, ownedGroups, votes
  - CastVoteResponse: id, message
  - ErrorResponse: error

# Domain Types

  - User, Group, Question, Vote, Notification
  - Member: a user row inside a group, with voteCount
  - GroupQuestion: a group joined with its latest question, with hasVoted

# Dates

Date is a calendar date serialized as "2006-01-02" in JSON and SQL. It
scans from both time.Time (PostgreSQL DATE) and text (SQLite).

# Messages

The Msg* constants are the fixed client-facing messages. Persistence
errors are never passed to clients; they get MsgInternal.
*/
package models
