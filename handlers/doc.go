// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the dailyq API.

# Handler Types

Each handler is a struct over a narrow gateway interface implemented by
*store.Store:

  - GroupHandler (GroupStore): groups, members, questions
  - UserHandler (UserStore): credentials, profile, stats, notifications
  - VoteHandler (VoteStore): vote casting

Handlers are created with constructor functions:

	groupHandler := handlers.NewGroupHandler(store.New(db))
	userHandler := handlers.NewUserHandler(store.New(db), cfg)

# Groups

	GET    /api/groups              → ListGroups
	GET    /api/groups/{id}         → GetGroup (latest question + hasVoted for from_id)
	POST   /api/groups              → CreateGroup
	PUT    /api/groups/{id}         → UpdateGroup
	DELETE /api/groups/{id}         → DeleteGroup
	GET    /api/groups/{id}/users   → GetMembers (voteCount on the latest question)
	POST   /api/groups/{id}/users   → AddMember
	DELETE /api/groups/{id}/users   → RemoveMember
	GET    /api/groups/{id}/question → GetQuestion (questions for a date)

GET routes accept their input either as a JSON body or as query
parameters (?from_id=, ?date=).

# Users

	POST /api/users/signup  → Signup
	POST /api/users/login   → Login

Routes under /api/users/{id} require a bearer token; the {id} segment must
name the token's user or the request is rejected with 401.

# Votes

	POST /api/votes → CastVote

The voter is the token's user. The vote and the target's notification
counter are written in one transaction.

# Errors

Validation failures answer 400 with a fixed message, such as
"All fields are required.", before any query runs. Store errors go through
writeStoreError: store.ErrNotFound becomes 404, store.ErrConflict and
store.ErrNotMember become 400 with a specific message, and anything else is
logged and answered with a sanitized 400.
*/
package handlers
