// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/dailyq/middleware"
	"github.com/danielhkuo/dailyq/models"
)

// VoteStore records votes
type VoteStore interface {
	CastVote(ctx context.Context, questionID, fromID, toID int64, at time.Time) (int64, error)
}

type VoteHandler struct {
	store VoteStore
	now   func() time.Time
}

func NewVoteHandler(s VoteStore) *VoteHandler {
	return &VoteHandler{store: s, now: time.Now}
}

// CastVote handles POST /api/votes
// The voter is the authenticated user; both users must belong to the question's group.
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	fromID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.MsgUnauthorized)
		return
	}

	var req models.CastVoteRequest
	if _, err := middleware.ParseOptionalJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgInvalidJSON)
		return
	}
	if !requireFields(req.QuestionID, req.ToID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgAllFieldsRequired)
		return
	}

	voteID, err := h.store.CastVote(r.Context(), req.QuestionID, fromID, req.ToID, h.now().UTC())
	if err != nil {
		writeStoreError(w, "cast vote", err, storeMessages{
			notFound:  models.MsgQuestionNotFound,
			conflict:  models.MsgAlreadyVoted,
			notMember: models.MsgNotGroupMember,
		})
		return
	}

	slog.Info("vote cast", "vote_id", voteID, "question_id", req.QuestionID, "from_id", fromID, "to_id", req.ToID)
	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{ID: voteID, Message: models.MsgVoteRecorded})
}
