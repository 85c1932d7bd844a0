// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/dailyq/middleware"
	"github.com/danielhkuo/dailyq/models"
	"github.com/danielhkuo/dailyq/stats"
	"github.com/danielhkuo/dailyq/store"
)

// GroupStore is the slice of the gateway used by group routes
type GroupStore interface {
	ListGroups(ctx context.Context) ([]models.Group, error)
	CreateGroup(ctx context.Context, name string, ownerID int64) (models.MutationResult, error)
	UpdateGroup(ctx context.Context, id int64, name string, ownerID int64) (models.MutationResult, error)
	DeleteGroup(ctx context.Context, id int64) (models.MutationResult, error)
	LatestGroupQuestion(ctx context.Context, groupID int64) (*models.GroupQuestion, error)
	VotesFromUserOnLatestQuestion(ctx context.Context, groupID, fromID int64) ([]models.Vote, error)
	VotesOnLatestQuestion(ctx context.Context, groupID int64) ([]models.Vote, error)
	Members(ctx context.Context, groupID int64) ([]models.Member, error)
	AddMember(ctx context.Context, groupID, userID int64) (models.MutationResult, error)
	RemoveMember(ctx context.Context, groupID, userID int64) (models.MutationResult, error)
	QuestionsForDate(ctx context.Context, groupID int64, date models.Date) ([]models.Question, error)
}

type GroupHandler struct {
	store GroupStore
}

func NewGroupHandler(s GroupStore) *GroupHandler {
	return &GroupHandler{store: s}
}

// ListGroups handles GET /api/groups
func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.store.ListGroups(r.Context())
	if err != nil {
		writeStoreError(w, "list groups", err, storeMessages{})
		return
	}
	middleware.JSONResponse(w, http.StatusOK, groups)
}

// GetGroup handles GET /api/groups/{id}
// The requesting user comes from the body {from_id} or ?from_id=.
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := groupIDFromPath(w, r)
	if !ok {
		return
	}

	var req models.GetGroupRequest
	if _, err := middleware.ParseOptionalJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgInvalidJSON)
		return
	}
	if req.FromID == 0 {
		req.FromID = queryID(r, "from_id")
	}
	if !requireFields(req.FromID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgAllFieldsRequired)
		return
	}

	info, err := h.store.LatestGroupQuestion(r.Context(), groupID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		writeStoreError(w, "latest group question", err, storeMessages{})
		return
	}

	var votes []models.Vote
	if info != nil {
		votes, err = h.store.VotesFromUserOnLatestQuestion(r.Context(), groupID, req.FromID)
		if err != nil {
			writeStoreError(w, "votes from user", err, storeMessages{})
			return
		}
	}

	result, err := stats.ResolveHasVoted(info, votes)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, models.MsgNoActiveQuestion)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}

// CreateGroup handles POST /api/groups
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req models.GroupRequest
	if _, err := middleware.ParseOptionalJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgInvalidJSON)
		return
	}
	if !requireFields(req.Name, req.Owner) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgAllFieldsRequired)
		return
	}

	result, err := h.store.CreateGroup(r.Context(), req.Name, req.Owner)
	if err != nil {
		writeStoreError(w, "create group", err, storeMessages{})
		return
	}

	slog.Info("group created", "group_id", result.ID, "owner_id", req.Owner)
	middleware.JSONResponse(w, http.StatusCreated, result)
}

// UpdateGroup handles PUT /api/groups/{id}
func (h *GroupHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := groupIDFromPath(w, r)
	if !ok {
		return
	}

	var req models.GroupRequest
	if _, err := middleware.ParseOptionalJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgInvalidJSON)
		return
	}
	if !requireFields(req.Name, req.Owner) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgAllFieldsRequired)
		return
	}

	result, err := h.store.UpdateGroup(r.Context(), groupID, req.Name, req.Owner)
	if err != nil {
		writeStoreError(w, "update group", err, storeMessages{})
		return
	}
	middleware.JSONResponse(w, http.StatusOK, result)
}

// DeleteGroup handles DELETE /api/groups/{id}
func (h *GroupHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := groupIDFromPath(w, r)
	if !ok {
		return
	}

	result, err := h.store.DeleteGroup(r.Context(), groupID)
	if err != nil {
		writeStoreError(w, "delete group", err, storeMessages{})
		return
	}

	slog.Info("group deleted", "group_id", groupID, "affected", result.AffectedRows)
	middleware.JSONResponse(w, http.StatusOK, result)
}
