// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/dailyq/middleware"
	"github.com/danielhkuo/dailyq/models"
	"github.com/danielhkuo/dailyq/stats"
)

// GetMembers handles GET /api/groups/{id}/users
// Each member carries the number of votes received on the latest question.
func (h *GroupHandler) GetMembers(w http.ResponseWriter, r *http.Request) {
	groupID, ok := groupIDFromPath(w, r)
	if !ok {
		return
	}

	members, err := h.store.Members(r.Context(), groupID)
	if err != nil {
		writeStoreError(w, "list members", err, storeMessages{})
		return
	}

	votes, err := h.store.VotesOnLatestQuestion(r.Context(), groupID)
	if err != nil {
		writeStoreError(w, "votes on latest question", err, storeMessages{})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats.TallyVotes(members, votes))
}

// AddMember handles POST /api/groups/{id}/users
func (h *GroupHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	groupID, ok := groupIDFromPath(w, r)
	if !ok {
		return
	}

	var req models.AddMemberRequest
	if _, err := middleware.ParseOptionalJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgInvalidJSON)
		return
	}
	if !requireFields(req.UserID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgAllFieldsRequired)
		return
	}

	result, err := h.store.AddMember(r.Context(), groupID, req.UserID)
	if err != nil {
		writeStoreError(w, "add member", err, storeMessages{conflict: models.MsgAlreadyMember})
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, result)
}

// RemoveMember handles DELETE /api/groups/{id}/users
// group_id may be omitted from the body; when present it must match the path.
func (h *GroupHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	groupID, ok := groupIDFromPath(w, r)
	if !ok {
		return
	}

	var req models.RemoveMemberRequest
	if _, err := middleware.ParseOptionalJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgInvalidJSON)
		return
	}
	if req.GroupID == 0 {
		req.GroupID = groupID
	}
	if !requireFields(req.UserID, req.GroupID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgAllFieldsRequired)
		return
	}
	if req.GroupID != groupID {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgGroupMismatch)
		return
	}

	result, err := h.store.RemoveMember(r.Context(), req.GroupID, req.UserID)
	if err != nil {
		writeStoreError(w, "remove member", err, storeMessages{})
		return
	}
	middleware.JSONResponse(w, http.StatusOK, result)
}
