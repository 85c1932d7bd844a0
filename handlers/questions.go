// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/dailyq/middleware"
	"github.com/danielhkuo/dailyq/models"
)

// GetQuestion handles GET /api/groups/{id}/question
// The date comes from the body {date} or ?date=, formatted YYYY-MM-DD.
func (h *GroupHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	groupID, ok := groupIDFromPath(w, r)
	if !ok {
		return
	}

	var req models.QuestionRequest
	if _, err := middleware.ParseOptionalJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgInvalidJSON)
		return
	}
	if req.Date == "" {
		req.Date = r.URL.Query().Get("date")
	}
	if !requireFields(req.Date) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgAllFieldsRequired)
		return
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgInvalidDate)
		return
	}

	questions, err := h.store.QuestionsForDate(r.Context(), groupID, date)
	if err != nil {
		writeStoreError(w, "questions for date", err, storeMessages{})
		return
	}
	middleware.JSONResponse(w, http.StatusOK, questions)
}
