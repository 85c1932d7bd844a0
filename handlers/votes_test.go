// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/dailyq/models"
	"github.com/danielhkuo/dailyq/store"
	"github.com/danielhkuo/dailyq/testutil"
)

func TestCastVote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewVoteHandler(store.New(db))
	now := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)
	handler.now = fixedClock(now)

	ana := testutil.CreateTestUser(t, db, "Ana", "ana")
	ben := testutil.CreateTestUser(t, db, "Ben", "ben")
	outsider := testutil.CreateTestUser(t, db, "Dee", "dee")
	groupID := testutil.CreateTestGroup(t, db, "Friends", ana)
	testutil.AddTestMember(t, db, groupID, ana)
	testutil.AddTestMember(t, db, groupID, ben)
	questionID := testutil.CreateTestQuestion(t, db, groupID, "Who?", "2024-05-01")

	testCases := []struct {
		name       string
		voter      int64
		req        models.CastVoteRequest
		wantStatus int
		wantMsg    string
	}{
		{"missing target", ana, models.CastVoteRequest{QuestionID: questionID}, http.StatusBadRequest, models.MsgAllFieldsRequired},
		{"unknown question", ana, models.CastVoteRequest{QuestionID: 9999, ToID: ben}, http.StatusNotFound, models.MsgQuestionNotFound},
		{"target outside group", ana, models.CastVoteRequest{QuestionID: questionID, ToID: outsider}, http.StatusBadRequest, models.MsgNotGroupMember},
		{"voter outside group", outsider, models.CastVoteRequest{QuestionID: questionID, ToID: ben}, http.StatusBadRequest, models.MsgNotGroupMember},
		{"success", ana, models.CastVoteRequest{QuestionID: questionID, ToID: ben}, http.StatusCreated, ""},
		{"second vote", ana, models.CastVoteRequest{QuestionID: questionID, ToID: ana}, http.StatusBadRequest, models.MsgAlreadyVoted},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := withUser(testutil.MakeRequest("POST", "/api/votes", tc.req, nil), tc.voter)
			w := httptest.NewRecorder()

			handler.CastVote(w, req)

			if tc.wantMsg != "" {
				testutil.AssertError(t, w, tc.wantStatus, tc.wantMsg)
				return
			}
			testutil.AssertStatus(t, w, tc.wantStatus)
			var resp models.CastVoteResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.ID == 0 || resp.Message != models.MsgVoteRecorded {
				t.Errorf("Unexpected response: %+v", resp)
			}
		})
	}

	var votes, notifications int
	db.QueryRow("SELECT COUNT(*) FROM votes").Scan(&votes)
	db.QueryRow("SELECT notifications FROM notifications WHERE user_id = $1 AND group_id = $2", ben, groupID).Scan(&notifications)
	if votes != 1 {
		t.Errorf("Expected 1 vote, got %d", votes)
	}
	if notifications != 1 {
		t.Errorf("Expected Ben to have 1 notification, got %d", notifications)
	}
}

func TestCastVote_RequiresUser(t *testing.T) {
	handler := NewVoteHandler(failingStore{})

	req := testutil.MakeRequest("POST", "/api/votes", models.CastVoteRequest{QuestionID: 1, ToID: 2}, nil)
	w := httptest.NewRecorder()

	handler.CastVote(w, req)

	testutil.AssertError(t, w, http.StatusUnauthorized, models.MsgUnauthorized)
}
