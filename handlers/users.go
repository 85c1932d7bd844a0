// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/dailyq/auth"
	"github.com/danielhkuo/dailyq/cliparse"
	"github.com/danielhkuo/dailyq/middleware"
	"github.com/danielhkuo/dailyq/models"
	"github.com/danielhkuo/dailyq/stats"
	"github.com/danielhkuo/dailyq/store"
	"github.com/dustin/go-humanize"
)

// UserStore is the slice of the gateway used by user routes
type UserStore interface {
	CreateUser(ctx context.Context, name, username, passwordHash string) (int64, error)
	UserByUsername(ctx context.Context, username string) (models.User, error)
	UserByID(ctx context.Context, id int64) (models.User, error)
	UpdateUser(ctx context.Context, id int64, name, username string) (models.MutationResult, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) (models.MutationResult, error)
	DeleteUser(ctx context.Context, id int64) (models.MutationResult, error)
	Streak(ctx context.Context, id int64) (int, error)
	MembershipCounts(ctx context.Context, id int64) (joined, owned int, err error)
	VotesOnDate(ctx context.Context, date models.Date) ([]models.Vote, error)
	Notifications(ctx context.Context, userID int64) ([]models.Notification, error)
}

type UserHandler struct {
	store UserStore
	cfg   cliparse.Config
	now   func() time.Time
}

func NewUserHandler(s UserStore, cfg cliparse.Config) *UserHandler {
	return &UserHandler{store: s, cfg: cfg, now: time.Now}
}

// Signup handles POST /api/users/signup
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if _, err := middleware.ParseOptionalJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgInvalidJSON)
		return
	}

	if !requireFields(req.Name, req.Username, req.Password) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgAllFieldsRequired)
		return
	}
	if !auth.IsAlphanumeric(req.Username) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgUsernameNotValid)
		return
	}
	if !auth.IsStrongPassword(req.Password) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgWeakPassword)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgInternal)
		return
	}

	id, err := h.store.CreateUser(r.Context(), req.Name, req.Username, hash)
	if err != nil {
		writeStoreError(w, "create user", err, storeMessages{conflict: models.MsgUsernameTaken})
		return
	}

	h.respondWithToken(w, http.StatusCreated, id, req.Username)
	slog.Info("user signed up", "user_id", id)
}

// Login handles POST /api/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if _, err := middleware.ParseOptionalJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgInvalidJSON)
		return
	}
	if !requireFields(req.Username, req.Password) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgAllFieldsRequired)
		return
	}

	user, err := h.store.UserByUsername(r.Context(), req.Username)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgInvalidCredentials)
		return
	}
	if err != nil {
		writeStoreError(w, "user by username", err, storeMessages{})
		return
	}

	if err := auth.ComparePassword(user.PasswordHash, req.Password); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgInvalidCredentials)
		return
	}

	h.respondWithToken(w, http.StatusOK, user.ID, user.Username)
}

func (h *UserHandler) respondWithToken(w http.ResponseWriter, status int, userID int64, username string) {
	token, err := auth.GenerateToken(userID, h.cfg.JWTSecret, h.cfg.TokenTTL)
	if err != nil {
		slog.Error("failed to generate token", "user_id", userID, "error", err)
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgInternal)
		return
	}
	middleware.JSONResponse(w, status, models.AuthResponse{Username: username, Token: token})
}

// authorizedUser returns the token's user id, rejecting paths naming anyone else
func (h *UserHandler) authorizedUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := pathID(r, "id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgInvalidID)
		return 0, false
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.MsgUnauthorized)
		return 0, false
	}
	if id != userID {
		slog.Warn("user path mismatch", "path_id", id, "token_user_id", userID)
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.MsgWrongUser)
		return 0, false
	}
	return userID, true
}

// GetUser handles GET /api/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorizedUser(w, r)
	if !ok {
		return
	}

	user, err := h.store.UserByID(r.Context(), userID)
	if err != nil {
		writeStoreError(w, "user by id", err, storeMessages{notFound: models.MsgUserNotFound})
		return
	}
	middleware.JSONResponse(w, http.StatusOK, user)
}

// UpdateUser handles PUT /api/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorizedUser(w, r)
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if _, err := middleware.ParseOptionalJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgInvalidJSON)
		return
	}
	if !requireFields(req.Username) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgAllFieldsRequired)
		return
	}
	if !auth.IsAlphanumeric(req.Username) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgUsernameNotValid)
		return
	}

	result, err := h.store.UpdateUser(r.Context(), userID, req.Name, req.Username)
	if err != nil {
		writeStoreError(w, "update user", err, storeMessages{conflict: models.MsgUsernameTaken})
		return
	}
	middleware.JSONResponse(w, http.StatusOK, result)
}

// UpdatePassword handles PUT /api/users/{id}/password
func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorizedUser(w, r)
	if !ok {
		return
	}

	var req models.UpdatePasswordRequest
	if _, err := middleware.ParseOptionalJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgInvalidJSON)
		return
	}
	if !requireFields(req.OldPassword, req.NewPassword) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgAllFieldsRequired)
		return
	}

	user, err := h.store.UserByID(r.Context(), userID)
	if err != nil {
		writeStoreError(w, "user by id", err, storeMessages{notFound: models.MsgUserNotFound})
		return
	}
	if err := auth.ComparePassword(user.PasswordHash, req.OldPassword); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgIncorrectPassword)
		return
	}
	if !auth.IsStrongPassword(req.NewPassword) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgWeakPassword)
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgInternal)
		return
	}

	result, err := h.store.UpdatePassword(r.Context(), userID, hash)
	if err != nil {
		writeStoreError(w, "update password", err, storeMessages{})
		return
	}
	if result.AffectedRows != 1 {
		slog.Error("password update affected unexpected rows", "user_id", userID, "affected", result.AffectedRows)
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgInternal)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: models.MsgPasswordUpdated})
}

// DeleteUser handles DELETE /api/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorizedUser(w, r)
	if !ok {
		return
	}

	result, err := h.store.DeleteUser(r.Context(), userID)
	if err != nil {
		writeStoreError(w, "delete user", err, storeMessages{})
		return
	}

	slog.Info("user deleted", "user_id", userID, "affected", result.AffectedRows)
	middleware.JSONResponse(w, http.StatusOK, result)
}

// GetStats handles GET /api/users/{id}/stats
// allVotes counts every vote cast today on any group's question.
func (h *UserHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorizedUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	streak, err := h.store.Streak(ctx, userID)
	if err != nil {
		writeStoreError(w, "streak", err, storeMessages{notFound: models.MsgUserNotFound})
		return
	}

	joined, owned, err := h.store.MembershipCounts(ctx, userID)
	if err != nil {
		writeStoreError(w, "membership counts", err, storeMessages{})
		return
	}

	todaysVotes, err := h.store.VotesOnDate(ctx, models.NewDate(h.now().UTC()))
	if err != nil {
		writeStoreError(w, "votes on date", err, storeMessages{})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats.BuildUserStats(userID, streak, joined, owned, todaysVotes))
}

// GetNotifications handles GET /api/users/{id}/notifications
func (h *UserHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorizedUser(w, r)
	if !ok {
		return
	}

	notifications, err := h.store.Notifications(r.Context(), userID)
	if err != nil {
		writeStoreError(w, "notifications", err, storeMessages{})
		return
	}

	now := h.now()
	for i := range notifications {
		notifications[i].LastUpdateHuman = humanize.RelTime(notifications[i].LastUpdate, now, "ago", "from now")
	}
	middleware.JSONResponse(w, http.StatusOK, notifications)
}
