// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/dailyq/auth"
	"github.com/danielhkuo/dailyq/models"
)

type contextKey string

const userIDKey contextKey = "dailyq-user-id"

// RequireAuth rejects requests without a valid bearer session token and
// stores the token's user id in the request context.
func RequireAuth(secret string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r.Header.Get("Authorization"))
			if err != nil {
				slog.Warn("authorization header invalid", "error", err, "path", r.URL.Path)
				ErrorResponse(w, http.StatusUnauthorized, models.MsgUnauthorized)
				return
			}

			claims, err := auth.ParseToken(token, secret)
			if err != nil {
				slog.Warn("token validation failed", "error", err, "path", r.URL.Path)
				ErrorResponse(w, http.StatusUnauthorized, models.MsgUnauthorized)
				return
			}

			ctx := WithUserID(r.Context(), claims.UserID)
			next(w, r.WithContext(ctx))
		}
	}
}

// WithUserID returns a context carrying an authenticated user id
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user id, if any
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

func bearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header format")
	}
	return parts[1], nil
}
