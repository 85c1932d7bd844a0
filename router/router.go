// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/dailyq/cliparse"
	"github.com/danielhkuo/dailyq/handlers"
	"github.com/danielhkuo/dailyq/middleware"
	"github.com/danielhkuo/dailyq/store"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// authRateWindow is the window AuthRateLimit is counted over
const authRateWindow = time.Minute

// NewRouter wires every route. limiter may be nil to disable signup/login throttling.
func NewRouter(db *sql.DB, cfg cliparse.Config, limiter middleware.RateLimiter) *http.ServeMux {
	mux := http.NewServeMux()

	s := store.New(db)

	// Initialize handlers
	groupHandler := handlers.NewGroupHandler(s)
	userHandler := handlers.NewUserHandler(s, cfg)
	voteHandler := handlers.NewVoteHandler(s)

	protect := middleware.RequireAuth(cfg.JWTSecret)
	wrap := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithMetrics(h))
	}
	authLimited := func(route string, h http.HandlerFunc) http.HandlerFunc {
		return wrap(middleware.WithRateLimit(limiter, route, cfg.AuthRateLimit, authRateWindow, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.Ping(ctx); err != nil {
			slog.Error("health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("database unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// Groups
	mux.HandleFunc("GET /api/groups", wrap(groupHandler.ListGroups))
	mux.HandleFunc("POST /api/groups", wrap(groupHandler.CreateGroup))
	mux.HandleFunc("GET /api/groups/{id}", wrap(groupHandler.GetGroup))
	mux.HandleFunc("PUT /api/groups/{id}", wrap(groupHandler.UpdateGroup))
	mux.HandleFunc("DELETE /api/groups/{id}", wrap(groupHandler.DeleteGroup))

	// Group members and questions
	mux.HandleFunc("GET /api/groups/{id}/users", wrap(groupHandler.GetMembers))
	mux.HandleFunc("POST /api/groups/{id}/users", wrap(groupHandler.AddMember))
	mux.HandleFunc("DELETE /api/groups/{id}/users", wrap(groupHandler.RemoveMember))
	mux.HandleFunc("GET /api/groups/{id}/question", wrap(groupHandler.GetQuestion))

	// Credentials (public, rate limited per IP)
	mux.HandleFunc("POST /api/users/signup", authLimited("signup", userHandler.Signup))
	mux.HandleFunc("POST /api/users/login", authLimited("login", userHandler.Login))

	// Account (bearer token required)
	mux.HandleFunc("GET /api/users/{id}", wrap(protect(userHandler.GetUser)))
	mux.HandleFunc("PUT /api/users/{id}", wrap(protect(userHandler.UpdateUser)))
	mux.HandleFunc("DELETE /api/users/{id}", wrap(protect(userHandler.DeleteUser)))
	mux.HandleFunc("PUT /api/users/{id}/password", wrap(protect(userHandler.UpdatePassword)))
	mux.HandleFunc("GET /api/users/{id}/stats", wrap(protect(userHandler.GetStats)))
	mux.HandleFunc("GET /api/users/{id}/notifications", wrap(protect(userHandler.GetNotifications)))

	// Votes
	mux.HandleFunc("POST /api/votes", wrap(protect(voteHandler.CastVote)))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("dailyq API v1"))
	})

	return mux
}
