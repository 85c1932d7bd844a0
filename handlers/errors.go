// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/dailyq/middleware"
	"github.com/danielhkuo/dailyq/models"
	"github.com/danielhkuo/dailyq/store"
)

// storeMessages names the client message for each classified store error.
// An empty message means that class is unexpected for the operation.
type storeMessages struct {
	notFound  string
	conflict  string
	notMember string
}

// writeStoreError answers a failed gateway call. Unclassified errors are
// logged in full and answered with a sanitized message.
func writeStoreError(w http.ResponseWriter, op string, err error, msgs storeMessages) {
	switch {
	case msgs.notFound != "" && errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, msgs.notFound)
	case msgs.conflict != "" && errors.Is(err, store.ErrConflict):
		middleware.ErrorResponse(w, http.StatusBadRequest, msgs.conflict)
	case msgs.notMember != "" && errors.Is(err, store.ErrNotMember):
		middleware.ErrorResponse(w, http.StatusBadRequest, msgs.notMember)
	default:
		slog.Error("store operation failed", "op", op, "error", err)
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgInternal)
	}
}

// requireFields reports whether every value is present: non-empty strings,
// positive ids.
func requireFields(values ...any) bool {
	for _, v := range values {
		switch v := v.(type) {
		case string:
			if v == "" {
				return false
			}
		case int64:
			if v <= 0 {
				return false
			}
		case int:
			if v <= 0 {
				return false
			}
		case nil:
			return false
		}
	}
	return true
}

// pathID parses a positive integer path value
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryID parses a positive integer query parameter, 0 when absent or invalid
func queryID(r *http.Request, name string) int64 {
	id, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

// groupIDFromPath writes a 400 and returns false when the {id} segment is not an id
func groupIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := pathID(r, "id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgInvalidID)
		return 0, false
	}
	return id, true
}
