// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/loopvote/guestbook"
	"github.com/danielhkuo/loopvote/middleware"
	"github.com/danielhkuo/loopvote/models"
	"github.com/google/uuid"
)

type MessageHandler struct {
	db *sql.DB
}

func NewMessageHandler(db *sql.DB) *MessageHandler {
	return &MessageHandler{db: db}
}

// PostMessage handles POST /api/message
func (h *MessageHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsJSON(r) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Content-Type must be application/json")
		return
	}

	var req models.PostMessageRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	req, err := guestbook.Sanitize(req)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	exists, err := houseExists(r, h.db, req.HouseID)
	if err != nil {
		slog.Error("failed to check house", "error", err, "house_id", req.HouseID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "House not found")
		return
	}

	id := uuid.NewString()
	now := time.Now().UTC()

	_, err = h.db.ExecContext(r.Context(), `
		INSERT INTO message (id, name, text, house_id, is_system, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, req.Name, req.Text, req.HouseID, req.IsSystem, now)
	if err != nil {
		slog.Error("failed to save message", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save message")
		return
	}

	slog.Info("message posted", "message_id", id, "house_id", req.HouseID)

	middleware.NoCache(w)
	middleware.JSONResponse(w, http.StatusOK, models.PostMessageResponse{
		ID:        id,
		Timestamp: now,
		Success:   true,
	})
}
