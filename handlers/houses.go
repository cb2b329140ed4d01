// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/loopvote/middleware"
	"github.com/danielhkuo/loopvote/models"
)

type HouseHandler struct {
	db *sql.DB
}

func NewHouseHandler(db *sql.DB) *HouseHandler {
	return &HouseHandler{db: db}
}

// Init handles GET /api/init
// Returns the catalog with current tallies and the most recent guest messages
func (h *HouseHandler) Init(w http.ResponseWriter, r *http.Request) {
	houses, err := h.listHouses(r)
	if err != nil {
		slog.Error("failed to query houses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	messages, err := h.recentMessages(r)
	if err != nil {
		slog.Error("failed to query messages", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=60")
	w.Header().Set("X-Robots-Tag", "noindex")
	middleware.JSONResponse(w, http.StatusOK, models.InitResponse{
		Houses:   houses,
		Messages: messages,
	})
}

func (h *HouseHandler) listHouses(r *http.Request) ([]models.House, error) {
	rows, err := h.db.QueryContext(r.Context(), `
		SELECT id, address, description, image_url, is_target, votes
		FROM house
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	houses := []models.House{}
	for rows.Next() {
		var house models.House
		if err := rows.Scan(&house.ID, &house.Address, &house.Description, &house.ImageURL, &house.IsTarget, &house.Votes); err != nil {
			return nil, err
		}
		houses = append(houses, house)
	}
	return houses, rows.Err()
}

func (h *HouseHandler) recentMessages(r *http.Request) ([]models.Message, error) {
	rows, err := h.db.QueryContext(r.Context(), `
		SELECT id, name, text, house_id, is_system, created_at
		FROM message
		ORDER BY created_at DESC
		LIMIT $1
	`, models.RecentMessageLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Text, &m.HouseID, &m.IsSystem, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func houseExists(r *http.Request, db *sql.DB, id int) (bool, error) {
	var exists bool
	err := db.QueryRowContext(r.Context(), `SELECT EXISTS(SELECT 1 FROM house WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}
