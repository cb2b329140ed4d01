// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/danielhkuo/loopvote/auth"
	"github.com/danielhkuo/loopvote/cliparse"
	"github.com/danielhkuo/loopvote/middleware"
	"github.com/danielhkuo/loopvote/models"
	"github.com/danielhkuo/loopvote/redirect"
	"github.com/google/uuid"
)

var errNotFound = errors.New("house not found")

const maxUserAgentLen = 256

type VotingHandler struct {
	db         *sql.DB
	cfg        cliparse.Config
	redirector *redirect.Redirector
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config, redirector *redirect.Redirector) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg, redirector: redirector}
}

// SubmitVote handles POST /api/vote
// The mode is read once; in redirect-all any non-target choice is recorded
// for the target
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsJSON(r) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Content-Type must be application/json")
		return
	}

	choiceID, ok := parseChoiceID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "choiceId must be a positive integer")
		return
	}

	exists, err := houseExists(r, h.db, choiceID)
	if err != nil {
		slog.Error("failed to check house", "error", err, "choice_id", choiceID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "House not found")
		return
	}

	decision := h.redirector.Resolve(choiceID)

	err = h.record(r, decision)
	if errors.Is(err, errNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "House not found")
		return
	}
	if err != nil {
		slog.Error("failed to record vote", "error", err, "recorded_id", decision.RecordedID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	slog.Info("vote recorded",
		"requested_id", decision.RequestedID,
		"recorded_id", decision.RecordedID,
		"mode", decision.Mode,
		"redirected", decision.Redirected,
	)

	middleware.NoCache(w)
	middleware.JSONResponse(w, http.StatusOK, models.SubmitVoteResponse{
		Success:    true,
		RecordedID: decision.RecordedID,
		Message:    decision.Message,
		VotingMode: string(decision.Mode),
	})
}

// record increments the tally and writes the audit row in one transaction
func (h *VotingHandler) record(r *http.Request, d redirect.Decision) error {
	tx, err := h.db.BeginTx(r.Context(), nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Single statement increment so concurrent votes are never lost
	res, err := tx.Exec(`UPDATE house SET votes = votes + 1 WHERE id = $1`, d.RecordedID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errNotFound
	}

	var ipHash *string
	if h.cfg.AdminKeySalt != "" {
		hash := auth.HashIP(middleware.GetClientIP(r), h.cfg.AdminKeySalt)
		ipHash = &hash
	}
	var userAgent *string
	if ua := r.UserAgent(); ua != "" {
		if len(ua) > maxUserAgentLen {
			ua = ua[:maxUserAgentLen]
		}
		userAgent = &ua
	}

	_, err = tx.Exec(`
		INSERT INTO vote_log (id, requested_id, recorded_id, mode, ip_hash, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, uuid.NewString(), d.RequestedID, d.RecordedID, string(d.Mode), ipHash, userAgent, time.Now().UTC())
	if err != nil {
		return err
	}

	return tx.Commit()
}

// parseChoiceID accepts only a JSON integer literal greater than zero
func parseChoiceID(r *http.Request) (int, bool) {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return 0, false
	}

	num, ok := body["choiceId"].(json.Number)
	if !ok {
		return 0, false
	}
	id, err := num.Int64()
	if err != nil || id < 1 || id > math.MaxInt32 {
		return 0, false
	}
	return int(id), true
}
