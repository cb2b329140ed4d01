// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/loopvote/auth"
	"github.com/danielhkuo/loopvote/cliparse"
	"github.com/danielhkuo/loopvote/middleware"
	"github.com/danielhkuo/loopvote/models"
	"github.com/danielhkuo/loopvote/redirect"
)

type ModeHandler struct {
	cfg        cliparse.Config
	redirector *redirect.Redirector
}

func NewModeHandler(cfg cliparse.Config, redirector *redirect.Redirector) *ModeHandler {
	return &ModeHandler{cfg: cfg, redirector: redirector}
}

// GetVotingMode handles GET /api/voting-mode
func (h *ModeHandler) GetVotingMode(w http.ResponseWriter, r *http.Request) {
	middleware.NoCache(w)
	middleware.JSONResponse(w, http.StatusOK, h.current())
}

// SetVotingMode handles PUT /api/voting-mode
// Requires X-Admin-Key derived from ADMIN_KEY_SALT
func (h *ModeHandler) SetVotingMode(w http.ResponseWriter, r *http.Request) {
	if h.cfg.AdminKeySalt == "" {
		middleware.ErrorResponse(w, http.StatusForbidden, "Voting mode updates are disabled")
		return
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if adminKey == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Admin-Key header required")
		return
	}
	if err := auth.ValidateAdminKey(auth.ModeScope, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req models.SetVotingModeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Mode == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "mode is required")
		return
	}

	mode, err := redirect.ParseMode(req.Mode)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	previous := h.redirector.Modes().Load()
	h.redirector.Modes().Store(mode)

	slog.Info("voting mode changed", "from", previous, "to", mode)

	middleware.NoCache(w)
	middleware.JSONResponse(w, http.StatusOK, h.current())
}

func (h *ModeHandler) current() models.VotingModeResponse {
	mode := h.redirector.Modes().Load()
	return models.VotingModeResponse{
		VotingMode:  string(mode),
		Description: mode.Description(h.redirector.Target()),
	}
}
