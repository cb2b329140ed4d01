// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/loopvote/cliparse"
	"github.com/danielhkuo/loopvote/handlers"
	"github.com/danielhkuo/loopvote/middleware"
	"github.com/danielhkuo/loopvote/redirect"
)

// NewRouter registers every endpoint and wraps the mux with CORS and
// security headers
func NewRouter(db *sql.DB, cfg cliparse.Config, redirector *redirect.Redirector) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	houseHandler := handlers.NewHouseHandler(db)
	votingHandler := handlers.NewVotingHandler(db, cfg, redirector)
	modeHandler := handlers.NewModeHandler(cfg, redirector)
	messageHandler := handlers.NewMessageHandler(db)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Bootstrap
	mux.HandleFunc("GET /api/init", middleware.WithLogging(houseHandler.Init))

	// Voting
	mux.HandleFunc("POST /api/vote", middleware.WithLogging(votingHandler.SubmitVote))

	// Voting mode (update requires X-Admin-Key)
	mux.HandleFunc("GET /api/voting-mode", middleware.WithLogging(modeHandler.GetVotingMode))
	mux.HandleFunc("PUT /api/voting-mode", middleware.WithLogging(modeHandler.SetVotingMode))

	// Guestbook
	mux.HandleFunc("POST /api/message", middleware.WithLogging(messageHandler.PostMessage))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("loopvote API v1"))
	})

	return middleware.SecurityHeaders(middleware.CORS(mux))
}
