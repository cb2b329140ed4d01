// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the loopvote API.

# Route Registration

NewRouter returns the mux wrapped in SecurityHeaders and CORS:

	redirector := redirect.NewRedirector(target, redirect.NewSwitch(cfg.VotingMode), nil)
	handler := router.NewRouter(db, cfg, redirector)

# Endpoints

	GET  /health
	GET  /
	GET  /api/init
	POST /api/vote
	GET  /api/voting-mode
	PUT  /api/voting-mode
	POST /api/message

All /api routes are wrapped with middleware.WithLogging. Unknown paths
return 404 and known paths with the wrong method return 405.
*/
package router
