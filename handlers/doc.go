// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the loopvote API.

# Handler Types

Each handler is a struct holding only the dependencies it uses:

  - HouseHandler: Bootstrap read of the catalog, tallies and feed
  - VotingHandler: Vote submission through the redirector
  - ModeHandler: Voting mode query and update
  - MessageHandler: Guestbook posts

	votingHandler := handlers.NewVotingHandler(db, cfg, redirector)

# Endpoints

	GET  /api/init        → Init (houses by id, 100 newest messages)
	POST /api/vote        → SubmitVote
	GET  /api/voting-mode → GetVotingMode
	PUT  /api/voting-mode → SetVotingMode (X-Admin-Key required)
	POST /api/message     → PostMessage

# Vote Recording

SubmitVote checks the house exists before consulting the mode, so an
unknown choiceId is a 404 in every mode. The increment is a single
UPDATE ... SET votes = votes + 1 and shares a transaction with the
vote_log row, so concurrent submissions are never lost.

In redirect-all mode a non-target choice is recorded for the target and
the response carries one of the cover messages instead of the static
success string.
*/
package handlers
