// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package commit records votes on the client.

Service.Commit bumps the local Tally for the target before any network
round trip, then submits through a Submitter on its own goroutine. Failed or
rejected submissions are logged and reported to the result handler; the local
count is never rolled back.

	tally := commit.NewTally(initialVotes)
	votes := commit.NewService(7, tally,
		commit.WithSubmitter(apiClient),
		commit.WithCue(playJingle),
	)
	votes.Commit(7)
*/
package commit
