// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tui is the Bubble Tea front end for the ballot.

Model wraps a coercion.Engine, a commit.Service and a guestbook.Board. The
engine's timers run on a scheduler.Posting, so every fired callback is sent
back into the program as a message and the engine is only ever touched from
Update. Submission results arrive the same way.

	model, err := tui.New(tui.Deps{
		Boot:      boot,
		Submitter: apiClient,
		Poster:    apiClient,
		Rand:      rng,
	})
	_, err = tea.NewProgram(model).Run()
	model.Close()

Leave Submitter and Poster nil to keep votes and messages local.
*/
package tui
