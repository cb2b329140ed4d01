// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package redirect is the server's own enforcement of the target.

In Normal mode a vote is recorded for the house that was submitted. In
RedirectAll mode any vote for another house is recorded for the target and
answered with a cover message drawn from CoverMessages. A vote for the
target is never rewritten, so it gets the same answer in either mode.

	modes := redirect.NewSwitch(redirect.RedirectAll)
	r := redirect.NewRedirector(7, modes, nil)
	d := r.Resolve(15) // d.RecordedID == 7
*/
package redirect
