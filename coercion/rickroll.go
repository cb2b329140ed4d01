// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coercion

import "fmt"

// The rickroll needs no input: loading, then playing, then a redirect that
// commits the target. It is the only tactic that can be dismissed.
func (e *Engine) startRickrollLocked() {
	s := e.session
	s.Stage = StageLoading

	e.afterLocked(e.timings.RickrollLoading, func() effects {
		s.Stage = StagePlaying
		return effects{}
	})
	e.afterLocked(e.timings.RickrollLoading+e.timings.RickrollPlaying, func() effects {
		label := fmt.Sprintf("Redirecting to Safe Vote (#%d)...", e.catalog.Target())
		return e.resolveLocked(label, e.timings.RickrollRedirect)
	})
}

func rickrollPrompt(s *Session) (title, message string) {
	switch s.Stage {
	case StageLoading:
		return "Verifying Ballot...", "Connecting to secure voting server..."
	case StagePlaying:
		return "Redirecting...", "♪ NEVER GONNA GIVE YOU UP... ♪"
	}
	return "", ""
}
