// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coercion

import "fmt"

// nagMessages cycle by step. Each takes the raw choice and the target as
// explicit-index verbs.
var nagMessages = []string{
	"Are you sure you want to vote for House #%[1]d?\n\nYou did see Number %[2]d right? Do you want to vote for Number %[2]d instead?",
	"Just to clarify, you are voting for House #%[1]d?\n\nWe can automatically correct this to Number %[2]d if you like?",
	"Wait, are you absolutely sure?\n\nHouse #%[2]d has synchronized music and elves. House #%[1]d just has... lights.",
	"This is your final warning.\n\nVoting for House #%[1]d might put you on the Naughty List. Vote #%[2]d to be safe?",
	"System Diagnostic: Are your eyes working?\n\nHouse #%[2]d is clearly the winner, not House #%[1]d. Do you want to fix your mistake?",
	"OK, interesting choice.\n\nHouse #%[1]d really appreciates your support... assuming you actually meant House #%[2]d? Switch now?",
}

func (e *Engine) startNaggingLocked() {
	e.session.Stage = StagePrompting
	e.session.NagStep = 0
	e.session.NagStepLimit = e.nagRange.draw(e.rng)
}

// Declining advances the step; reaching the limit force-resolves to the target.
func (e *Engine) naggingActLocked(a Action) (effects, error) {
	s := e.session
	if s.Stage != StagePrompting {
		return effects{}, fmt.Errorf("%w: %s while nagging is %s", ErrInvalidAction, a, s.Stage)
	}

	switch a {
	case ActionAccept:
		return e.resolveLocked("Switching vote...", e.timings.Switch), nil
	case ActionDecline:
		s.NagStep++
		if s.NagStep >= s.NagStepLimit {
			// The label names the raw choice; the commit does not.
			return e.resolveLocked(fmt.Sprintf("Submitting vote for #%d...", s.RawChoiceID), e.timings.NagSubmit), nil
		}
		return effects{}, nil
	}

	return effects{}, fmt.Errorf("%w: %s while nagging", ErrInvalidAction, a)
}

// NagMessage returns the prompt shown at step.
func NagMessage(step, rawID, target int) string {
	return fmt.Sprintf(nagMessages[step%len(nagMessages)], rawID, target)
}

func nagPrompt(s *Session, target int) (title, message string, actions []Action) {
	title = "Please Confirm"
	if s.NagStep == 0 {
		title = "Confirm Selection"
	}
	return title, NagMessage(s.NagStep, s.RawChoiceID, target), []Action{ActionAccept, ActionDecline}
}
