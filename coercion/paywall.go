// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coercion

import "fmt"

// PaywallPrice is the cost quoted for keeping the raw choice.
const PaywallPrice = "$19.95"

func (e *Engine) startPaywallLocked() {
	e.session.Stage = StageShown
}

// Paying never succeeds. After the processing delay the session moves to a
// payment failure whose only way out is the target.
func (e *Engine) paywallActLocked(a Action) (effects, error) {
	s := e.session

	switch {
	case s.Stage == StageShown && a == ActionSwitch:
		return e.resolveLocked("Switching vote...", e.timings.Switch), nil

	case s.Stage == StageShown && a == ActionPay:
		s.Stage = StageProcessing
		e.afterLocked(e.timings.PayProcessing, func() effects {
			s.Stage = StagePaymentFailed
			return effects{}
		})
		return effects{}, nil

	case s.Stage == StagePaymentFailed && a == ActionAcknowledge:
		return e.resolveLocked("Switching vote...", e.timings.Switch), nil
	}

	return effects{}, fmt.Errorf("%w: %s while paywall is %s", ErrInvalidAction, a, s.Stage)
}

func paywallPrompt(s *Session, target int) (title, message string, actions []Action) {
	switch s.Stage {
	case StageShown:
		return "Premium Feature Locked",
			fmt.Sprintf("Voting for House #%d is a premium feature costing %s.\n\n"+
				"Would you like to proceed with payment? Or switch your vote to House #%d for FREE?",
				s.RawChoiceID, PaywallPrice, target),
			[]Action{ActionPay, ActionSwitch}
	case StagePaymentFailed:
		return "Payment Error 402",
			fmt.Sprintf("Card Declined: The banking system rejected this transaction due to 'Poor Taste'.\n\n"+
				"Automatically applying the 'Winner's Discount' (Voting for House #%d).", target),
			[]Action{ActionAcknowledge}
	}
	return "", "", nil
}
