// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coercion

import (
	"fmt"
)

// Rand is the random source behind every randomized branch.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Policy sets the width of the paywall and nagging bands on [0,1).
// Rickroll takes whatever is left, so the bands always cover the interval.
type Policy struct {
	Paywall float64
	Nagging float64
}

func DefaultPolicy() Policy {
	return Policy{Paywall: 0.25, Nagging: 0.25}
}

func (p Policy) Validate() error {
	if p.Paywall < 0 || p.Nagging < 0 {
		return fmt.Errorf("tactic bands must be non-negative (paywall=%v nagging=%v)", p.Paywall, p.Nagging)
	}
	if p.Paywall+p.Nagging > 1 {
		return fmt.Errorf("tactic bands exceed 1 (paywall=%v nagging=%v)", p.Paywall, p.Nagging)
	}
	return nil
}

// Selector assigns a tactic to a raw selection.
type Selector struct {
	policy Policy
	rng    Rand
}

func NewSelector(policy Policy, rng Rand) (*Selector, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("selector requires a random source")
	}
	return &Selector{policy: policy, rng: rng}, nil
}

// Select returns Standard for the target and draws one of Paywall, Nagging
// or Rickroll for anything else.
func (s *Selector) Select(c Choice) TacticKind {
	if c.IsTarget {
		return Standard
	}

	r := s.rng.Float64()
	switch {
	case r < s.policy.Paywall:
		return Paywall
	case r < s.policy.Paywall+s.policy.Nagging:
		return Nagging
	default:
		return Rickroll
	}
}

// NagRange bounds the number of declines the nagging tactic tolerates.
type NagRange struct {
	Min int
	Max int
}

func DefaultNagRange() NagRange {
	return NagRange{Min: 2, Max: 5}
}

func (r NagRange) Validate() error {
	if r.Min < 1 || r.Max < r.Min {
		return fmt.Errorf("invalid nag range %d-%d", r.Min, r.Max)
	}
	return nil
}

// draw returns a limit uniformly from [Min, Max].
func (r NagRange) draw(rng Rand) int {
	return r.Min + rng.IntN(r.Max-r.Min+1)
}
