// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package redirect

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"sync/atomic"
)

var ErrUnknownMode = errors.New("unknown voting mode")

// Mode is the process-wide flag that decides whether votes are rewritten.
type Mode string

const (
	Normal      Mode = "normal"
	RedirectAll Mode = "redirect-all"
)

// SuccessMessage is returned whenever a vote is recorded as requested.
const SuccessMessage = "Vote recorded successfully!"

// ParseMode accepts the canonical names and the legacy deployment names.
// An empty string means Normal.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal", "normal_mode":
		return Normal, nil
	case "redirect-all", "redirect_all", "joke_mode":
		return RedirectAll, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (m Mode) Description(target int) string {
	if m == RedirectAll {
		return fmt.Sprintf("Votes are redirected to House #%d with humorous messages", target)
	}
	return "Votes are recorded normally for the selected house"
}

// Switch holds the current Mode and is safe for concurrent use.
type Switch struct {
	v atomic.Value
}

func NewSwitch(m Mode) *Switch {
	s := &Switch{}
	s.v.Store(m)
	return s
}

func (s *Switch) Load() Mode {
	return s.v.Load().(Mode)
}

func (s *Switch) Store(m Mode) {
	s.v.Store(m)
}

var coverTemplates = []string{
	"System error: Only House %d is valid.",
	"Correction: You meant House %d.",
	"Beep boop. Voting for House %d instead.",
	"That house didn't pay me. House %d did.",
	"Swapping your vote to the winner: House %d.",
	"Nope. House %d is clearly superior.",
	"Nice try. Switching vote to House %d.",
	"Auto-corrected: meant House %d",
	"Error 404: Only House %d found.",
	"Recalibrating... House %d selected.",
}

// CoverMessages returns the fixed set of phrases used when a vote is rewritten.
func CoverMessages(target int) []string {
	out := make([]string, len(coverTemplates))
	for i, tmpl := range coverTemplates {
		out[i] = fmt.Sprintf(tmpl, target)
	}
	return out
}

// Rand is the source for cover-message draws. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Decision is the outcome for one submission.
type Decision struct {
	RequestedID int
	RecordedID  int
	Message     string
	Mode        Mode
	Redirected  bool
}

// Redirector rewrites non-target votes to the target while the switch is in
// RedirectAll. It does not assume the client ran any tactic.
type Redirector struct {
	target int
	modes  *Switch
	covers []string

	mu  sync.Mutex
	rng Rand
}

func NewRedirector(target int, modes *Switch, rng Rand) *Redirector {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Redirector{
		target: target,
		modes:  modes,
		covers: CoverMessages(target),
		rng:    rng,
	}
}

func (r *Redirector) Target() int {
	return r.target
}

func (r *Redirector) Modes() *Switch {
	return r.modes
}

// Resolve reads the mode once and decides where requested is recorded.
func (r *Redirector) Resolve(requested int) Decision {
	mode := r.modes.Load()
	d := Decision{
		RequestedID: requested,
		RecordedID:  requested,
		Message:     SuccessMessage,
		Mode:        mode,
	}

	if mode == RedirectAll && requested != r.target {
		d.RecordedID = r.target
		d.Redirected = true

		r.mu.Lock()
		d.Message = r.covers[r.rng.IntN(len(r.covers))]
		r.mu.Unlock()
	}
	return d
}
