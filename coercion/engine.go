// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coercion

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/danielhkuo/loopvote/scheduler"
)

var (
	ErrBusy           = errors.New("a ballot is already in progress")
	ErrNoSession      = errors.New("no ballot in progress")
	ErrInvalidAction  = errors.New("action not available at this stage")
	ErrNotCancellable = errors.New("this ballot cannot be dismissed")
	ErrUnknownChoice  = errors.New("unknown choice")
)

// Committer records a vote. The engine only ever hands it the target id.
type Committer interface {
	Commit(choiceID int)
}

type Options struct {
	Policy    Policy
	NagRange  NagRange
	Timings   Timings
	Rand      Rand
	Scheduler scheduler.Scheduler
	Committer Committer

	// OnChange is called after every transition, outside the engine lock.
	OnChange func(View)
}

// Engine owns the single session slot for one client and drives the active
// tactic through its scheduler.
type Engine struct {
	mu sync.Mutex

	catalog   *Catalog
	selector  *Selector
	nagRange  NagRange
	timings   Timings
	rng       Rand
	sched     scheduler.Scheduler
	committer Committer
	onChange  func(View)

	session    *Session
	committing bool
	loading    string
	commits    int

	// gen invalidates timer callbacks from a session that has ended.
	gen    uint64
	timers []scheduler.Timer
}

// effects are applied after the lock is released.
type effects struct {
	commit bool
}

func NewEngine(catalog *Catalog, opts Options) (*Engine, error) {
	if catalog == nil {
		return nil, errors.New("engine requires a catalog")
	}
	if opts.Committer == nil {
		return nil, errors.New("engine requires a committer")
	}
	if opts.Policy == (Policy{}) {
		opts.Policy = DefaultPolicy()
	}
	if opts.NagRange == (NagRange{}) {
		opts.NagRange = DefaultNagRange()
	}
	if err := opts.NagRange.Validate(); err != nil {
		return nil, err
	}
	if opts.Timings == (Timings{}) {
		opts.Timings = DefaultTimings()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Scheduler == nil {
		opts.Scheduler = scheduler.Real{}
	}

	selector, err := NewSelector(opts.Policy, opts.Rand)
	if err != nil {
		return nil, fmt.Errorf("invalid tactic policy: %w", err)
	}

	return &Engine{
		catalog:   catalog,
		selector:  selector,
		nagRange:  opts.NagRange,
		timings:   opts.Timings,
		rng:       opts.Rand,
		sched:     opts.Scheduler,
		committer: opts.Committer,
		onChange:  opts.OnChange,
	}, nil
}

// Select handles a raw selection. The target commits without a session;
// anything else opens a session with a freshly drawn tactic.
func (e *Engine) Select(choiceID int) (View, error) {
	return e.transition(func() (effects, error) {
		choice, ok := e.catalog.Lookup(choiceID)
		if !ok {
			return effects{}, fmt.Errorf("%w: %d", ErrUnknownChoice, choiceID)
		}
		if e.session != nil || e.committing {
			return effects{}, ErrBusy
		}

		tactic := e.selector.Select(choice)
		if tactic == Standard {
			slog.Debug("target selected directly", "choice_id", choiceID)
			return e.resolveLocked("Processing...", e.timings.Direct), nil
		}

		e.session = &Session{RawChoiceID: choiceID, Tactic: tactic}
		slog.Debug("coercion session started", "choice_id", choiceID, "tactic", tactic)

		switch tactic {
		case Paywall:
			e.startPaywallLocked()
		case Nagging:
			e.startNaggingLocked()
		case Rickroll:
			e.startRickrollLocked()
		}
		return effects{}, nil
	})
}

// Act applies a user action to the open session.
func (e *Engine) Act(a Action) (View, error) {
	return e.transition(func() (effects, error) {
		if e.session == nil {
			return effects{}, ErrNoSession
		}

		switch e.session.Tactic {
		case Paywall:
			return e.paywallActLocked(a)
		case Nagging:
			return e.naggingActLocked(a)
		default:
			return effects{}, fmt.Errorf("%w: %s during %s", ErrInvalidAction, a, e.session.Tactic)
		}
	})
}

// Cancel dismisses the open session without committing. Only a rickroll that
// has not yet resolved can be dismissed.
func (e *Engine) Cancel() (View, error) {
	return e.transition(func() (effects, error) {
		if e.session == nil {
			return effects{}, ErrNoSession
		}
		if e.session.Tactic != Rickroll || e.session.Stage == StageResolved {
			return effects{}, ErrNotCancellable
		}

		slog.Debug("coercion session dismissed", "choice_id", e.session.RawChoiceID)
		e.resetLocked()
		return effects{}, nil
	})
}

// Close stops every pending timer and discards any open session. Use it when
// the enclosing program shuts down.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
}

func (e *Engine) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewLocked()
}

// Session returns a copy of the open session, if any.
func (e *Engine) Session() (Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return Session{}, false
	}
	return *e.session, true
}

func (e *Engine) transition(fn func() (effects, error)) (View, error) {
	e.mu.Lock()
	eff, err := fn()
	v := e.viewLocked()
	e.mu.Unlock()

	if err != nil {
		return v, err
	}
	e.apply(eff, v)
	return v, nil
}

func (e *Engine) apply(eff effects, v View) {
	if eff.commit {
		e.committer.Commit(e.catalog.Target())
	}
	if e.onChange != nil {
		e.onChange(v)
	}
}

// afterLocked schedules fn against the current generation. A callback whose
// generation has been superseded does nothing.
func (e *Engine) afterLocked(d time.Duration, fn func() effects) {
	gen := e.gen
	t := e.sched.After(d, func() {
		e.mu.Lock()
		if gen != e.gen {
			e.mu.Unlock()
			return
		}
		eff := fn()
		v := e.viewLocked()
		e.mu.Unlock()
		e.apply(eff, v)
	})
	e.timers = append(e.timers, t)
}

// resolveLocked ends the interactive part of a session and commits the target
// after delay.
func (e *Engine) resolveLocked(label string, delay time.Duration) effects {
	if e.session != nil {
		e.session.Stage = StageResolved
	}
	e.committing = true
	e.loading = label

	if delay <= 0 {
		return e.finishLocked()
	}
	e.afterLocked(delay, e.finishLocked)
	return effects{}
}

func (e *Engine) finishLocked() effects {
	e.resetLocked()
	e.commits++
	return effects{commit: true}
}

func (e *Engine) resetLocked() {
	for _, t := range e.timers {
		t.Stop()
	}
	e.timers = nil
	e.gen++
	e.session = nil
	e.committing = false
	e.loading = ""
}

func (e *Engine) viewLocked() View {
	v := View{
		Phase:    PhaseIdle,
		Tactic:   Standard,
		TargetID: e.catalog.Target(),
		Loading:  e.loading,
		Commits:  e.commits,
	}
	if e.committing {
		v.Phase = PhaseCommitting
	}

	s := e.session
	if s == nil {
		return v
	}
	if !e.committing {
		v.Phase = PhaseSession
	}
	v.Tactic = s.Tactic
	v.Stage = s.Stage
	v.RawChoiceID = s.RawChoiceID
	v.NagStep = s.NagStep
	v.NagStepLimit = s.NagStepLimit
	v.Cancellable = s.Tactic == Rickroll && s.Stage != StageResolved

	if s.Stage == StageResolved {
		return v
	}

	target := e.catalog.Target()
	switch s.Tactic {
	case Paywall:
		v.Title, v.Message, v.Actions = paywallPrompt(s, target)
		if s.Stage == StageProcessing {
			v.Loading = "Processing Payment..."
		}
	case Nagging:
		v.Title, v.Message, v.Actions = nagPrompt(s, target)
	case Rickroll:
		v.Title, v.Message = rickrollPrompt(s)
	}
	return v
}
