// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coercion

import "time"

type TacticKind string

const (
	Standard TacticKind = "standard"
	Paywall  TacticKind = "paywall"
	Nagging  TacticKind = "nagging"
	Rickroll TacticKind = "rickroll"
)

// Stage is the tactic-specific phase of a session.
type Stage string

const (
	// Paywall
	StageShown         Stage = "shown"
	StageProcessing    Stage = "processing"
	StagePaymentFailed Stage = "payment_failed"

	// Nagging
	StagePrompting Stage = "prompting"

	// Rickroll
	StageLoading Stage = "loading"
	StagePlaying Stage = "playing"

	// StageResolved is shared by every tactic once the target commit is underway.
	StageResolved Stage = "resolved"
)

type Action string

const (
	ActionPay         Action = "pay"
	ActionSwitch      Action = "switch"
	ActionAccept      Action = "accept"
	ActionDecline     Action = "decline"
	ActionAcknowledge Action = "acknowledge"
)

// Session tracks one in-progress tactic. Tactic never changes after creation
// and NagStep only moves forward.
type Session struct {
	RawChoiceID  int
	Tactic       TacticKind
	NagStep      int
	NagStepLimit int
	Stage        Stage
}

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSession    Phase = "session"
	PhaseCommitting Phase = "committing"
)

// View is a snapshot of the engine for rendering.
type View struct {
	Phase        Phase
	Tactic       TacticKind
	Stage        Stage
	RawChoiceID  int
	TargetID     int
	NagStep      int
	NagStepLimit int

	Title   string
	Message string
	Actions []Action

	// Loading is the label shown while a timed step runs with no prompt open.
	Loading     string
	Cancellable bool
	Commits     int
}

// Timings holds every delay in the flow. A zero delay commits synchronously.
type Timings struct {
	Direct           time.Duration
	Switch           time.Duration
	NagSubmit        time.Duration
	PayProcessing    time.Duration
	RickrollLoading  time.Duration
	RickrollPlaying  time.Duration
	RickrollRedirect time.Duration
}

func DefaultTimings() Timings {
	return Timings{
		NagSubmit:        1500 * time.Millisecond,
		PayProcessing:    2000 * time.Millisecond,
		RickrollLoading:  1500 * time.Millisecond,
		RickrollPlaying:  5000 * time.Millisecond,
		RickrollRedirect: 1000 * time.Millisecond,
	}
}

// TheatricalTimings adds the short "processing" pauses before direct and
// switched commits.
func TheatricalTimings() Timings {
	t := DefaultTimings()
	t.Direct = 150 * time.Millisecond
	t.Switch = 300 * time.Millisecond
	return t
}
