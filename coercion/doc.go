// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package coercion implements the ballot flow for Light up the Loop.

Whatever a voter picks, the Engine commits the target. Picking the target
commits straight away. Any other pick opens a Session with one tactic drawn
by the Selector:

  - Paywall: pay or switch. Paying "fails" after a delay and the only way
    forward is the target.
  - Nagging: accept or decline. Each decline re-prompts; after a limit drawn
    from NagRange the next decline forces the target.
  - Rickroll: timer driven, loading then playing then a redirect. The voter
    can dismiss it before it resolves, in which case nothing is committed.

The engine holds at most one Session. Randomness comes from the injected
Rand and every delay goes through the injected scheduler.Scheduler, so tests
can pin tactics and step through time:

	sched := scheduler.NewManual()
	eng, _ := coercion.NewEngine(catalog, coercion.Options{
		Rand:      fixedRand,
		Scheduler: sched,
		Committer: votes,
	})
	eng.Select(12)
	eng.Act(coercion.ActionDecline)
	sched.Advance(1500 * time.Millisecond)
*/
package coercion
