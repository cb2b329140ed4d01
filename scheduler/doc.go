// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scheduler provides delayed, cancellable callbacks.

Every timed transition in the ballot flow goes through a Scheduler so that
the same code runs against the wall clock in production and a logical clock
in tests:

	sched := scheduler.NewManual()
	sched.After(1500*time.Millisecond, func() { ... })
	sched.Advance(time.Second) // nothing yet
	sched.Advance(500 * time.Millisecond) // fires

Posting wraps a Scheduler so fired callbacks are handed to an event loop
(for example a Bubble Tea program) rather than run on the timer goroutine.
*/
package scheduler
