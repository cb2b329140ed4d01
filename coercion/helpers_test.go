// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coercion

import (
	"testing"

	"github.com/danielhkuo/loopvote/scheduler"
	"github.com/stretchr/testify/require"
)

const target = 7

// scriptedRand replays fixed draws and fails the test if a draw is unscripted.
type scriptedRand struct {
	t      *testing.T
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	r.t.Helper()
	require.NotEmpty(r.t, r.floats, "unexpected Float64 draw")
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) IntN(n int) int {
	r.t.Helper()
	require.NotEmpty(r.t, r.ints, "unexpected IntN draw")
	v := r.ints[0]
	r.ints = r.ints[1:]
	require.Less(r.t, v, n, "scripted IntN out of range")
	return v
}

type recorder struct {
	ids []int
}

func (r *recorder) Commit(id int) {
	r.ids = append(r.ids, id)
}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog([]Choice{
		{ID: 1}, {ID: 3}, {ID: 7, IsTarget: true}, {ID: 12}, {ID: 15},
	})
	require.NoError(t, err)
	return c
}

// Draws that force each tactic under the default policy.
const (
	drawPaywall  = 0.1
	drawNagging  = 0.3
	drawRickroll = 0.7
)

type harness struct {
	eng   *Engine
	sched *scheduler.Manual
	rng   *scriptedRand
	votes *recorder
}

func newHarness(t *testing.T, timings Timings) *harness {
	t.Helper()
	h := &harness{
		sched: scheduler.NewManual(),
		rng:   &scriptedRand{t: t},
		votes: &recorder{},
	}
	eng, err := NewEngine(testCatalog(t), Options{
		Timings:   timings,
		Rand:      h.rng,
		Scheduler: h.sched,
		Committer: h.votes,
	})
	require.NoError(t, err)
	h.eng = eng
	return h
}

// script queues one tactic draw and, for nagging, the limit draw.
func (h *harness) script(tactic float64, nagLimitOffset ...int) {
	h.rng.floats = append(h.rng.floats, tactic)
	h.rng.ints = append(h.rng.ints, nagLimitOffset...)
}
