// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package commit

import "sync"

// Tally counts votes per choice id. Counts only ever go up.
type Tally struct {
	mu     sync.Mutex
	counts map[int]int
}

// NewTally starts from seed, ignoring negative counts.
func NewTally(seed map[int]int) *Tally {
	t := &Tally{counts: make(map[int]int, len(seed))}
	for id, n := range seed {
		if n > 0 {
			t.counts[id] = n
		}
	}
	return t
}

// Increment adds one vote for id and returns the new count.
func (t *Tally) Increment(id int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts[id]++
	return t.counts[id]
}

func (t *Tally) Get(id int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[id]
}

func (t *Tally) Snapshot() map[int]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[int]int, len(t.counts))
	for id, n := range t.counts {
		out[id] = n
	}
	return out
}
