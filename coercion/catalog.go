// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coercion

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrNoTarget       = errors.New("catalog has no target choice")
	ErrMultipleTarget = errors.New("catalog has more than one target choice")
)

// Choice is an immutable catalog entry.
type Choice struct {
	ID       int
	IsTarget bool
}

// Catalog is the fixed set of choices for a session, with exactly one target.
type Catalog struct {
	byID   map[int]Choice
	order  []int
	target int
}

func NewCatalog(choices []Choice) (*Catalog, error) {
	c := &Catalog{byID: make(map[int]Choice, len(choices))}
	targets := 0

	for _, ch := range choices {
		if ch.ID <= 0 {
			return nil, fmt.Errorf("choice id %d must be positive", ch.ID)
		}
		if _, dup := c.byID[ch.ID]; dup {
			return nil, fmt.Errorf("duplicate choice id %d", ch.ID)
		}
		c.byID[ch.ID] = ch
		c.order = append(c.order, ch.ID)
		if ch.IsTarget {
			targets++
			c.target = ch.ID
		}
	}

	switch {
	case targets == 0:
		return nil, ErrNoTarget
	case targets > 1:
		return nil, ErrMultipleTarget
	}

	sort.Ints(c.order)
	return c, nil
}

func (c *Catalog) Lookup(id int) (Choice, bool) {
	ch, ok := c.byID[id]
	return ch, ok
}

// Target returns the id every coercion path converges on.
func (c *Catalog) Target() int {
	return c.target
}

// Choices returns the catalog sorted by id.
func (c *Catalog) Choices() []Choice {
	out := make([]Choice, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}
