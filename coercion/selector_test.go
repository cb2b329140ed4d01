// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coercion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelector_Bands(t *testing.T) {
	tests := []struct {
		draw float64
		want TacticKind
	}{
		{0, Paywall},
		{0.2499, Paywall},
		{0.25, Nagging},
		{0.4999, Nagging},
		{0.5, Rickroll},
		{0.9999, Rickroll},
	}

	for _, tt := range tests {
		rng := &scriptedRand{t: t, floats: []float64{tt.draw}}
		s, err := NewSelector(DefaultPolicy(), rng)
		require.NoError(t, err)
		assert.Equal(t, tt.want, s.Select(Choice{ID: 12}), "draw %v", tt.draw)
	}
}

func TestSelector_TargetBypassesDraw(t *testing.T) {
	// An empty script fails the test if Select draws.
	s, err := NewSelector(DefaultPolicy(), &scriptedRand{t: t})
	require.NoError(t, err)
	assert.Equal(t, Standard, s.Select(Choice{ID: 7, IsTarget: true}))
}

func TestSelector_CustomPolicy(t *testing.T) {
	rng := &scriptedRand{t: t, floats: []float64{0.05, 0.15, 0.5}}
	s, err := NewSelector(Policy{Paywall: 0.1, Nagging: 0.9}, rng)
	require.NoError(t, err)

	assert.Equal(t, Paywall, s.Select(Choice{ID: 1}))
	assert.Equal(t, Nagging, s.Select(Choice{ID: 1}))
	assert.Equal(t, Nagging, s.Select(Choice{ID: 1}), "no rickroll band left")
}

func TestPolicy_Validate(t *testing.T) {
	assert.NoError(t, DefaultPolicy().Validate())
	assert.NoError(t, Policy{Paywall: 1}.Validate())
	assert.Error(t, Policy{Paywall: -0.1, Nagging: 0.5}.Validate())
	assert.Error(t, Policy{Paywall: 0.6, Nagging: 0.6}.Validate())

	_, err := NewSelector(DefaultPolicy(), nil)
	assert.Error(t, err)
}

func TestNagRange_Draw(t *testing.T) {
	r := DefaultNagRange()
	for offset, want := range []int{2, 3, 4, 5} {
		rng := &scriptedRand{t: t, ints: []int{offset}}
		assert.Equal(t, want, r.draw(rng))
	}

	assert.Error(t, NagRange{Min: 0, Max: 3}.Validate())
	assert.Error(t, NagRange{Min: 4, Max: 3}.Validate())
}

func TestNewCatalog(t *testing.T) {
	c := testCatalog(t)
	assert.Equal(t, 7, c.Target())
	assert.Len(t, c.Choices(), 5)
	assert.Equal(t, 1, c.Choices()[0].ID)

	_, err := NewCatalog([]Choice{{ID: 1}, {ID: 2}})
	assert.ErrorIs(t, err, ErrNoTarget)

	_, err = NewCatalog([]Choice{{ID: 1, IsTarget: true}, {ID: 2, IsTarget: true}})
	assert.ErrorIs(t, err, ErrMultipleTarget)

	_, err = NewCatalog([]Choice{{ID: 1, IsTarget: true}, {ID: 1}})
	assert.Error(t, err)

	_, err = NewCatalog([]Choice{{ID: 0, IsTarget: true}})
	assert.Error(t, err)
}
