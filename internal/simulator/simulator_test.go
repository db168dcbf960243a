package simulator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConservesChips(t *testing.T) {
	t.Parallel()
	stats, err := Run(t.Context(), Config{
		Tables:        6,
		HandsPerTable: 40,
		Workers:       3,
		Seed:          12345,
		Strategies:    []string{"easy", "hard", "call", "tight"},
	})
	require.NoError(t, err)

	assert.Equal(t, 6, stats.Tables)
	assert.Equal(t, 6*4*1000, stats.StartChips)
	assert.Equal(t, stats.StartChips, stats.EndChips+stats.Remainder)
	assert.Positive(t, stats.Hands)
	assert.LessOrEqual(t, stats.Hands, 6*40)
	assert.Equal(t, stats.Hands, stats.Showdowns+stats.DefaultWins)
	assert.Equal(t, []string{"call", "easy", "hard", "tight"}, stats.StrategyNames())

	delta := 0
	for _, st := range stats.Strategies {
		delta += st.ChipDelta
	}
	assert.Equal(t, -stats.Remainder, delta)
}

func TestRunIsDeterministic(t *testing.T) {
	t.Parallel()
	cfg := Config{Tables: 4, HandsPerTable: 25, Seed: 7, Strategies: []string{"easy", "random", "maniac"}}

	cfg.Workers = 1
	a, err := Run(t.Context(), cfg)
	require.NoError(t, err)

	cfg.Workers = 4
	b, err := Run(t.Context(), cfg)
	require.NoError(t, err)

	assert.Equal(t, a.Hands, b.Hands)
	assert.Equal(t, a.WinsByCategory, b.WinsByCategory)
	for _, name := range a.StrategyNames() {
		assert.Equal(t, a.Strategies[name].ChipDelta, b.Strategies[name].ChipDelta, name)
		assert.Equal(t, a.Strategies[name].Values, b.Strategies[name].Values, name)
	}
}

func TestRunDefaults(t *testing.T) {
	t.Parallel()
	stats, err := Run(t.Context(), Config{Tables: 1, HandsPerTable: 5, Seed: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"easy", "hard"}, stats.StrategyNames())
	assert.Equal(t, 2000, stats.StartChips)
}

func TestRunStopsWhenCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := Run(ctx, Config{Tables: 2, HandsPerTable: 10, Seed: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"no tables", Config{HandsPerTable: 1, Strategies: DefaultStrategies}, "tables must be positive"},
		{"no hands", Config{Tables: 1, Strategies: DefaultStrategies}, "hands per table must be positive"},
		{"one seat", Config{Tables: 1, HandsPerTable: 1, Strategies: []string{"easy"}}, "need 2 to 8 strategies"},
		{"unknown", Config{Tables: 1, HandsPerTable: 1, Strategies: []string{"easy", "shark"}}, "shark"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorContains(t, tt.cfg.Validate(), tt.want)
		})
	}
}
