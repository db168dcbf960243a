package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headsUp(winnerNet int, showdown bool, category string) HandResult {
	return HandResult{
		BigBlind: 20,
		Pot:      winnerNet * 2,
		Showdown: showdown,
		Winners:  1,
		Category: category,
		Seats: []SeatResult{
			{Strategy: "easy", Net: winnerNet, Won: true},
			{Strategy: "hard", Net: -winnerNet},
		},
	}
}

func TestEmpty(t *testing.T) {
	t.Parallel()
	st := &StrategyStats{}
	assert.Zero(t, st.Mean())
	assert.Zero(t, st.Variance())
	assert.Zero(t, st.StdDev())
	assert.Zero(t, st.StdError())
	assert.Zero(t, st.Median())
	assert.Zero(t, st.Percentile(0.5))
	assert.Zero(t, st.WinRate())

	assert.ErrorContains(t, New().Validate(), "invalid hands count")
}

func TestAddCountsOutcomes(t *testing.T) {
	t.Parallel()
	s := New()
	s.Add(headsUp(20, false, ""))
	s.Add(headsUp(100, true, "Two Pair"))
	s.Add(headsUp(40, true, "Two Pair"))
	s.Add(HandResult{
		BigBlind:  20,
		Pot:       61,
		Showdown:  true,
		Winners:   2,
		Remainder: 1,
		Category:  "Straight",
		Seats: []SeatResult{
			{Strategy: "easy", Net: 10, Won: true},
			{Strategy: "hard", Net: 10, Won: true},
			{Strategy: "call", Net: -21},
		},
	})

	assert.Equal(t, 4, s.Hands)
	assert.Equal(t, 3, s.Showdowns)
	assert.Equal(t, 1, s.DefaultWins)
	assert.Equal(t, 1, s.SplitPots)
	assert.Equal(t, 1, s.Remainder)
	assert.Equal(t, 200, s.MaxPotChips)
	assert.Equal(t, map[string]int{"Two Pair": 2, "Straight": 1}, s.WinsByCategory)
	assert.Equal(t, []string{"call", "easy", "hard"}, s.StrategyNames())

	easy := s.Strategies["easy"]
	assert.Equal(t, 4, easy.Hands)
	assert.Equal(t, 4, easy.Wins)
	assert.Equal(t, 3, easy.ShowdownWins)
	assert.Equal(t, 170, easy.ChipDelta)
	assert.InDelta(t, 170.0/20/4, easy.Mean(), 1e-9)
	assert.InDelta(t, 1.0, easy.WinRate(), 1e-9)

	hard := s.Strategies["hard"]
	assert.Equal(t, 1, hard.Wins)
	assert.Equal(t, -150, hard.ChipDelta)

	s.AddTable(3000, 2999)
	require.NoError(t, s.Validate())
}

func TestPercentiles(t *testing.T) {
	t.Parallel()
	st := &StrategyStats{}
	for i := 1; i <= 5; i++ {
		v := float64(i)
		st.Hands++
		st.SumBB += v
		st.SumBB2 += v * v
		st.Values = append(st.Values, v)
	}

	tests := []struct {
		percentile float64
		expected   float64
	}{
		{0.0, 1.0},
		{0.25, 2.0},
		{0.5, 3.0},
		{0.75, 4.0},
		{1.0, 5.0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expected, st.Percentile(tt.percentile), 1e-9, "percentile %.2f", tt.percentile)
	}

	assert.InDelta(t, 3.0, st.Mean(), 1e-9)
	assert.InDelta(t, 2.5, st.Variance(), 1e-9)

	low, high := st.ConfidenceInterval95()
	assert.InDelta(t, st.Mean(), (low+high)/2, 1e-9)
	assert.Greater(t, high-low, 0.0)
}

func TestMedianEvenCount(t *testing.T) {
	t.Parallel()
	st := &StrategyStats{Hands: 4, Values: []float64{4, -2, 1, 0}}
	assert.InDelta(t, 0.5, st.Median(), 1e-9)
}

func TestMerge(t *testing.T) {
	t.Parallel()
	a := New()
	a.Add(headsUp(20, false, ""))
	a.AddTable(2000, 2000)

	b := New()
	b.Add(headsUp(60, true, "Flush"))
	b.Add(headsUp(30, true, "Flush"))
	b.AddTable(2000, 2000)

	a.Merge(b)
	require.NoError(t, a.Validate())
	assert.Equal(t, 2, a.Tables)
	assert.Equal(t, 3, a.Hands)
	assert.Equal(t, 2, a.WinsByCategory["Flush"])
	assert.Equal(t, 4000, a.StartChips)
	assert.Equal(t, 110, a.Strategies["easy"].ChipDelta)
	assert.Len(t, a.Strategies["hard"].Values, 3)
	assert.Equal(t, 120, a.MaxPotChips)
}

func TestValidateDetectsLeaks(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		modify func(*Statistics)
		want   string
	}{
		{"chips created", func(s *Statistics) { s.EndChips++ }, "chip mismatch"},
		{"lost showdown", func(s *Statistics) { s.Showdowns++ }, "does not match hands"},
		{"category without showdown", func(s *Statistics) { s.WinsByCategory["Flush"]++ }, "category wins"},
		{"strategy delta", func(s *Statistics) { s.Strategies["easy"].ChipDelta++ }, "chip deltas"},
		{"missing values", func(s *Statistics) { s.Strategies["hard"].Values = nil }, "values array length"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := New()
			s.Add(headsUp(20, false, ""))
			s.AddTable(2000, 2000)
			require.NoError(t, s.Validate())

			tt.modify(s)
			assert.ErrorContains(t, s.Validate(), tt.want)
		})
	}
}

func TestReport(t *testing.T) {
	t.Parallel()
	s := New()
	s.Add(headsUp(20, false, ""))
	s.Add(headsUp(60, true, "Flush"))
	s.AddTable(2000, 2000)

	r := s.Report()
	assert.Equal(t, 2, r.Hands)
	assert.Equal(t, 1, r.DefaultWins)
	assert.Equal(t, map[string]int{"Flush": 1}, r.WinsByCategory)
	require.Contains(t, r.Strategies, "easy")
	easy := r.Strategies["easy"]
	assert.Equal(t, 80, easy.ChipDelta)
	assert.InDelta(t, 2.0, easy.MeanBB, 1e-9)
	assert.InDelta(t, 2.0, easy.MedianBB, 1e-9)
	assert.Less(t, easy.CI95Low, easy.CI95High)
}
