// Package statistics aggregates simulated hands: table-level counters and
// per-strategy results in big blinds per hand.
package statistics

import (
	"fmt"
	"math"
	"sort"
)

// HandResult is the outcome of one hand at one table
type HandResult struct {
	BigBlind  int
	Pot       int
	Showdown  bool   // false when everyone else folded
	Winners   int    // more than one for a split pot
	Remainder int    // chips dropped by an uneven split
	Category  string // winning hand category at showdown
	Seats     []SeatResult
}

// SeatResult is one dealt-in player's share of a hand
type SeatResult struct {
	Strategy string
	Net      int // chips won or lost this hand
	Won      bool
}

// StrategyStats tracks every seat played by one strategy
type StrategyStats struct {
	Hands        int
	Wins         int
	ShowdownWins int
	ChipDelta    int
	SumBB        float64
	SumBB2       float64   // Sum of squares for variance calculation
	Values       []float64 // Store all values for median/percentile calculation
}

// Statistics tracks a whole simulation
type Statistics struct {
	Tables      int
	Hands       int
	Showdowns   int
	DefaultWins int
	SplitPots   int
	Remainder   int // chips dropped by uneven splits
	MaxPotChips int

	WinsByCategory map[string]int
	Strategies     map[string]*StrategyStats

	// Chip totals across tables, before the first and after the last hand
	StartChips int
	EndChips   int
}

// New creates empty statistics
func New() *Statistics {
	return &Statistics{
		WinsByCategory: make(map[string]int),
		Strategies:     make(map[string]*StrategyStats),
	}
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(result HandResult) {
	s.Hands++
	if result.Showdown {
		s.Showdowns++
		s.WinsByCategory[result.Category]++
	} else {
		s.DefaultWins++
	}
	if result.Winners > 1 {
		s.SplitPots++
	}
	s.Remainder += result.Remainder
	s.MaxPotChips = max(s.MaxPotChips, result.Pot)

	for _, seat := range result.Seats {
		st := s.strategy(seat.Strategy)
		netBB := float64(seat.Net)
		if result.BigBlind > 0 {
			netBB /= float64(result.BigBlind)
		}
		st.Hands++
		st.ChipDelta += seat.Net
		st.SumBB += netBB
		st.SumBB2 += netBB * netBB
		st.Values = append(st.Values, netBB)
		if seat.Won {
			st.Wins++
			if result.Showdown {
				st.ShowdownWins++
			}
		}
	}
}

// AddTable records the chips a table started and finished with
func (s *Statistics) AddTable(startChips, endChips int) {
	s.Tables++
	s.StartChips += startChips
	s.EndChips += endChips
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	s.Tables += other.Tables
	s.Hands += other.Hands
	s.Showdowns += other.Showdowns
	s.DefaultWins += other.DefaultWins
	s.SplitPots += other.SplitPots
	s.Remainder += other.Remainder
	s.MaxPotChips = max(s.MaxPotChips, other.MaxPotChips)
	s.StartChips += other.StartChips
	s.EndChips += other.EndChips

	for cat, n := range other.WinsByCategory {
		s.WinsByCategory[cat] += n
	}
	for name, o := range other.Strategies {
		st := s.strategy(name)
		st.Hands += o.Hands
		st.Wins += o.Wins
		st.ShowdownWins += o.ShowdownWins
		st.ChipDelta += o.ChipDelta
		st.SumBB += o.SumBB
		st.SumBB2 += o.SumBB2
		st.Values = append(st.Values, o.Values...)
	}
}

func (s *Statistics) strategy(name string) *StrategyStats {
	st, ok := s.Strategies[name]
	if !ok {
		st = &StrategyStats{}
		s.Strategies[name] = st
	}
	return st
}

// StrategyNames returns the strategies seen, sorted
func (s *Statistics) StrategyNames() []string {
	names := make([]string, 0, len(s.Strategies))
	for name := range s.Strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsChipCountBalanced reports whether every chip is accounted for: what the
// tables finished with plus the dropped remainders equals what they started
// with.
func (s *Statistics) IsChipCountBalanced() bool {
	return s.StartChips == s.EndChips+s.Remainder
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if s.Showdowns+s.DefaultWins != s.Hands {
		return fmt.Errorf("showdowns (%d) plus default wins (%d) does not match hands (%d)",
			s.Showdowns, s.DefaultWins, s.Hands)
	}

	categoryWins := 0
	for _, n := range s.WinsByCategory {
		categoryWins += n
	}
	if categoryWins != s.Showdowns {
		return fmt.Errorf("category wins (%d) does not match showdowns (%d)", categoryWins, s.Showdowns)
	}

	if !s.IsChipCountBalanced() {
		return fmt.Errorf("chip mismatch: start=%d, end=%d, dropped=%d", s.StartChips, s.EndChips, s.Remainder)
	}

	delta := 0
	for name, st := range s.Strategies {
		if len(st.Values) != st.Hands {
			return fmt.Errorf("strategy %s: values array length (%d) does not match hands count (%d)",
				name, len(st.Values), st.Hands)
		}
		if st.Wins > st.Hands {
			return fmt.Errorf("strategy %s: wins (%d) exceeds hands (%d)", name, st.Wins, st.Hands)
		}
		delta += st.ChipDelta
	}
	if delta != -s.Remainder {
		return fmt.Errorf("strategy chip deltas sum to %d, expected %d", delta, -s.Remainder)
	}
	return nil
}

// Mean returns the arithmetic mean in big blinds per hand
func (st *StrategyStats) Mean() float64 {
	if st.Hands == 0 {
		return 0
	}
	return st.SumBB / float64(st.Hands)
}

// Variance returns the sample variance of all results
func (st *StrategyStats) Variance() float64 {
	if st.Hands < 2 {
		return 0
	}
	mean := st.Mean()
	return (st.SumBB2 - float64(st.Hands)*mean*mean) / float64(st.Hands-1)
}

// StdDev returns the sample standard deviation of all results
func (st *StrategyStats) StdDev() float64 {
	return math.Sqrt(st.Variance())
}

// StdError returns the standard error of the mean
func (st *StrategyStats) StdError() float64 {
	if st.Hands == 0 {
		return 0
	}
	return st.StdDev() / math.Sqrt(float64(st.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (st *StrategyStats) ConfidenceInterval95() (float64, float64) {
	mean := st.Mean()
	margin := 1.96 * st.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the fraction of seats that won or shared the pot
func (st *StrategyStats) WinRate() float64 {
	if st.Hands == 0 {
		return 0
	}
	return float64(st.Wins) / float64(st.Hands)
}

// Median returns the median value of all results
func (st *StrategyStats) Median() float64 {
	return st.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (st *StrategyStats) Percentile(p float64) float64 {
	if len(st.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(st.Values))
	copy(sorted, st.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Report is the serialisable summary of a simulation
type Report struct {
	Tables         int                       `json:"tables"`
	Hands          int                       `json:"hands"`
	Showdowns      int                       `json:"showdowns"`
	DefaultWins    int                       `json:"default_wins"`
	SplitPots      int                       `json:"split_pots"`
	DroppedChips   int                       `json:"dropped_chips"`
	MaxPotChips    int                       `json:"max_pot_chips"`
	WinsByCategory map[string]int            `json:"wins_by_category"`
	Strategies     map[string]StrategyReport `json:"strategies"`
}

// StrategyReport summarises one strategy in big blinds per hand
type StrategyReport struct {
	Hands     int     `json:"hands"`
	Wins      int     `json:"wins"`
	ChipDelta int     `json:"chip_delta"`
	MeanBB    float64 `json:"mean_bb"`
	StdDevBB  float64 `json:"stddev_bb"`
	CI95Low   float64 `json:"ci95_low"`
	CI95High  float64 `json:"ci95_high"`
	MedianBB  float64 `json:"median_bb"`
}

// Report summarises the statistics without per-hand values
func (s *Statistics) Report() Report {
	r := Report{
		Tables:         s.Tables,
		Hands:          s.Hands,
		Showdowns:      s.Showdowns,
		DefaultWins:    s.DefaultWins,
		SplitPots:      s.SplitPots,
		DroppedChips:   s.Remainder,
		MaxPotChips:    s.MaxPotChips,
		WinsByCategory: s.WinsByCategory,
		Strategies:     make(map[string]StrategyReport, len(s.Strategies)),
	}
	for name, st := range s.Strategies {
		low, high := st.ConfidenceInterval95()
		r.Strategies[name] = StrategyReport{
			Hands:     st.Hands,
			Wins:      st.Wins,
			ChipDelta: st.ChipDelta,
			MeanBB:    st.Mean(),
			StdDevBB:  st.StdDev(),
			CI95Low:   low,
			CI95High:  high,
			MedianBB:  st.Median(),
		}
	}
	return r
}
