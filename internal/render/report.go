package render

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/lox/pokergm/internal/deck"
	"github.com/lox/pokergm/internal/evaluator"
	"github.com/lox/pokergm/internal/statistics"
)

// categoryOrder lists hand categories strongest first
var categoryOrder = []evaluator.Category{
	evaluator.RoyalFlush, evaluator.StraightFlush, evaluator.FourOfAKind, evaluator.FullHouse,
	evaluator.Flush, evaluator.Straight, evaluator.ThreeOfAKind, evaluator.TwoPair,
	evaluator.OnePair, evaluator.HighCard,
}

// Simulation prints a summary of simulation results
func (p *Printer) Simulation(stats *statistics.Statistics, duration time.Duration) {
	p.printf("%s\n", p.styles.Header.Render("SIMULATION RESULTS"))
	p.printf("Tables: %d  Hands: %d", stats.Tables, stats.Hands)
	if duration > 0 && stats.Hands > 0 {
		p.printf("  (%v, %.1f hands/sec)", duration.Round(time.Millisecond), float64(stats.Hands)/duration.Seconds())
	}
	p.printf("\n")

	if stats.Hands > 0 {
		pct := func(n int) float64 { return float64(n) / float64(stats.Hands) * 100 }
		p.printf("Showdowns: %d (%.1f%%)  Default wins: %d (%.1f%%)  Split pots: %d\n",
			stats.Showdowns, pct(stats.Showdowns), stats.DefaultWins, pct(stats.DefaultWins), stats.SplitPots)
	}
	p.printf("Max pot: %d  Dropped odd chips: %d\n", stats.MaxPotChips, stats.Remainder)

	p.printf("\n%s\n", p.styles.Street.Render("=== STRATEGIES ==="))
	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "strategy\thands\twin%%\tchips\tbb/hand\t95%% CI\tmedian\n")
	for _, name := range stats.StrategyNames() {
		st := stats.Strategies[name]
		low, high := st.ConfidenceInterval95()
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%+d\t%.3f\t[%.3f, %.3f]\t%.3f\n",
			name, st.Hands, st.WinRate()*100, st.ChipDelta, st.Mean(), low, high, st.Median())
	}
	w.Flush()

	if stats.Showdowns > 0 {
		p.printf("\n%s\n", p.styles.Street.Render("=== WINNING HANDS ==="))
		w = tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
		for _, cat := range categoryOrder {
			n := stats.WinsByCategory[cat.String()]
			if n == 0 {
				continue
			}
			fmt.Fprintf(w, "%s\t%d\t%.1f%%\n", cat, n, float64(n)/float64(stats.Showdowns)*100)
		}
		w.Flush()
	}

	if stats.IsChipCountBalanced() {
		p.printf("\n%s\n", p.styles.Success.Render("Chip conservation verified"))
	} else {
		p.printf("\n%s\n", p.styles.Error.Render(fmt.Sprintf("CHIP LEAK: start %d, end %d, dropped %d",
			stats.StartChips, stats.EndChips, stats.Remainder)))
	}
}

// Evaluation prints the best hand made from hole and board, and the
// equity estimate when one is given.
func (p *Printer) Evaluation(hole, board []deck.Card, hand evaluator.Hand, equity *evaluator.Equity, opponents int) {
	p.printf("%s %s\n", p.styles.HandInfo.Render("hole "), p.Cards(hole))
	if len(board) > 0 {
		p.printf("%s %s\n", p.styles.HandInfo.Render("board"), p.Cards(board))
	}
	if hand.Complete() {
		p.printf("%s %s  %s\n", p.styles.HandInfo.Render("best "), p.Cards(hand.Cards), p.styles.Success.Render(hand.Rank.String()))
	} else {
		p.printf("%s\n", p.styles.Info.Render("(not enough cards for a five-card hand)"))
	}

	if equity != nil {
		w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "\nopponents\twin\ttie\tequity\n")
		fmt.Fprintf(w, "%d\t%.1f%%\t%.1f%%\t%.1f%%\n", opponents,
			percent(equity.Wins, equity.Samples), percent(equity.Ties, equity.Samples), equity.Share()*100)
		w.Flush()
		p.printf("%s\n", p.styles.Info.Render(fmt.Sprintf("%d samples", equity.Samples)))
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
