package evaluator

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/pokergm/internal/deck"
	"github.com/lox/pokergm/internal/randutil"
)

// Equity is the Monte Carlo showdown result for a hero hand
type Equity struct {
	Wins    int
	Ties    int
	Samples int
}

// Share returns the expected pot share, counting ties as half a win
func (e Equity) Share() float64 {
	if e.Samples == 0 {
		return 0
	}
	return (float64(e.Wins) + float64(e.Ties)/2) / float64(e.Samples)
}

// EstimateEquity runs samples random run-outs of the board against
// opponents random hands and reports how often hole wins at showdown.
// Work is split across workers, each with its own generator derived from seed.
func EstimateEquity(ctx context.Context, hole, board []deck.Card, opponents, samples int, seed int64) (Equity, error) {
	if len(hole) != 2 {
		return Equity{}, fmt.Errorf("equity needs exactly 2 hole cards, got %d", len(hole))
	}
	if len(board) > 5 {
		return Equity{}, fmt.Errorf("board has %d cards, at most 5 allowed", len(board))
	}
	if opponents < 1 {
		return Equity{}, fmt.Errorf("need at least one opponent, got %d", opponents)
	}

	used := make(map[deck.Card]bool, 7)
	for _, c := range append(append([]deck.Card{}, hole...), board...) {
		if used[c] {
			return Equity{}, fmt.Errorf("duplicate card %s", c)
		}
		used[c] = true
	}

	var available []deck.Card
	for suit := deck.Spades; suit <= deck.Clubs; suit++ {
		for rank := deck.Two; rank <= deck.Ace; rank++ {
			card := deck.NewCard(suit, rank)
			if !used[card] {
				available = append(available, card)
			}
		}
	}

	if 2*opponents+5-len(board) > len(available) {
		return Equity{}, fmt.Errorf("not enough cards for %d opponents", opponents)
	}

	workers := min(runtime.NumCPU(), 8)
	results := make([]Equity, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		n := samples / workers
		if w < samples%workers {
			n++
		}
		g.Go(func() error {
			rng := randutil.New(randutil.Derive(seed, w))
			res, err := runEquityWorker(ctx, hole, board, available, opponents, n, rng)
			results[w] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Equity{}, err
	}

	var total Equity
	for _, r := range results {
		total.Wins += r.Wins
		total.Ties += r.Ties
		total.Samples += r.Samples
	}
	return total, nil
}

func runEquityWorker(ctx context.Context, hole, board, available []deck.Card, opponents, samples int, rng *rand.Rand) (Equity, error) {
	var res Equity
	pool := make([]deck.Card, len(available))
	need := 2*opponents + 5 - len(board)
	seven := make([]deck.Card, 0, 7)

	for i := range samples {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		// Partial Fisher-Yates: only the first need cards are drawn.
		copy(pool, available)
		for j := range need {
			k := j + rng.IntN(len(pool)-j)
			pool[j], pool[k] = pool[k], pool[j]
		}

		runout := append(append([]deck.Card{}, board...), pool[2*opponents:need]...)
		hero := Evaluate7(append(append(seven[:0], hole...), runout...))

		best := 1
		for o := range opponents {
			opp, _ := Evaluate(pool[2*o:2*o+2], runout)
			switch cmp := opp.Compare(hero); {
			case cmp > 0:
				best = -1
			case cmp == 0 && best > 0:
				best = 0
			}
			if best < 0 {
				break
			}
		}

		switch best {
		case 1:
			res.Wins++
		case 0:
			res.Ties++
		}
		res.Samples++
	}
	return res, nil
}
