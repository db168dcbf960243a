package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/pokergm/internal/deck"
	"github.com/lox/pokergm/internal/randutil"
)

var testNames = []string{"Alice", "Bob", "Charlie", "Dave", "Eve", "Frank", "Grace", "Heidi"}

// newTestEngine seats len(chips) players named Alice, Bob, ... with blinds
// 10/20 and the button on Alice for the first hand.
func newTestEngine(t *testing.T, chips []int, opts ...Option) *Engine {
	t.Helper()
	players := make([]PlayerConfig, len(chips))
	for i, c := range chips {
		players[i] = PlayerConfig{Name: testNames[i], Chips: c}
	}
	base := []Option{WithBlinds(10, 20), WithDealer(0), WithRNG(randutil.New(42))}
	return NewEngine(players, append(base, opts...)...)
}

func stacked(cards string) Option {
	return WithDeck(deck.NewStackedDeck(deck.MustParseCards(cards)))
}

func act(t *testing.T, e *Engine, name string, a Action, total int) ActionResult {
	t.Helper()
	r, err := e.ProcessAction(name, a, total)
	require.NoError(t, err, "%s %s %d", name, a, total)
	return r
}

// checkDown checks every remaining street through to showdown.
func checkDown(t *testing.T, e *Engine) {
	t.Helper()
	for !e.RoundOver {
		for !e.IsBettingOver() {
			act(t, e, e.CurrentPlayer(), Check, 0)
		}
		_, err := e.AdvanceToNextStage()
		require.NoError(t, err)
	}
}

// chipsInPlay is every chip at the table including the pot.
func chipsInPlay(e *Engine) int {
	total := e.Pot
	for _, p := range e.Players {
		total += p.Chips
	}
	return total
}

// requirePotMatchesInvestment checks the pot holds exactly what players
// have put in this hand.
func requirePotMatchesInvestment(t *testing.T, e *Engine, msgAndArgs ...any) {
	t.Helper()
	invested := 0
	for _, p := range e.Players {
		invested += p.TotalInvestment
	}
	require.Equal(t, e.Pot, invested, msgAndArgs...)
}

func start(t *testing.T, e *Engine) RoundInfo {
	t.Helper()
	info, err := e.StartNewRound()
	require.NoError(t, err)
	return info
}
