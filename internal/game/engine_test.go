package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokergm/internal/deck"
	"github.com/lox/pokergm/internal/randutil"
)

func TestHeadsUpBlindsAndTurnOrder(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, []int{1000, 1000})
	info := start(t, e)

	// Heads-up: the dealer posts the small blind and acts first.
	assert.Equal(t, "Alice", info.Dealer)
	assert.Equal(t, "Alice", info.SBPlayer)
	assert.Equal(t, 10, info.SBAmount)
	assert.Equal(t, "Bob", info.BBPlayer)
	assert.Equal(t, 20, info.BBAmount)
	assert.Equal(t, []string{"Alice", "Bob"}, info.TurnOrder)
	assert.Equal(t, 0, info.StartIndex)
	assert.Equal(t, 30, e.Pot)

	act(t, e, "Alice", Call, 0)
	assert.False(t, e.IsBettingOver(), "big blind keeps the option")
	assert.Equal(t, "Bob", e.CurrentPlayer())

	act(t, e, "Bob", Check, 0)
	require.True(t, e.IsBettingOver())
	assert.Equal(t, 40, e.Pot)

	stage, err := e.AdvanceToNextStage()
	require.NoError(t, err)
	assert.Equal(t, Flop, stage)
	assert.Len(t, e.Community, 3)
	assert.Equal(t, 0, e.CurrentBet)
	assert.Equal(t, "Bob", e.CurrentPlayer(), "post-flop the big blind acts first heads-up")
}

func TestThreeHandedBlindPositions(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, []int{1000, 1000, 1000})
	info := start(t, e)

	assert.Equal(t, "Alice", info.Dealer)
	assert.Equal(t, "Bob", info.SBPlayer)
	assert.Equal(t, "Charlie", info.BBPlayer)
	assert.Equal(t, []string{"Alice", "Bob", "Charlie"}, info.TurnOrder)
	assert.Equal(t, "Alice", e.CurrentPlayer())
	assert.Equal(t, e.BBSeat, e.LastRaiser, "big blind is the initial aggressor")

	for _, p := range e.Players {
		assert.Len(t, p.HoleCards, 2)
	}
}

func TestHoleCardsDealtOneAtATime(t *testing.T) {
	t.Parallel()
	// Dealing starts left of the button: Bob, Charlie, Alice, then again.
	e := newTestEngine(t, []int{1000, 1000, 1000}, stacked("2c 3c 4c 5c 6c 7c 8c 9c Tc Jc Qc Kc Ac 2d 3d 4d 5d"))
	start(t, e)

	bob, _ := e.Player("Bob")
	charlie, _ := e.Player("Charlie")
	alice, _ := e.Player("Alice")
	assert.Equal(t, deck.MustParseCards("2c5c"), bob.HoleCards)
	assert.Equal(t, deck.MustParseCards("3c6c"), charlie.HoleCards)
	assert.Equal(t, deck.MustParseCards("4c7c"), alice.HoleCards)
}

func TestDealerRotatesAndSkipsBustedPlayers(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, []int{1000, 0, 1000, 1000})

	info := start(t, e)
	assert.Equal(t, "Alice", info.Dealer)
	assert.Equal(t, "Charlie", info.SBPlayer, "busted Bob is skipped")
	assert.Equal(t, "Dave", info.BBPlayer)

	bob, _ := e.Player("Bob")
	assert.True(t, bob.Folded)
	assert.Empty(t, bob.HoleCards)
	assert.NotContains(t, info.TurnOrder, "Bob")

	// Fold around to end the hand quickly.
	act(t, e, "Alice", Fold, 0)
	act(t, e, "Charlie", Fold, 0)
	_, err := e.ResolveRound()
	require.NoError(t, err)

	info = start(t, e)
	assert.Equal(t, "Charlie", info.Dealer)
	assert.Equal(t, "Dave", info.SBPlayer)
	assert.Equal(t, "Alice", info.BBPlayer)
}

func TestRandomInitialDealer(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for seed := range int64(40) {
		e := NewEngine([]PlayerConfig{
			{Name: "Alice", Chips: 1000}, {Name: "Bob", Chips: 1000}, {Name: "Charlie", Chips: 1000},
		}, WithRNG(randutil.New(seed)))
		info := start(t, e)
		seen[info.Dealer] = true
	}
	assert.Len(t, seen, 3, "every seat should get the first button for some seed")
}

func TestDefaultBlindsFromStack(t *testing.T) {
	t.Parallel()
	tests := []struct {
		chips, small, big int
	}{
		{1000, 10, 20},
		{5000, 50, 100},
		{150, 1, 3},
		{40, 1, 2},
		{0, 1, 2},
	}
	for _, tt := range tests {
		small, big := DefaultBlinds(tt.chips)
		assert.Equal(t, tt.small, small, "small blind for %d", tt.chips)
		assert.Equal(t, tt.big, big, "big blind for %d", tt.chips)
		assert.GreaterOrEqual(t, big, 2*small)
	}

	e := NewEngine([]PlayerConfig{{Name: "A", Chips: 2000}, {Name: "B", Chips: 2000}}, WithRNG(randutil.New(1)))
	assert.Equal(t, 20, e.SmallBlind)
	assert.Equal(t, 40, e.BigBlind)
}

func TestShortBlindGoesAllIn(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, []int{1000, 1000, 15})
	info := start(t, e)

	charlie, _ := e.Player("Charlie")
	assert.Equal(t, 15, info.BBAmount)
	assert.True(t, charlie.AllIn)
	assert.Equal(t, 20, e.CurrentBet, "current bet stays at the big blind")
	assert.NotEqual(t, "Charlie", e.CurrentPlayer())
}

func TestEveryoneAllInFromBlinds(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, []int{10, 20})
	info := start(t, e)

	assert.Equal(t, -1, info.StartIndex, "nobody can act")
	assert.True(t, e.IsBettingOver())

	for e.Stage < River {
		_, err := e.AdvanceToNextStage()
		require.NoError(t, err)
		turn, err := e.StartNextBettingRound()
		require.NoError(t, err)
		assert.Equal(t, -1, turn.StartIndex)
		assert.Empty(t, turn.TurnOrder)
		assert.True(t, e.IsBettingOver())
	}
	assert.Len(t, e.Community, 5)

	stage, err := e.AdvanceToNextStage()
	require.NoError(t, err)
	assert.Equal(t, Showdown, stage)
	assert.True(t, e.RoundOver)

	res, err := e.ResolveRound()
	require.NoError(t, err)
	assert.True(t, res.Showdown)
	assert.Equal(t, 30, chipsInPlay(e)+res.Remainder)
}

func TestGameOverWhenOnePlayerHasChips(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, []int{1000, 0})
	_, err := e.StartNewRound()
	require.ErrorIs(t, err, ErrGameOver)
	assert.True(t, e.GameOver)
	assert.Equal(t, ReasonChips, e.GameOverReason)

	e = newTestEngine(t, []int{0, 0})
	_, err = e.StartNewRound()
	require.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, ReasonNoChips, e.GameOverReason)

	_, err = e.StartNewRound()
	assert.ErrorIs(t, err, ErrGameOver, "game over is sticky")
}

func TestDeckExhaustionEndsGame(t *testing.T) {
	t.Parallel()

	t.Run("during hole cards", func(t *testing.T) {
		e := newTestEngine(t, []int{1000, 1000}, stacked("AsKsQs"))
		_, err := e.StartNewRound()
		require.ErrorIs(t, err, ErrDeckExhausted)
		assert.True(t, e.GameOver)
		assert.Equal(t, ReasonDeckError, e.GameOverReason)
	})

	t.Run("during flop", func(t *testing.T) {
		e := newTestEngine(t, []int{1000, 1000}, stacked("AsKsQsJs 2c 3c4c"))
		start(t, e)
		act(t, e, "Alice", Call, 0)
		act(t, e, "Bob", Check, 0)

		_, err := e.AdvanceToNextStage()
		require.ErrorIs(t, err, ErrDeckExhausted)
		assert.True(t, e.GameOver)
		assert.Equal(t, ReasonDeckError, e.GameOverReason)
		assert.Empty(t, e.Community, "no partial flop")
	})
}

func TestAdvanceAfterRoundOver(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, []int{1000, 1000})
	start(t, e)
	act(t, e, "Alice", Fold, 0)

	require.True(t, e.RoundOver)
	_, err := e.AdvanceToNextStage()
	assert.ErrorIs(t, err, ErrRoundOver)
	_, err = e.StartNextBettingRound()
	assert.ErrorIs(t, err, ErrRoundOver)
}

func TestStateSummaryVisibility(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, []int{1000, 1000, 1000})
	start(t, e)

	public := e.StateSummary()
	for _, p := range public.Players {
		assert.Empty(t, p.HoleCards, "%s cards should be hidden", p.Name)
	}
	assert.Equal(t, "Alice", public.CurrentTurn)
	assert.Equal(t, "Alice", public.Dealer)
	assert.Equal(t, 30, public.Pot)
	assert.Equal(t, 40, public.MinRaiseTo)
	assert.Equal(t, PreFlop, public.Stage)

	own := e.SummaryFor("Bob")
	bob, ok := own.Self()
	require.True(t, ok)
	assert.Len(t, bob.HoleCards, 2)
	alice, _ := own.Player("Alice")
	assert.Empty(t, alice.HoleCards)
	assert.Equal(t, 10, own.ToCall("Bob"))

	act(t, e, "Alice", Fold, 0)
	act(t, e, "Bob", Call, 0)
	act(t, e, "Charlie", Check, 0)
	checkDown(t, e)

	final := e.StateSummary()
	for _, p := range final.Players {
		if p.Folded {
			assert.Empty(t, p.HoleCards)
		} else {
			assert.Len(t, p.HoleCards, 2, "%s cards revealed at showdown", p.Name)
		}
	}
}

func TestRoundsKeepChipsConserved(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, []int{500, 500, 500, 500})
	dropped := 0
	for range 20 {
		if _, err := e.StartNewRound(); err != nil {
			break
		}
		for !e.RoundOver {
			for !e.IsBettingOver() {
				name := e.CurrentPlayer()
				p, _ := e.Player(name)
				if e.ToCall(p) > 0 {
					act(t, e, name, Call, 0)
				} else {
					act(t, e, name, Check, 0)
				}
			}
			_, err := e.AdvanceToNextStage()
			require.NoError(t, err)
		}
		res, err := e.ResolveRound()
		require.NoError(t, err)
		dropped += res.Remainder
		require.Equal(t, 2000, chipsInPlay(e)+dropped)
	}
}
