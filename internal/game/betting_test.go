package game

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokergm/internal/randutil"
)

func TestBigBlindOptionPreflop(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, []int{1000, 1000, 1000})
	start(t, e)

	act(t, e, "Alice", Call, 0)
	act(t, e, "Bob", Call, 0)
	assert.False(t, e.IsBettingOver(), "big blind has not used the option")
	assert.Equal(t, "Charlie", e.CurrentPlayer())

	r := act(t, e, "Charlie", Raise, 60)
	assert.True(t, r.Reopened)
	assert.Equal(t, 60, e.CurrentBet)
	assert.Equal(t, 20, e.PreviousBet)
	assert.Equal(t, e.BBSeat, e.LastRaiser)
	assert.False(t, e.IsBettingOver(), "raise forces everyone to act again")

	act(t, e, "Alice", Call, 0)
	assert.False(t, e.IsBettingOver())
	act(t, e, "Bob", Call, 0)
	assert.True(t, e.IsBettingOver())
	assert.Equal(t, 180, e.Pot)
}

func TestBigBlindCheckClosesAction(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, []int{1000, 1000, 1000})
	start(t, e)

	act(t, e, "Alice", Call, 0)
	act(t, e, "Bob", Call, 0)
	act(t, e, "Charlie", Check, 0)
	assert.True(t, e.IsBettingOver())
	assert.Equal(t, 60, e.Pot)
}

func TestLoneBigBlindKeepsOption(t *testing.T) {
	t.Parallel()
	// With the small blind unable to act, the big blind is the only actor
	// left and still gets to act on an unraised pot.
	e := newTestEngine(t, []int{1000, 1000})
	start(t, e)
	act(t, e, "Alice", Call, 0)

	alice, _ := e.Player("Alice")
	alice.AllIn = true // simulate a stack that cannot act further
	assert.False(t, e.IsBettingOver())

	act(t, e, "Bob", Check, 0)
	assert.True(t, e.IsBettingOver())
}

func TestLoneActorEndsStreetAfterAllIn(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, []int{1000, 300})
	start(t, e)

	// Bob has the big blind; Alice calls, Bob shoves.
	act(t, e, "Alice", Call, 0)
	r := act(t, e, "Bob", AllIn, 0)
	assert.True(t, r.Reopened)
	assert.Equal(t, 300, e.CurrentBet)

	// Alice is the only player able to act and has no option to exercise.
	alice, _ := e.Player("Alice")
	assert.Equal(t, 20, alice.RoundBet)
	assert.True(t, e.IsBettingOver())
	assert.Equal(t, 320, e.Pot)

	stage, err := e.AdvanceToNextStage()
	require.NoError(t, err)
	assert.Equal(t, Flop, stage)
	assert.Equal(t, 320, e.Pot)
}

func TestMinimumRaise(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, []int{1000, 1000, 1000})
	start(t, e)
	assert.Equal(t, 40, e.MinRaiseTo())

	_, err := e.ProcessAction("Alice", Raise, 39)
	require.ErrorIs(t, err, ErrRaiseTooSmall)

	act(t, e, "Alice", Raise, 40)
	assert.Equal(t, 60, e.MinRaiseTo(), "increment stays at the big blind")

	act(t, e, "Bob", Raise, 100)
	assert.Equal(t, 160, e.MinRaiseTo(), "increment follows the last raise size")

	_, err = e.ProcessAction("Charlie", Raise, 150)
	require.ErrorIs(t, err, ErrRaiseTooSmall)
	act(t, e, "Charlie", Raise, 160)
}

func TestUnderRaiseAllInAllowed(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, []int{50, 1000, 1000})
	start(t, e)

	r := act(t, e, "Alice", Raise, 50)
	assert.Equal(t, AllIn, r.Action)
	assert.True(t, r.Reopened)
	assert.Equal(t, 50, e.CurrentBet)

	// Bob raises, Charlie shoves for less than a full raise.
	act(t, e, "Bob", Raise, 200)
	charlie, _ := e.Player("Charlie")
	charlie.Chips = 230 - charlie.RoundBet // leave Charlie short of a full raise
	r = act(t, e, "Charlie", Raise, 230)
	assert.Equal(t, AllIn, r.Action)
	assert.True(t, r.Reopened, "any all-in above the current bet reopens")
	assert.Equal(t, 230, e.CurrentBet)
	assert.Equal(t, "Bob", e.CurrentPlayer())
}

func TestShortAllInBelowCurrentBetIsACall(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, []int{1000, 1000, 1000})
	start(t, e)
	act(t, e, "Alice", Raise, 200)

	bob, _ := e.Player("Bob")
	bob.Chips = 50
	r := act(t, e, "Bob", AllIn, 0)
	assert.Equal(t, AllIn, r.Action)
	assert.False(t, r.Reopened)
	assert.Equal(t, 200, e.CurrentBet, "short all-in never lowers the bet")
	assert.Equal(t, 60, bob.RoundBet)
}

func TestCallExhaustingStackIsAllIn(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, []int{1000, 1000, 1000})
	start(t, e)
	act(t, e, "Alice", Raise, 500)

	bob, _ := e.Player("Bob")
	bob.Chips = 100
	r := act(t, e, "Bob", Call, 0)
	assert.Equal(t, Call, r.Requested)
	assert.Equal(t, AllIn, r.Action)
	assert.Equal(t, 100, r.Posted)
	assert.True(t, bob.AllIn)
}

func TestCallWithNothingOwedIsCheck(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, []int{1000, 1000})
	start(t, e)
	act(t, e, "Alice", Call, 0)

	r := act(t, e, "Bob", Call, 0)
	assert.Equal(t, Check, r.Action)
	assert.Zero(t, r.Posted)
	assert.Equal(t, 40, e.Pot)
}

func TestRejectedActionsLeaveStateUnchanged(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, []int{1000, 1000, 1000})
	start(t, e)

	snapshot := func() Summary { return e.SummaryFor("Alice") }
	before := snapshot()
	counts := slices.Clone(e.actionCounts)

	tests := []struct {
		name   string
		player string
		action Action
		amount int
		want   error
	}{
		{"out of turn", "Bob", Call, 0, ErrNotYourTurn},
		{"unknown player", "Mallory", Fold, 0, ErrUnknownPlayer},
		{"check facing bet", "Alice", Check, 0, ErrCannotCheck},
		{"raise not higher", "Alice", Raise, 0, ErrRaiseNotHigher},
		{"raise below minimum", "Alice", Raise, 30, ErrRaiseTooSmall},
		{"raise beyond stack", "Alice", Raise, 1001, ErrInsufficientChips},
		{"unknown action", "Alice", Action(99), 0, ErrUnknownAction},
	}
	for _, tt := range tests {
		_, err := e.ProcessAction(tt.player, tt.action, tt.amount)
		require.ErrorIs(t, err, tt.want, tt.name)

		var actionErr *ActionError
		require.ErrorAs(t, err, &actionErr)
		assert.Equal(t, tt.player, actionErr.Player)

		assert.Equal(t, before, snapshot(), "%s must not change state", tt.name)
		assert.Equal(t, counts, e.actionCounts, "%s must not count as an action", tt.name)
	}

	// The same player can retry with a legal action.
	act(t, e, "Alice", Call, 0)
}

func TestActionsRejectedAfterRoundOver(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, []int{1000, 1000})
	start(t, e)
	act(t, e, "Alice", Fold, 0)

	_, err := e.ProcessAction("Bob", Check, 0)
	assert.ErrorIs(t, err, ErrRoundOver)
}

func TestAllInWithNoChipsRejected(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, []int{1000, 1000, 1000})
	start(t, e)

	alice, _ := e.Player("Alice")
	alice.Chips = 0 // inconsistent on purpose: still marked able to act
	_, err := e.ProcessAction("Alice", AllIn, 0)
	assert.ErrorIs(t, err, ErrNoChips)
}

func TestValidActions(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, []int{1000, 1000, 1000})
	start(t, e)

	assert.Nil(t, e.ValidActions("Bob"), "not Bob's turn")

	actions := e.ValidActions("Alice")
	kinds := make([]Action, len(actions))
	for i, a := range actions {
		kinds[i] = a.Action
	}
	assert.Equal(t, []Action{Fold, Call, Raise, AllIn}, kinds)
	assert.Equal(t, ValidAction{Action: Raise, MinAmount: 40, MaxAmount: 1000}, actions[2])
	assert.Equal(t, ValidAction{Action: AllIn, MinAmount: 1000, MaxAmount: 1000}, actions[3])

	act(t, e, "Alice", Call, 0)
	act(t, e, "Bob", Call, 0)
	actions = e.ValidActions("Charlie")
	assert.Equal(t, Check, actions[1].Action)
}

func TestValidActionsShortStackOnlyAllIn(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, []int{1000, 1000, 1000})
	start(t, e)
	act(t, e, "Alice", Raise, 500)

	bob, _ := e.Player("Bob")
	bob.Chips = 200
	kinds := []Action{}
	for _, a := range e.ValidActions("Bob") {
		kinds = append(kinds, a.Action)
	}
	assert.Equal(t, []Action{Fold, Call, AllIn}, kinds)
}

func TestFoldAroundEndsRound(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, []int{1000, 1000, 1000})
	start(t, e)

	act(t, e, "Alice", Fold, 0)
	assert.False(t, e.RoundOver)
	act(t, e, "Bob", Fold, 0)
	assert.True(t, e.RoundOver)
	assert.True(t, e.IsBettingOver())
	assert.Equal(t, "", e.CurrentPlayer())
}

func TestPostflopTurnOrderStartsLeftOfDealer(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, []int{1000, 1000, 1000, 1000})
	start(t, e)

	// Dealer Alice, SB Bob, BB Charlie, Dave first pre-flop.
	assert.Equal(t, "Dave", e.CurrentPlayer())
	act(t, e, "Dave", Call, 0)
	act(t, e, "Alice", Call, 0)
	act(t, e, "Bob", Fold, 0)
	act(t, e, "Charlie", Check, 0)
	require.True(t, e.IsBettingOver())

	_, err := e.AdvanceToNextStage()
	require.NoError(t, err)
	turn, err := e.StartNextBettingRound()
	require.NoError(t, err)
	assert.Equal(t, []string{"Charlie", "Dave", "Alice"}, turn.TurnOrder)
	assert.Equal(t, 0, turn.StartIndex)
	assert.Equal(t, "Charlie", e.CurrentPlayer())

	// Betting on the flop resets on a raise.
	act(t, e, "Charlie", Check, 0)
	act(t, e, "Dave", Raise, 20)
	act(t, e, "Alice", Call, 0)
	assert.False(t, e.IsBettingOver())
	act(t, e, "Charlie", Call, 0)
	assert.True(t, e.IsBettingOver())
}

func TestBettingAlwaysTerminates(t *testing.T) {
	t.Parallel()
	rng := randutil.New(2024)

	for hand := range 300 {
		chips := []int{300, 800, 1200, 150, 1000}[:2+hand%4]
		e := newTestEngine(t, chips, WithRNG(randutil.New(int64(hand))))
		total := chipsInPlay(e)
		start(t, e)
		requirePotMatchesInvestment(t, e, "hand %d: blinds", hand)

		actions := 0
		for !e.RoundOver {
			for !e.IsBettingOver() {
				name := e.CurrentPlayer()
				require.NotEmpty(t, name, "hand %d: betting not over but nobody to act", hand)

				valid := e.ValidActions(name)
				choice := valid[rng.IntN(len(valid))]
				amount := choice.MinAmount
				if choice.Action == Raise && choice.MaxAmount > choice.MinAmount {
					amount += rng.IntN(choice.MaxAmount - choice.MinAmount)
				}
				_, err := e.ProcessAction(name, choice.Action, amount)
				require.NoError(t, err, "hand %d", hand)

				actions++
				require.Less(t, actions, 500, "hand %d did not terminate", hand)
				require.Equal(t, total, chipsInPlay(e), "hand %d: chips not conserved", hand)
				requirePotMatchesInvestment(t, e, "hand %d after %s", hand, name)
			}
			_, err := e.AdvanceToNextStage()
			require.NoError(t, err)
			requirePotMatchesInvestment(t, e, "hand %d after advancing to %s", hand, e.Stage)
		}

		res, err := e.ResolveRound()
		require.NoError(t, err)
		require.Equal(t, total, chipsInPlay(e)+res.Remainder)
		require.Zero(t, e.Pot)
	}
}

func TestSummaryValidActionsMatchEngine(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, []int{1000, 1000, 1000})
	start(t, e)
	act(t, e, "Alice", Raise, 60)

	assert.Equal(t, e.ValidActions("Bob"), e.SummaryFor("Bob").ValidActions())
	assert.Nil(t, e.SummaryFor("Charlie").ValidActions())
	assert.Nil(t, e.StateSummary().ValidActions())
}
