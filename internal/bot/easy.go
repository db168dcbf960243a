package bot

import (
	"math/rand/v2"

	"github.com/lox/pokergm/internal/deck"
	"github.com/lox/pokergm/internal/game"
)

// Easy is the loose-passive beginner opponent. With nothing to call it checks
// 70% of the time and otherwise bets one big blind. Facing a bet it calls 60%,
// min-raises 10% and folds the rest.
type Easy struct {
	rng *rand.Rand
}

// NewEasy creates an Easy strategy
func NewEasy(rng *rand.Rand) *Easy {
	return &Easy{rng: rng}
}

func (e *Easy) Decide(view game.Summary, _ []deck.Card) game.Decision {
	me, ok := view.Self()
	if !ok {
		return game.Decision{Action: game.Fold, Reasoning: "not seated"}
	}
	opts := legal(view)
	owed := view.ToCall(me.Name)

	if owed == 0 {
		if e.rng.Float64() < 0.7 {
			return game.Decision{Action: game.Check, Reasoning: "easy check"}
		}
		bet := me.RoundBet + view.BigBlind
		if me.Chips >= view.BigBlind && bet >= view.MinRaiseTo {
			// a stack of exactly one big blind goes in whole
			if bet == me.RoundBet+me.Chips && opts.has(game.AllIn) {
				return game.Decision{Action: game.AllIn, Amount: bet, Reasoning: "easy small bet all-in"}
			}
			if opts.has(game.Raise) {
				return game.Decision{Action: game.Raise, Amount: bet, Reasoning: "easy small bet"}
			}
		}
		return game.Decision{Action: game.Check, Reasoning: "easy check, cannot bet"}
	}

	call := func(reason string) game.Decision {
		if owed >= me.Chips {
			return game.Decision{Action: game.AllIn, Reasoning: reason + " all-in"}
		}
		return game.Decision{Action: game.Call, Reasoning: reason}
	}

	switch r := e.rng.Float64(); {
	case r < 0.6:
		return call("easy call")
	case r < 0.7:
		if me.Chips >= view.MinRaiseTo-me.RoundBet && opts.has(game.Raise) {
			return game.Decision{Action: game.Raise, Amount: view.MinRaiseTo, Reasoning: "easy min-raise"}
		}
		return call("easy call, cannot raise")
	default:
		return game.Decision{Action: game.Fold, Reasoning: "easy fold"}
	}
}
