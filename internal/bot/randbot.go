package bot

import (
	"math/rand/v2"

	"github.com/lox/pokergm/internal/deck"
	"github.com/lox/pokergm/internal/game"
)

// Random picks a uniformly random legal action and, for raises, a random
// total within the legal range.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a Random strategy
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (r *Random) Decide(view game.Summary, _ []deck.Card) game.Decision {
	valid := view.ValidActions()
	if len(valid) == 0 {
		return game.Decision{Action: game.Fold, Reasoning: "random, no legal actions"}
	}

	choice := valid[r.rng.IntN(len(valid))]
	amount := choice.MinAmount
	if choice.Action == game.Raise && choice.MaxAmount > choice.MinAmount {
		amount += r.rng.IntN(choice.MaxAmount - choice.MinAmount + 1)
	}
	return game.Decision{Action: choice.Action, Amount: amount, Reasoning: "random action"}
}
