package bot

import (
	"math/rand/v2"

	"github.com/lox/pokergm/internal/deck"
	"github.com/lox/pokergm/internal/game"
)

// Hard is the sticky opponent: it checks when it can, calls a bet it can
// cover 80% of the time and calls all-in when the bet is bigger than its stack.
type Hard struct {
	rng *rand.Rand
}

// NewHard creates a Hard strategy
func NewHard(rng *rand.Rand) *Hard {
	return &Hard{rng: rng}
}

func (h *Hard) Decide(view game.Summary, _ []deck.Card) game.Decision {
	me, ok := view.Self()
	if !ok {
		return game.Decision{Action: game.Fold, Reasoning: "not seated"}
	}

	owed := view.ToCall(me.Name)
	switch {
	case owed == 0:
		return game.Decision{Action: game.Check, Reasoning: "hard check"}
	case me.Chips >= owed:
		if h.rng.Float64() < 0.8 {
			return game.Decision{Action: game.Call, Reasoning: "hard call"}
		}
		return game.Decision{Action: game.Fold, Reasoning: "hard fold"}
	case me.Chips > 0:
		return game.Decision{Action: game.AllIn, Reasoning: "hard call all-in"}
	default:
		return game.Decision{Action: game.Fold, Reasoning: "hard fold, no chips"}
	}
}
