package bot

import (
	"math/rand/v2"

	"github.com/lox/pokergm/internal/deck"
	"github.com/lox/pokergm/internal/game"
)

// Maniac bets and shoves relentlessly regardless of its cards
type Maniac struct {
	rng *rand.Rand
}

// NewManiac creates a Maniac strategy
func NewManiac(rng *rand.Rand) *Maniac {
	return &Maniac{rng: rng}
}

func (m *Maniac) Decide(view game.Summary, _ []deck.Card) game.Decision {
	me, ok := view.Self()
	if !ok {
		return game.Decision{Action: game.Fold, Reasoning: "not seated"}
	}
	opts := legal(view)
	short := me.Chips <= 20*view.BigBlind

	if opts.has(game.Check) {
		if m.rng.Float64() >= 0.85 {
			return game.Decision{Action: game.Check, Reasoning: "maniac check"}
		}
		if short || m.rng.Float64() < 0.3 {
			return opts.pick("maniac shove", game.AllIn)
		}
		if va, ok := opts[game.Raise]; ok {
			return opts.raiseTo(va.MinAmount+(va.MaxAmount-va.MinAmount)*3/4, "maniac big raise")
		}
		return game.Decision{Action: game.Check, Reasoning: "maniac check, cannot raise"}
	}

	switch r := m.rng.Float64(); {
	case r < 0.4:
		return opts.pick("maniac shove over bet", game.AllIn)
	case r < 0.8:
		return opts.pick("maniac call", game.Call, game.AllIn)
	default:
		return game.Decision{Action: game.Fold, Reasoning: "maniac fold"}
	}
}
