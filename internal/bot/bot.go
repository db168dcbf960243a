// Package bot provides computer opponents implementing game.Strategy.
package bot

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/lox/pokergm/internal/game"
)

// ErrUnknownStrategy is returned by New for an unregistered name
var ErrUnknownStrategy = errors.New("unknown bot strategy")

var registry = map[string]func(rng *rand.Rand) game.Strategy{
	"easy":   func(rng *rand.Rand) game.Strategy { return NewEasy(rng) },
	"hard":   func(rng *rand.Rand) game.Strategy { return NewHard(rng) },
	"call":   func(*rand.Rand) game.Strategy { return NewCallingStation() },
	"random": func(rng *rand.Rand) game.Strategy { return NewRandom(rng) },
	"maniac": func(rng *rand.Rand) game.Strategy { return NewManiac(rng) },
	"tight":  func(rng *rand.Rand) game.Strategy { return NewTight(rng) },
}

// New returns the named strategy driven by rng.
func New(name string, rng *rand.Rand) (game.Strategy, error) {
	if rng == nil {
		panic("bot: nil rng")
	}
	build, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownStrategy, name, Names())
	}
	return build(rng), nil
}

// Names lists the registered strategies in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// options indexes the legal actions for the acting player
type options map[game.Action]game.ValidAction

func legal(view game.Summary) options {
	opts := make(options)
	for _, va := range view.ValidActions() {
		opts[va.Action] = va
	}
	return opts
}

func (o options) has(a game.Action) bool {
	_, ok := o[a]
	return ok
}

// pick returns a decision for the first of the preferred actions that is
// legal, falling back to check and then fold.
func (o options) pick(reason string, preferred ...game.Action) game.Decision {
	for _, a := range append(preferred, game.Check, game.Fold) {
		if va, ok := o[a]; ok {
			d := game.Decision{Action: a, Reasoning: reason}
			if a == game.Raise || a == game.AllIn {
				d.Amount = va.MinAmount
			}
			return d
		}
	}
	return game.Decision{Action: game.Fold, Reasoning: "no legal actions"}
}

// raiseTo returns a raise to total, clamped to the legal range.
func (o options) raiseTo(total int, reason string) game.Decision {
	va, ok := o[game.Raise]
	if !ok {
		return o.pick(reason, game.AllIn, game.Call)
	}
	return game.Decision{Action: game.Raise, Amount: min(max(total, va.MinAmount), va.MaxAmount), Reasoning: reason}
}
