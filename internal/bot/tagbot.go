package bot

import (
	"fmt"
	"math/rand/v2"

	"github.com/lox/pokergm/internal/deck"
	"github.com/lox/pokergm/internal/evaluator"
	"github.com/lox/pokergm/internal/game"
)

// HandStrength is a coarse bucket for how good a holding is
type HandStrength int

const (
	VeryWeak HandStrength = iota
	Weak
	Medium
	Strong
	VeryStrong
)

func (hs HandStrength) String() string {
	if hs < VeryWeak || hs > VeryStrong {
		return "Unknown"
	}
	return [...]string{"Very Weak", "Weak", "Medium", "Strong", "Very Strong"}[hs]
}

// Strength buckets hole cards before the flop by starting-hand percentile,
// and afterwards by the made hand's category.
func Strength(hole, board []deck.Card) HandStrength {
	if len(board) == 0 {
		switch p := deck.StartingHandPercentile(hole); {
		case p >= 0.85:
			return VeryStrong
		case p >= 0.65:
			return Strong
		case p >= 0.40:
			return Medium
		case p >= 0.20:
			return Weak
		default:
			return VeryWeak
		}
	}

	rank, _ := evaluator.Evaluate(hole, board)
	switch {
	case rank.Category >= evaluator.Straight:
		return VeryStrong
	case rank.Category >= evaluator.TwoPair:
		return Strong
	case rank.Category == evaluator.OnePair && rank.Kickers[0] >= deck.Ten:
		return Medium
	case rank.Category == evaluator.OnePair:
		return Weak
	default:
		return VeryWeak
	}
}

// Tight is a tight-aggressive opponent: it raises strong hands, continues
// with medium ones and otherwise only calls occasionally.
type Tight struct {
	rng *rand.Rand
}

// NewTight creates a Tight strategy
func NewTight(rng *rand.Rand) *Tight {
	return &Tight{rng: rng}
}

func (t *Tight) Decide(view game.Summary, hole []deck.Card) game.Decision {
	opts := legal(view)
	strength := Strength(hole, view.Community)
	reason := func(what string) string {
		return fmt.Sprintf("tight %s with %s hand", what, strength)
	}

	switch strength {
	case VeryStrong:
		if va, ok := opts[game.Raise]; ok {
			return opts.raiseTo(va.MinAmount+(va.MaxAmount-va.MinAmount)/4, reason("raise"))
		}
		return opts.pick(reason("shove"), game.AllIn, game.Call)
	case Strong:
		if opts.has(game.Check) {
			return opts.raiseTo(view.MinRaiseTo, reason("bet"))
		}
		return opts.pick(reason("call"), game.Call, game.AllIn)
	case Medium:
		return opts.pick(reason("call"), game.Check, game.Call)
	}

	if opts.has(game.Check) {
		return game.Decision{Action: game.Check, Reasoning: reason("check")}
	}
	if t.rng.Float64() < 0.3 {
		return opts.pick(reason("float"), game.Call)
	}
	return game.Decision{Action: game.Fold, Reasoning: reason("fold")}
}
