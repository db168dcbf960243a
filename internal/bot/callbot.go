package bot

import (
	"github.com/lox/pokergm/internal/deck"
	"github.com/lox/pokergm/internal/game"
)

// CallingStation checks when it can and calls everything else
type CallingStation struct{}

// NewCallingStation creates a CallingStation strategy
func NewCallingStation() *CallingStation {
	return &CallingStation{}
}

func (c *CallingStation) Decide(view game.Summary, _ []deck.Card) game.Decision {
	return legal(view).pick("calling station", game.Check, game.Call, game.AllIn)
}
