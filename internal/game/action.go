package game

import (
	"fmt"
	"strings"
)

// Street represents the stage of a hand
type Street int

const (
	PreFlop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	if s < PreFlop || s > Showdown {
		return "unknown"
	}
	return [...]string{"pre-flop", "flop", "turn", "river", "showdown"}[s]
}

// Action represents a player action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
	AllIn
)

func (a Action) String() string {
	if a < Fold || a > AllIn {
		return "unknown"
	}
	return [...]string{"fold", "check", "call", "raise", "all-in"}[a]
}

// ParseAction converts user or config input into an Action
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "f", "fold":
		return Fold, nil
	case "k", "x", "check":
		return Check, nil
	case "c", "call":
		return Call, nil
	case "r", "raise", "bet":
		return Raise, nil
	case "a", "allin", "all-in", "all in", "shove":
		return AllIn, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// Decision represents a player's decision with reasoning
type Decision struct {
	Action    Action
	Amount    int    // For raises, the total round bet
	Reasoning string // Human-readable explanation
}

// ValidAction represents an action that a player can legally take
type ValidAction struct {
	Action    Action
	MinAmount int // For raises: minimum total bet
	MaxAmount int // For raises: maximum (all-in)
}

// ActionResult describes how an accepted action was applied
type ActionResult struct {
	Player    string
	Requested Action
	Action    Action // effective action, e.g. a call that exhausts the stack is AllIn
	Posted    int    // chips moved into the pot by this action
	RoundBet  int    // player's total bet this street afterwards
	Reopened  bool   // the action raised the current bet
}

func (r ActionResult) String() string {
	switch r.Action {
	case Fold:
		return fmt.Sprintf("%s folds", r.Player)
	case Check:
		return fmt.Sprintf("%s checks", r.Player)
	case Call:
		return fmt.Sprintf("%s calls %d", r.Player, r.Posted)
	case Raise:
		return fmt.Sprintf("%s raises to %d", r.Player, r.RoundBet)
	case AllIn:
		return fmt.Sprintf("%s is all-in for %d", r.Player, r.RoundBet)
	}
	return r.Player
}
