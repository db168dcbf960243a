package game

import (
	"errors"
	"fmt"
)

var (
	ErrNotYourTurn       = errors.New("not your turn")
	ErrUnknownPlayer     = errors.New("unknown player")
	ErrPlayerInactive    = errors.New("player has folded or is all-in")
	ErrCannotCheck       = errors.New("cannot check facing a bet")
	ErrRaiseNotHigher    = errors.New("raise must increase the total bet")
	ErrRaiseTooSmall     = errors.New("raise below minimum")
	ErrInsufficientChips = errors.New("insufficient chips")
	ErrNoChips           = errors.New("no chips to go all-in with")
	ErrUnknownAction     = errors.New("unknown action")
	ErrRoundOver         = errors.New("round is over")
	ErrRoundNotOver      = errors.New("round is not over")
	ErrAlreadyResolved   = errors.New("round already resolved")
	ErrGameOver          = errors.New("game over")
	ErrDeckExhausted     = errors.New("deck exhausted")
)

// Game over reasons reported by the engine and the match layer
const (
	ReasonChips     = "chips"
	ReasonNoChips   = "no_chips"
	ReasonDeckError = "deck_error"
	ReasonBusted    = "busted"
	ReasonHearts    = "hearts"
	ReasonBotBust   = "bot_bust"
)

// ActionError is returned when an action is rejected. The engine state is
// left untouched so the same player can try again.
type ActionError struct {
	Player string
	Action Action
	Amount int
	Err    error
	Detail string
}

func (e *ActionError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Player, e.Action, e.Err)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *ActionError) Unwrap() error { return e.Err }
