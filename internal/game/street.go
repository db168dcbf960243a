package game

import "fmt"

// cards dealt to the board when entering each street
var boardCards = map[Street]int{Flop: 3, Turn: 1, River: 1}

// AdvanceToNextStage moves the hand to the next street. It burns one card
// and deals the flop, turn or river, then resets betting for the new street.
// Leaving the river moves to Showdown, deals nothing and ends the round.
// It should only be called once IsBettingOver reports true.
func (e *Engine) AdvanceToNextStage() (Street, error) {
	if e.RoundOver || e.GameOver {
		return e.Stage, ErrRoundOver
	}
	if e.Stage >= Showdown {
		return e.Stage, fmt.Errorf("cannot advance past %s", e.Stage)
	}

	e.Stage++
	logger := e.logger.With("hand", e.HandID)

	if e.Stage == Showdown {
		e.RoundOver = true
		e.TurnIndex = -1
		logger.Debug("moving to showdown")
		return Showdown, nil
	}

	clear(e.actionCounts)
	if !e.Deck.Burn() {
		return e.Stage, e.deckError(e.Stage.String())
	}
	cards, err := e.Deck.DealN(boardCards[e.Stage])
	if err != nil {
		return e.Stage, e.deckError(e.Stage.String())
	}
	e.Community = append(e.Community, cards...)
	logger.Debug("dealt board", "street", e.Stage, "board", e.Community)

	if _, err := e.StartNextBettingRound(); err != nil {
		return e.Stage, err
	}
	return e.Stage, nil
}

// StartNextBettingRound resets bets and action counts for a post-flop street
// and builds the acting order, starting left of the dealer among players who
// have not folded. If every remaining player is all-in the order is empty and
// the start index is -1. Calling it again before anyone acts is harmless.
func (e *Engine) StartNextBettingRound() (TurnInfo, error) {
	if e.RoundOver || e.GameOver {
		return TurnInfo{Stage: e.Stage, StartIndex: -1}, ErrRoundOver
	}
	if e.Stage == PreFlop {
		return TurnInfo{Stage: e.Stage, TurnOrder: e.names(e.TurnOrder), StartIndex: e.TurnIndex}, nil
	}

	e.CurrentBet = 0
	e.PreviousBet = 0
	e.LastRaiser = -1
	clear(e.actionCounts)

	for _, p := range e.Players {
		if !p.Folded && !p.AllIn {
			p.RoundBet = 0
		}
	}

	e.TurnOrder = e.seatsFrom((e.Dealer+1)%len(e.Players), func(p *Player) bool { return !p.Folded })
	if len(e.TurnOrder) == 0 {
		e.RoundOver = true
		e.TurnIndex = -1
		return TurnInfo{Stage: e.Stage, StartIndex: -1}, nil
	}

	e.TurnIndex = e.firstActor()
	if e.TurnIndex == -1 {
		e.logger.Debug("all remaining players are all-in, no betting", "hand", e.HandID, "street", e.Stage)
		e.TurnOrder = nil
		return TurnInfo{Stage: e.Stage, StartIndex: -1}, nil
	}

	return TurnInfo{Stage: e.Stage, TurnOrder: e.names(e.TurnOrder), StartIndex: e.TurnIndex}, nil
}
