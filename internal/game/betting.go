package game

import "fmt"

// MinRaiseTo returns the smallest legal total bet for a raise this street.
func (e *Engine) MinRaiseTo() int {
	return e.CurrentBet + max(e.BigBlind, e.CurrentBet-e.PreviousBet)
}

// ToCall returns the chips the player still owes to match the current bet.
func (e *Engine) ToCall(p *Player) int {
	return max(0, e.CurrentBet-p.RoundBet)
}

// ValidActions returns the legal actions for the named player, or nil when it
// is not their turn.
func (e *Engine) ValidActions(name string) []ValidAction {
	if e.RoundOver || e.GameOver || e.CurrentPlayer() != name {
		return nil
	}
	p, _ := e.Player(name)
	if !p.CanAct() {
		return nil
	}
	return legalActions(e.ToCall(p), p.RoundBet, p.Chips, e.MinRaiseTo())
}

// legalActions lists what a player with the given street bet and stack may
// do when owing owed chips. Raise and AllIn amounts are total street bets.
func legalActions(owed, roundBet, chips, minRaiseTo int) []ValidAction {
	stack := roundBet + chips
	actions := []ValidAction{{Action: Fold}}

	if owed == 0 {
		actions = append(actions, ValidAction{Action: Check})
	} else {
		call := roundBet + min(owed, chips)
		actions = append(actions, ValidAction{Action: Call, MinAmount: call, MaxAmount: call})
	}
	if chips > owed && minRaiseTo < stack {
		actions = append(actions, ValidAction{Action: Raise, MinAmount: minRaiseTo, MaxAmount: stack})
	}
	if chips > 0 {
		actions = append(actions, ValidAction{Action: AllIn, MinAmount: stack, MaxAmount: stack})
	}
	return actions
}

// ProcessAction applies an action for the named player. For Raise, total is
// the player's desired total bet for this street, not the increment; it is
// ignored for other actions. A rejected action returns an *ActionError and
// leaves the engine unchanged.
func (e *Engine) ProcessAction(name string, action Action, total int) (ActionResult, error) {
	reject := func(err error, detail string) (ActionResult, error) {
		return ActionResult{}, &ActionError{Player: name, Action: action, Amount: total, Err: err, Detail: detail}
	}

	if e.RoundOver || e.GameOver {
		return reject(ErrRoundOver, "")
	}
	p, ok := e.Player(name)
	if !ok {
		return reject(ErrUnknownPlayer, "")
	}
	if expected := e.CurrentPlayer(); expected != name {
		return reject(ErrNotYourTurn, fmt.Sprintf("waiting on %q", expected))
	}
	if !p.CanAct() {
		// Only reachable if the turn index drifted onto an ineligible seat.
		e.logger.Warn("turn index on ineligible player, advancing", "hand", e.HandID, "player", name)
		e.advanceTurn()
		return reject(ErrPlayerInactive, "")
	}

	owed := e.ToCall(p)
	result := ActionResult{Player: name, Requested: action, Action: action}

	switch action {
	case Fold:
		p.Folded = true

	case Check:
		if owed > 0 {
			return reject(ErrCannotCheck, fmt.Sprintf("%d to call", owed))
		}

	case Call:
		if owed == 0 {
			e.logger.Debug("call with nothing owed treated as check", "hand", e.HandID, "player", name)
			result.Action = Check
			break
		}
		result.Posted = e.postBet(p, owed)
		if p.AllIn {
			result.Action = AllIn
		}

	case Raise:
		needed := total - p.RoundBet
		if needed <= 0 {
			return reject(ErrRaiseNotHigher, fmt.Sprintf("already bet %d", p.RoundBet))
		}
		if needed > p.Chips {
			return reject(ErrInsufficientChips, fmt.Sprintf("need %d, have %d", needed, p.Chips))
		}
		allIn := needed == p.Chips
		if minTo := e.MinRaiseTo(); total < minTo && !allIn {
			return reject(ErrRaiseTooSmall, fmt.Sprintf("minimum raise is to %d", minTo))
		}
		result.Posted = e.postBet(p, needed)
		if allIn {
			result.Action = AllIn
		}
		if p.RoundBet > e.CurrentBet {
			e.reopen(p)
			result.Reopened = true
		}

	case AllIn:
		if p.Chips <= 0 {
			return reject(ErrNoChips, "")
		}
		result.Posted = e.postBet(p, p.Chips)
		if p.RoundBet > e.CurrentBet {
			e.reopen(p)
			result.Reopened = true
		}

	default:
		return reject(ErrUnknownAction, "")
	}

	if !result.Reopened {
		e.actionCounts[p.Seat]++
	}
	result.RoundBet = p.RoundBet

	e.logger.Debug("action", "hand", e.HandID, "street", e.Stage, "player", name,
		"action", result.Action, "posted", result.Posted, "pot", e.Pot)

	if action == Fold {
		e.checkRoundEnd()
	}
	if !e.RoundOver {
		e.advanceTurn()
	}
	return result, nil
}

// reopen records p as the new aggressor: every other player must act again.
func (e *Engine) reopen(p *Player) {
	e.PreviousBet = e.CurrentBet
	e.CurrentBet = p.RoundBet
	e.LastRaiser = p.Seat
	clear(e.actionCounts)
	e.actionCounts[p.Seat] = 1
}

// checkRoundEnd ends the hand early once at most one player has not folded.
func (e *Engine) checkRoundEnd() {
	if e.contesting() <= 1 {
		e.RoundOver = true
		e.TurnIndex = -1
		e.logger.Debug("round over, one player left", "hand", e.HandID)
	}
}

// advanceTurn moves to the next player in TurnOrder who can act, or -1.
func (e *Engine) advanceTurn() int {
	n := len(e.TurnOrder)
	from := e.TurnIndex
	if from < 0 || from >= n {
		from = -1
	}
	for i := 1; i <= n; i++ {
		next := (from + i + n) % n
		if e.Players[e.TurnOrder[next]].CanAct() {
			e.TurnIndex = next
			return next
		}
	}
	e.TurnIndex = -1
	return -1
}

func (e *Engine) contesting() int {
	count := 0
	for _, p := range e.Players {
		if !p.Folded {
			count++
		}
	}
	return count
}

// IsBettingOver reports whether the current street's betting is complete.
// Pre-flop, an unraised big blind who has not acted keeps the option to raise.
func (e *Engine) IsBettingOver() bool {
	if e.RoundOver {
		return true
	}
	if e.contesting() < 2 {
		return true
	}

	var actors []*Player
	for _, p := range e.Players {
		if p.CanAct() {
			actors = append(actors, p)
		}
	}

	switch len(actors) {
	case 0:
		return true
	case 1:
		// Nobody is left to bet against, so only a pending big blind option
		// keeps the street open.
		return !e.bigBlindOption(actors[0])
	}

	for _, p := range actors {
		if e.actionCounts[p.Seat] < 1 || p.RoundBet != e.CurrentBet {
			return false
		}
	}
	return true
}

// bigBlindOption reports whether p is the pre-flop big blind who has not yet
// acted on an unraised pot.
func (e *Engine) bigBlindOption(p *Player) bool {
	return e.Stage == PreFlop &&
		e.CurrentBet <= e.BigBlind &&
		p.Seat == e.BBSeat &&
		e.LastRaiser == e.BBSeat &&
		e.actionCounts[p.Seat] < 1
}
