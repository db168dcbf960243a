package game

import "github.com/lox/pokergm/internal/deck"

// Strategy decides actions for a computer-controlled player. It receives the
// summary as seen by that player and must not mutate anything.
type Strategy interface {
	Decide(view Summary, hole []deck.Card) Decision
}

// StrategyFunc adapts a function to the Strategy interface
type StrategyFunc func(view Summary, hole []deck.Card) Decision

func (f StrategyFunc) Decide(view Summary, hole []deck.Card) Decision {
	return f(view, hole)
}

// SanitizeDecision applies light corrections before a bot decision is
// processed: an illegal check becomes a fold, a call with nothing owed becomes
// a check, and a raise the player cannot cover becomes all-in.
func (e *Engine) SanitizeDecision(name string, d Decision) Decision {
	p, ok := e.Player(name)
	if !ok {
		return Decision{Action: Fold, Reasoning: "unknown player"}
	}
	owed := e.ToCall(p)

	switch {
	case d.Action == Check && owed > 0:
		d.Action = Fold
		d.Reasoning = appendReason(d.Reasoning, "cannot check, folding")
	case d.Action == Call && owed <= 0:
		d.Action = Check
		d.Reasoning = appendReason(d.Reasoning, "nothing to call, checking")
	case d.Action == Raise && d.Amount-p.RoundBet >= p.Chips:
		d.Action = AllIn
		d.Amount = p.RoundBet + p.Chips
		d.Reasoning = appendReason(d.Reasoning, "raise covers stack, all-in")
	}
	return d
}

// BotDecision asks a strategy for the named player's action and sanitizes it.
func (e *Engine) BotDecision(name string, s Strategy) Decision {
	p, ok := e.Player(name)
	if !ok || !p.CanAct() {
		return Decision{Action: Fold, Reasoning: "not eligible to act"}
	}
	d := s.Decide(e.SummaryFor(name), append([]deck.Card(nil), p.HoleCards...))
	sanitized := e.SanitizeDecision(name, d)
	if sanitized.Action != d.Action {
		e.logger.Debug("bot decision corrected", "hand", e.HandID, "player", name,
			"from", d.Action, "to", sanitized.Action)
	}
	return sanitized
}

func appendReason(reason, note string) string {
	if reason == "" {
		return note
	}
	return reason + "; " + note
}
