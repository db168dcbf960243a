package match

import (
	"fmt"

	"github.com/lox/pokergm/internal/game"
)

// CheckGameOver applies the between-hands rules and reports whether the
// match is over. A human with no chips trades a heart for HeartChipExchange
// chips, or is busted with none left; a human with chips but no hearts is
// out. Once a hand is over, the match also ends when one player or nobody
// has chips. The first terminal status sticks.
func (m *Match) CheckGameOver() Status {
	if m.status.Over {
		return m.status
	}

	exchanged := false
	if h := m.human; h != nil {
		p, _ := m.Engine.Player(h.Name)
		switch {
		case p.Chips <= 0 && h.Hearts > 0:
			before := h.Hearts
			h.Hearts--
			p.Chips += HeartChipExchange
			exchanged = true
			m.logger.Info("heart exchanged for chips", "player", h.Name, "hearts", h.Hearts, "chips", p.Chips)
			m.Events.Publish(HeartsEvent{Player: h.Name, Before: before, After: h.Hearts, Exchanged: true, timestamp: m.clock.Now()})
		case p.Chips <= 0:
			return m.finish(game.ReasonBusted, fmt.Sprintf("%s has no chips and no hearts left!", h.Name))
		case h.Hearts <= 0:
			return m.finish(game.ReasonHearts, fmt.Sprintf("%s, you have lost all your hearts!", h.Name))
		}
	}

	if m.Engine.RoundOver {
		var withChips []string
		for _, p := range m.Engine.Players {
			if p.Chips > 0 {
				withChips = append(withChips, p.Name)
			}
		}
		switch len(withChips) {
		case 0:
			return m.finish(game.ReasonNoChips, "Game over! No players have any chips left.")
		case 1:
			return m.finish(game.ReasonChips, fmt.Sprintf("%s wins! All other players are out of chips.", withChips[0]))
		}
	}

	return Status{Exchanged: exchanged}
}

// checkBotBust ends a match with a human seat as soon as any bot is broke.
func (m *Match) checkBotBust() Status {
	if m.human == nil {
		return Status{}
	}
	for _, s := range m.Seats {
		if !s.IsBot {
			continue
		}
		if p, _ := m.Engine.Player(s.Name); p.Chips <= 0 {
			return m.finish(game.ReasonBotBust, fmt.Sprintf("%s wins! %s is out of chips.", m.human.Name, s.Name))
		}
	}
	return Status{}
}

// applyHeartLoss costs the human a heart for losing a hand they survived
// with chips, unless their hearts already changed during the hand.
func (m *Match) applyHeartLoss(result game.RoundResult) {
	h := m.human
	if h == nil || result.IsWinner(h.Name) {
		return
	}
	p, _ := m.Engine.Player(h.Name)
	if h.StartHearts <= 0 || p.Chips <= 0 || h.Hearts != h.StartHearts {
		return
	}
	h.Hearts--
	m.logger.Info("heart lost", "player", h.Name, "hearts", h.Hearts, "hand", result.HandID)
	m.Events.Publish(HeartsEvent{Player: h.Name, Before: h.StartHearts, After: h.Hearts, timestamp: m.clock.Now()})
}

func (m *Match) finish(reason, message string) Status {
	if m.status.Over {
		return m.status
	}
	m.status = Status{Over: true, Reason: reason, Message: message}
	m.logger.Info("match over", "reason", reason, "message", message, "hands", m.hands)
	m.Events.Publish(GameOverEvent{Status: m.status, timestamp: m.clock.Now()})
	return m.status
}
