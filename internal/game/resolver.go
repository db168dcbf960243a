package game

import (
	"errors"

	"github.com/lox/pokergm/internal/deck"
	"github.com/lox/pokergm/internal/evaluator"
)

// DefaultWinDescription is recorded for a player who wins because everyone
// else folded.
const DefaultWinDescription = "Default (others folded)"

// HandDetail records what a player held at the end of a hand
type HandDetail struct {
	Description string
	Rank        *evaluator.HandRank // nil for a default win
	Best        []deck.Card
	HoleCards   []deck.Card
}

// RoundResult describes how the pot was awarded
type RoundResult struct {
	HandID    string
	Winners   []string
	Pot       int // pot before the award
	WinAmount int // chips credited to each winner
	Remainder int // chips lost to integer division on a split
	Showdown  bool
	Board     []deck.Card
	Details   map[string]HandDetail
}

// IsWinner reports whether name won (or shared) the pot
func (r RoundResult) IsWinner(name string) bool {
	for _, w := range r.Winners {
		if w == name {
			return true
		}
	}
	return false
}

// ResolveRound awards the pot once the round is over. A lone remaining player
// takes everything without a showdown. Otherwise the best hands split the pot
// equally and any odd chips are dropped.
func (e *Engine) ResolveRound() (RoundResult, error) {
	if !e.RoundOver {
		return RoundResult{}, ErrRoundNotOver
	}
	if e.resolved {
		return RoundResult{}, ErrAlreadyResolved
	}

	result := RoundResult{
		HandID:  e.HandID,
		Pot:     e.Pot,
		Board:   append([]deck.Card(nil), e.Community...),
		Details: make(map[string]HandDetail),
	}

	var eligible []*Player
	for _, p := range e.Players {
		if !p.Folded {
			eligible = append(eligible, p)
		}
	}

	switch len(eligible) {
	case 0:
		return RoundResult{}, errors.New("no eligible players at end of round")

	case 1:
		winner := eligible[0]
		result.Winners = []string{winner.Name}
		result.WinAmount = e.Pot
		result.Details[winner.Name] = HandDetail{
			Description: DefaultWinDescription,
			HoleCards:   winner.HoleCards,
		}

	default:
		result.Showdown = true
		var best evaluator.HandRank
		for i, p := range eligible {
			rank, cards := evaluator.Evaluate(p.HoleCards, e.Community)
			result.Details[p.Name] = HandDetail{
				Description: rank.String(),
				Rank:        &rank,
				Best:        cards,
				HoleCards:   p.HoleCards,
			}

			switch cmp := rank.Compare(best); {
			case i == 0 || cmp > 0:
				best = rank
				result.Winners = []string{p.Name}
			case cmp == 0:
				result.Winners = append(result.Winners, p.Name)
			}
		}
		result.WinAmount = e.Pot / len(result.Winners)
		result.Remainder = e.Pot % len(result.Winners)
	}

	for _, name := range result.Winners {
		p, _ := e.Player(name)
		p.Chips += result.WinAmount
	}

	e.logger.Info("pot awarded", "hand", e.HandID, "winners", result.Winners,
		"pot", result.Pot, "each", result.WinAmount, "dropped", result.Remainder)

	e.Pot = 0
	e.resolved = true
	return result, nil
}
