package game

import "github.com/lox/pokergm/internal/deck"

// PlayerConfig describes a seat when creating an Engine
type PlayerConfig struct {
	Name  string
	Chips int
	IsBot bool
}

// Player is the engine's view of a seated player
type Player struct {
	Seat            int
	Name            string
	IsBot           bool
	Chips           int
	StartChips      int // chips at the start of the current hand
	HoleCards       []deck.Card
	RoundBet        int // bet on the current street
	TotalInvestment int // total put in the pot this hand
	Folded          bool
	AllIn           bool
}

// CanAct returns true if the player can still take betting actions
func (p *Player) CanAct() bool {
	return !p.Folded && !p.AllIn
}

// Net returns the chip change since the start of the hand
func (p *Player) Net() int {
	return p.Chips - p.StartChips
}
