package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/pokergm/internal/deck"
	"github.com/lox/pokergm/internal/handid"
)

// Engine holds the table and the state of the hand in progress.
type Engine struct {
	Players   []*Player // indexed by seat
	Deck      *deck.Deck
	Community []deck.Card
	Pot       int

	CurrentBet  int
	PreviousBet int // bet level before the last raise, for minimum raise sizing
	LastRaiser  int // seat, -1 if nobody has raised this street
	Stage       Street

	SmallBlind int
	BigBlind   int
	Dealer     int // seat holding the button, -1 before the first hand
	SBSeat     int
	BBSeat     int

	TurnOrder []int // seats in acting order for this street
	TurnIndex int   // index into TurnOrder, -1 if nobody can act

	RoundOver      bool
	GameOver       bool
	GameOverReason string

	HandID     string
	HandNumber int

	actionCounts  []int // per seat, accepted actions since the last reset
	resolved      bool
	initialDealer int
	rng           *rand.Rand
	logger        *log.Logger
	handIDs       func() string
}

// RoundInfo describes how a hand was set up
type RoundInfo struct {
	HandID     string
	HandNumber int
	TurnOrder  []string
	StartIndex int
	Dealer     string
	SBPlayer   string
	SBAmount   int
	BBPlayer   string
	BBAmount   int
}

// TurnInfo describes the acting order for a street
type TurnInfo struct {
	Stage      Street
	TurnOrder  []string
	StartIndex int
}

// NewEngine seats the players in the given order. An RNG is required unless
// a deck is supplied; blinds default to DefaultBlinds of the first stack.
//
// Example usage:
//
//	e := NewEngine(players, WithRNG(randutil.New(42)))
//	e := NewEngine(players, WithDeck(deck.NewStackedDeck(cards)), WithDealer(0), WithBlinds(10, 20))
func NewEngine(players []PlayerConfig, opts ...Option) *Engine {
	if len(players) < 2 {
		panic("at least 2 players required")
	}

	cfg := &engineConfig{dealer: -1}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.rng == nil && cfg.deck == nil {
		panic("rng is required for engine creation")
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewPCG(0, 0))
	}
	if cfg.deck == nil {
		cfg.deck = deck.NewDeck(cfg.rng)
	}
	if cfg.smallBlind <= 0 || cfg.bigBlind <= 0 {
		cfg.smallBlind, cfg.bigBlind = DefaultBlinds(players[0].Chips)
	}
	if cfg.dealer >= len(players) {
		panic("dealer position out of range")
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.handIDs == nil {
		cfg.handIDs = handid.New
	}

	e := &Engine{
		Players:       make([]*Player, len(players)),
		Deck:          cfg.deck,
		SmallBlind:    cfg.smallBlind,
		BigBlind:      cfg.bigBlind,
		Dealer:        -1,
		SBSeat:        -1,
		BBSeat:        -1,
		LastRaiser:    -1,
		TurnIndex:     -1,
		actionCounts:  make([]int, len(players)),
		initialDealer: cfg.dealer,
		rng:           cfg.rng,
		logger:        cfg.logger.WithPrefix("engine"),
		handIDs:       cfg.handIDs,
	}
	for i, p := range players {
		e.Players[i] = &Player{
			Seat:       i,
			Name:       p.Name,
			IsBot:      p.IsBot,
			Chips:      p.Chips,
			StartChips: p.Chips,
			Folded:     p.Chips <= 0,
		}
	}
	return e
}

// Player returns the player with the given name
func (e *Engine) Player(name string) (*Player, bool) {
	for _, p := range e.Players {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// CurrentPlayer returns the name of the player to act, or "" if nobody can.
func (e *Engine) CurrentPlayer() string {
	if e.TurnIndex < 0 || e.TurnIndex >= len(e.TurnOrder) {
		return ""
	}
	return e.Players[e.TurnOrder[e.TurnIndex]].Name
}

// StartNewRound resets the hand, moves the button, posts blinds and deals
// hole cards. It returns ErrGameOver once fewer than two players have chips.
func (e *Engine) StartNewRound() (RoundInfo, error) {
	if e.GameOver {
		return RoundInfo{}, fmt.Errorf("%w: %s", ErrGameOver, e.GameOverReason)
	}

	var active []int
	for _, p := range e.Players {
		if p.Chips > 0 {
			active = append(active, p.Seat)
		}
	}
	if len(active) <= 1 {
		e.GameOver = true
		if len(active) == 1 {
			e.GameOverReason = ReasonChips
			return RoundInfo{}, fmt.Errorf("%w: %s wins, all other players are out of chips",
				ErrGameOver, e.Players[active[0]].Name)
		}
		e.GameOverReason = ReasonNoChips
		return RoundInfo{}, fmt.Errorf("%w: no players have chips", ErrGameOver)
	}

	e.HandNumber++
	e.HandID = e.handIDs()
	e.Deck.Reset()
	e.Community = nil
	e.Pot = 0
	e.CurrentBet = 0
	e.PreviousBet = 0
	e.LastRaiser = -1
	e.Stage = PreFlop
	e.RoundOver = false
	e.resolved = false
	clear(e.actionCounts)

	for _, p := range e.Players {
		p.HoleCards = nil
		p.RoundBet = 0
		p.TotalInvestment = 0
		p.AllIn = false
		p.Folded = p.Chips <= 0
		p.StartChips = p.Chips
	}

	e.moveButton(active)

	sb := e.nextSeatWithChips(e.Dealer)
	if len(active) == 2 {
		sb = e.Dealer
	}
	bb := e.nextSeatWithChips(sb)
	e.SBSeat, e.BBSeat = sb, bb

	sbAmount := e.postBet(e.Players[sb], e.SmallBlind)
	bbAmount := e.postBet(e.Players[bb], e.BigBlind)
	e.CurrentBet = e.BigBlind
	e.PreviousBet = 0

	logger := e.logger.With("hand", e.HandID)
	logger.Debug("blinds posted",
		"dealer", e.Players[e.Dealer].Name,
		"sb", e.Players[sb].Name, "sb_amount", sbAmount,
		"bb", e.Players[bb].Name, "bb_amount", bbAmount)

	// Two passes of one card each, starting left of the button.
	dealOrder := e.seatsFrom(e.nextSeatWithChips(e.Dealer), func(p *Player) bool { return !p.Folded })
	for range 2 {
		for _, seat := range dealOrder {
			card, ok := e.Deck.Deal()
			if !ok {
				return RoundInfo{}, e.deckError("hole cards")
			}
			e.Players[seat].HoleCards = append(e.Players[seat].HoleCards, card)
		}
	}

	// Left of the big blind acts first; heads-up that is the dealer.
	e.TurnOrder = e.seatsFrom(e.nextSeatWithChips(bb), func(p *Player) bool { return !p.Folded })
	e.LastRaiser = bb
	e.TurnIndex = e.firstActor()

	info := RoundInfo{
		HandID:     e.HandID,
		HandNumber: e.HandNumber,
		TurnOrder:  e.names(e.TurnOrder),
		StartIndex: e.TurnIndex,
		Dealer:     e.Players[e.Dealer].Name,
		SBPlayer:   e.Players[sb].Name,
		SBAmount:   sbAmount,
		BBPlayer:   e.Players[bb].Name,
		BBAmount:   bbAmount,
	}
	logger.Info("hand started", "number", e.HandNumber, "players", len(active), "first", e.CurrentPlayer())
	return info, nil
}

// moveButton rotates the dealer to the next seat with chips. The first hand
// uses the configured dealer or a random active seat.
func (e *Engine) moveButton(active []int) {
	if e.Dealer < 0 {
		seat := e.initialDealer
		if seat < 0 {
			seat = active[e.rng.IntN(len(active))]
		}
		if e.Players[seat].Chips <= 0 {
			seat = e.nextSeatWithChips(seat)
		}
		e.Dealer = seat
		return
	}
	e.Dealer = e.nextSeatWithChips(e.Dealer)
}

// postBet moves up to amount chips from the player into the pot and returns
// the amount actually posted. A player left with no chips is all-in.
func (e *Engine) postBet(p *Player, amount int) int {
	posted := min(amount, p.Chips)
	if posted < 0 {
		posted = 0
	}
	p.Chips -= posted
	p.RoundBet += posted
	p.TotalInvestment += posted
	e.Pot += posted
	if p.Chips == 0 {
		p.AllIn = true
	}
	return posted
}

// nextSeatWithChips returns the next seat after from, in table order, that
// was dealt into this hand (or has chips between hands).
func (e *Engine) nextSeatWithChips(from int) int {
	n := len(e.Players)
	for i := 1; i <= n; i++ {
		seat := (from + i) % n
		p := e.Players[seat]
		if p.StartChips > 0 || p.Chips > 0 {
			return seat
		}
	}
	return from
}

// seatsFrom lists seats in table order starting at start, keeping those that
// match keep.
func (e *Engine) seatsFrom(start int, keep func(*Player) bool) []int {
	n := len(e.Players)
	seats := make([]int, 0, n)
	for i := range n {
		seat := (start + i) % n
		if keep(e.Players[seat]) {
			seats = append(seats, seat)
		}
	}
	return seats
}

// firstActor returns the index in TurnOrder of the first player able to act
func (e *Engine) firstActor() int {
	for i, seat := range e.TurnOrder {
		if e.Players[seat].CanAct() {
			return i
		}
	}
	return -1
}

func (e *Engine) names(seats []int) []string {
	names := make([]string, len(seats))
	for i, seat := range seats {
		names[i] = e.Players[seat].Name
	}
	return names
}

func (e *Engine) deckError(during string) error {
	e.GameOver = true
	e.GameOverReason = ReasonDeckError
	e.RoundOver = true
	e.logger.Error("deck exhausted", "hand", e.HandID, "during", during)
	return fmt.Errorf("dealing %s: %w", during, ErrDeckExhausted)
}
