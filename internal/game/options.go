package game

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/pokergm/internal/deck"
)

// Option configures an Engine during creation.
type Option func(*engineConfig)

type engineConfig struct {
	rng        *rand.Rand
	deck       *deck.Deck
	smallBlind int
	bigBlind   int
	dealer     int // -1 picks a random seat for the first hand
	logger     *log.Logger
	handIDs    func() string
}

// WithRNG sets the random source used for shuffling and the first dealer.
func WithRNG(rng *rand.Rand) Option {
	return func(c *engineConfig) {
		c.rng = rng
	}
}

// WithDeck sets a specific deck, typically NewStackedDeck in tests.
// The RNG is still used to pick the first dealer.
func WithDeck(d *deck.Deck) Option {
	return func(c *engineConfig) {
		c.deck = d
	}
}

// WithBlinds overrides the blinds derived from the starting stacks.
func WithBlinds(small, big int) Option {
	return func(c *engineConfig) {
		c.smallBlind = small
		c.bigBlind = big
	}
}

// WithDealer fixes the dealer seat for the first hand.
func WithDealer(seat int) Option {
	return func(c *engineConfig) {
		c.dealer = seat
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithHandIDs sets the generator for hand identifiers.
func WithHandIDs(next func() string) Option {
	return func(c *engineConfig) {
		c.handIDs = next
	}
}

// DefaultBlinds derives blinds from a starting stack: the small blind is 1%
// and the big blind 2% of the stack, at least 1 chip and twice the small.
func DefaultBlinds(chips int) (small, big int) {
	small = max(1, chips/100)
	big = max(1, chips/50)
	big = max(big, 2*small)
	return small, big
}
