package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// ErrDeckEmpty is returned when more cards are requested than remain.
var ErrDeckEmpty = errors.New("deck exhausted")

// Deck represents a deck of playing cards. Cards are dealt from the top and
// never repeat until the next Reset.
type Deck struct {
	cards   []Card
	stacked []Card // fixed order restored by Reset instead of shuffling
	rng     *rand.Rand
}

// NewDeck creates a new standard 52-card deck, shuffled with rng
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	d.Reset()
	return d
}

// NewStackedDeck creates a deck that deals exactly the given cards in order.
// Reset restores the same order, which makes hands reproducible in tests.
func NewStackedDeck(cards []Card) *Deck {
	d := &Deck{stacked: append([]Card(nil), cards...)}
	d.Reset()
	return d
}

// Shuffle randomizes the order of the remaining cards (Fisher-Yates)
func (d *Deck) Shuffle() {
	if d.rng == nil {
		return
	}
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Reset restores the deck to a full 52-card deck and shuffles it
func (d *Deck) Reset() {
	d.cards = d.cards[:0]

	if d.stacked != nil {
		d.cards = append(d.cards, d.stacked...)
		return
	}

	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	d.Shuffle()
}

// Deal removes and returns the top card from the deck
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// DealN deals n cards from the deck. Nothing is dealt if fewer than n remain.
func (d *Deck) DealN(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, fmt.Errorf("deal %d cards: %w (%d remaining)", n, ErrDeckEmpty, len(d.cards))
	}

	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]
	return cards, nil
}

// Burn discards the top card. It returns false if the deck was empty.
func (d *Deck) Burn() bool {
	_, ok := d.Deal()
	return ok
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

