package evaluator

import (
	"fmt"
	"strings"

	"github.com/lox/pokergm/internal/deck"
)

// Category is the class of a five-card poker hand
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the display name of a category
func (c Category) String() string {
	if c < HighCard || c > RoyalFlush {
		return "Unknown"
	}
	return [...]string{
		"High Card", "Pair", "Two Pair", "Three of a Kind", "Straight",
		"Flush", "Full House", "Four of a Kind", "Straight Flush", "Royal Flush",
	}[c]
}

// HandRank is the comparable strength of a hand: its category followed by
// the tie-break ranks in significance order.
//
// Kicker layout per category:
//
//	RoyalFlush, StraightFlush, Straight: [high card] (the wheel is 5-high)
//	FourOfAKind:  [quad, kicker]
//	FullHouse:    [trips, pair]
//	Flush, HighCard: all five ranks descending
//	ThreeOfAKind: [trips, k1, k2]
//	TwoPair:      [high pair, low pair, kicker]
//	OnePair:      [pair, k1, k2, k3]
type HandRank struct {
	Category Category
	Kickers  []deck.Rank
}

// Compare compares two hand ranks and returns:
// -1 if h is weaker than other
//
//	0 if they are equal
//	1 if h is stronger than other
func (h HandRank) Compare(other HandRank) int {
	if h.Category != other.Category {
		if h.Category < other.Category {
			return -1
		}
		return 1
	}

	for i := 0; i < len(h.Kickers) && i < len(other.Kickers); i++ {
		if h.Kickers[i] < other.Kickers[i] {
			return -1
		}
		if h.Kickers[i] > other.Kickers[i] {
			return 1
		}
	}

	// A longer kicker list only happens for partial hands; more cards win.
	switch {
	case len(h.Kickers) < len(other.Kickers):
		return -1
	case len(h.Kickers) > len(other.Kickers):
		return 1
	}
	return 0
}

// Beats returns true if this hand is strictly stronger than other
func (h HandRank) Beats(other HandRank) bool {
	return h.Compare(other) > 0
}

// Equal returns true if both hands are of equal strength
func (h HandRank) Equal(other HandRank) bool {
	return h.Compare(other) == 0
}

// String describes the hand, e.g. "Full House, Kings over Nines"
func (h HandRank) String() string {
	k := h.Kickers
	if len(k) == 0 {
		return h.Category.String()
	}

	switch h.Category {
	case RoyalFlush:
		return "Royal Flush"
	case StraightFlush:
		return fmt.Sprintf("Straight Flush, %s-high", k[0].Name())
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %s", k[0].Plural())
	case FullHouse:
		if len(k) >= 2 {
			return fmt.Sprintf("Full House, %s over %s", k[0].Plural(), k[1].Plural())
		}
	case Flush:
		return fmt.Sprintf("Flush, %s-high", k[0].Name())
	case Straight:
		return fmt.Sprintf("Straight, %s-high", k[0].Name())
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %s", k[0].Plural())
	case TwoPair:
		if len(k) >= 2 {
			return fmt.Sprintf("Two Pair, %s and %s", k[0].Plural(), k[1].Plural())
		}
	case OnePair:
		return fmt.Sprintf("Pair of %s", k[0].Plural())
	case HighCard:
		return fmt.Sprintf("High Card, %s", k[0].Name())
	}
	return h.Category.String()
}

// Hand is an evaluated hand: its rank and the five cards that realise it
type Hand struct {
	Rank  HandRank
	Cards []deck.Card
}

// EvaluateHand is Evaluate returning a Hand
func EvaluateHand(hole, community []deck.Card) Hand {
	rank, cards := Evaluate(hole, community)
	return Hand{Rank: rank, Cards: cards}
}

// Complete reports whether the hand is made of five cards
func (h Hand) Complete() bool {
	return len(h.Cards) == 5
}

// String returns the description followed by the cards
func (h Hand) String() string {
	var cardStrs []string
	for _, card := range h.Cards {
		cardStrs = append(cardStrs, card.String())
	}
	return fmt.Sprintf("%s [%s]", h.Rank, strings.Join(cardStrs, " "))
}
