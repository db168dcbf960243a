package deck

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCard is returned for malformed card notation.
var ErrInvalidCard = errors.New("invalid card")

// ParseCard parses a single card token such as "Ah", "td" or "10h".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	cards, err := ParseCards(s)
	if err != nil {
		return Card{}, err
	}
	if len(cards) != 1 {
		return Card{}, fmt.Errorf("%w: %q is not a single card", ErrInvalidCard, s)
	}
	return cards[0], nil
}

// ParseCards parses a list of cards. Tokens may be concatenated ("AsKsQs")
// or separated by spaces or commas ("As Ks, 10s").
// Ranks: A, K, Q, J, T (or 10), 9..2. Suits: s, h, d, c. Case-insensitive.
// A card may appear only once.
func ParseCards(s string) ([]Card, error) {
	cards := []Card{}
	seen := make(map[Card]bool)
	for i := 0; i < len(s); {
		if s[i] == ' ' || s[i] == ',' || s[i] == '\t' {
			i++
			continue
		}

		var rank Rank
		var err error
		if strings.HasPrefix(s[i:], "10") {
			rank = Ten
			i += 2
		} else {
			rank, err = parseRank(s[i])
			if err != nil {
				return nil, fmt.Errorf("%w: rank %q at position %d", ErrInvalidCard, s[i], i)
			}
			i++
		}

		if i >= len(s) {
			return nil, fmt.Errorf("%w: incomplete card at end of %q", ErrInvalidCard, s)
		}
		suit, err := parseSuit(s[i])
		if err != nil {
			return nil, fmt.Errorf("%w: suit %q at position %d", ErrInvalidCard, s[i], i)
		}
		i++

		card := Card{Rank: rank, Suit: suit}
		if seen[card] {
			return nil, fmt.Errorf("%w: duplicate %s in %q", ErrInvalidCard, card, s)
		}
		seen[card] = true
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

func parseRank(c byte) (Rank, error) {
	switch c {
	case 'A', 'a':
		return Ace, nil
	case 'K', 'k':
		return King, nil
	case 'Q', 'q':
		return Queen, nil
	case 'J', 'j':
		return Jack, nil
	case 'T', 't':
		return Ten, nil
	case '2', '3', '4', '5', '6', '7', '8', '9':
		return Rank(c - '0'), nil
	default:
		return 0, fmt.Errorf("unknown rank '%c'", c)
	}
}

func parseSuit(c byte) (Suit, error) {
	switch c {
	case 's', 'S':
		return Spades, nil
	case 'h', 'H':
		return Hearts, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'c', 'C':
		return Clubs, nil
	default:
		return 0, fmt.Errorf("unknown suit '%c'", c)
	}
}
