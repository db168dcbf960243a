// Package evaluator ranks Texas Hold'em hands by picking the best five cards
// out of a player's hole cards and the community cards.
package evaluator

import (
	"slices"

	"github.com/lox/pokergm/internal/deck"
)

// Evaluate returns the best hand that can be made from hole and community
// cards together with the five cards that realise it, sorted by rank
// descending. With fewer than five cards the hand is a HighCard over the
// available ranks. Ties between equal subsets keep the first one found.
func Evaluate(hole, community []deck.Card) (HandRank, []deck.Card) {
	cards := make([]deck.Card, 0, len(hole)+len(community))
	cards = append(cards, hole...)
	cards = append(cards, community...)
	return EvaluateCards(cards)
}

// EvaluateCards evaluates a flat slice of cards. See Evaluate.
func EvaluateCards(cards []deck.Card) (HandRank, []deck.Card) {
	n := len(cards)
	if n < 5 {
		sorted := sortByRankDesc(cards)
		kickers := make([]deck.Rank, 0, len(sorted))
		for _, c := range sorted {
			kickers = append(kickers, c.Rank)
		}
		return HandRank{Category: HighCard, Kickers: kickers}, sorted
	}

	var (
		best      HandRank
		bestCards []deck.Card
		found     bool
		subset    [5]deck.Card
	)
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						subset = [5]deck.Card{cards[a], cards[b], cards[c], cards[d], cards[e]}
						sorted := sortByRankDesc(subset[:])
						rank := rankFive(sorted)
						if !found || rank.Beats(best) {
							best, bestCards, found = rank, sorted, true
						}
					}
				}
			}
		}
	}
	return best, bestCards
}

// Evaluate7 is a convenience for the common showdown case.
func Evaluate7(cards []deck.Card) HandRank {
	rank, _ := EvaluateCards(cards)
	return rank
}

// rankFive classifies exactly five cards already sorted by rank descending.
func rankFive(cards []deck.Card) HandRank {
	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}

	straightHigh, straight := straightHighCard(cards)

	switch {
	case straight && flush && straightHigh == deck.Ace:
		return HandRank{Category: RoyalFlush, Kickers: []deck.Rank{deck.Ace}}
	case straight && flush:
		return HandRank{Category: StraightFlush, Kickers: []deck.Rank{straightHigh}}
	}

	groups := groupRanks(cards)
	kickers := make([]deck.Rank, len(groups))
	for i, g := range groups {
		kickers[i] = g.rank
	}

	switch {
	case groups[0].count == 4:
		return HandRank{Category: FourOfAKind, Kickers: kickers}
	case groups[0].count == 3 && groups[1].count == 2:
		return HandRank{Category: FullHouse, Kickers: kickers}
	case flush:
		return HandRank{Category: Flush, Kickers: kickers}
	case straight:
		return HandRank{Category: Straight, Kickers: []deck.Rank{straightHigh}}
	case groups[0].count == 3:
		return HandRank{Category: ThreeOfAKind, Kickers: kickers}
	case groups[0].count == 2 && groups[1].count == 2:
		return HandRank{Category: TwoPair, Kickers: kickers}
	case groups[0].count == 2:
		return HandRank{Category: OnePair, Kickers: kickers}
	default:
		return HandRank{Category: HighCard, Kickers: kickers}
	}
}

// straightHighCard reports whether five rank-descending cards form a
// straight and its high card. A-5-4-3-2 is a Five-high straight.
func straightHighCard(cards []deck.Card) (deck.Rank, bool) {
	for i := 1; i < len(cards); i++ {
		if cards[i].Rank == cards[i-1].Rank {
			return 0, false
		}
	}
	if cards[0].Rank-cards[4].Rank == 4 {
		return cards[0].Rank, true
	}
	if cards[0].Rank == deck.Ace && cards[1].Rank == deck.Five && cards[4].Rank == deck.Two {
		return deck.Five, true
	}
	return 0, false
}

type rankGroup struct {
	rank  deck.Rank
	count int
}

// groupRanks returns distinct ranks ordered by count descending then rank
// descending, which is exactly the kicker order for every paired category.
func groupRanks(cards []deck.Card) []rankGroup {
	var groups []rankGroup
	for _, c := range cards {
		idx := slices.IndexFunc(groups, func(g rankGroup) bool { return g.rank == c.Rank })
		if idx >= 0 {
			groups[idx].count++
			continue
		}
		groups = append(groups, rankGroup{rank: c.Rank, count: 1})
	}
	slices.SortStableFunc(groups, func(a, b rankGroup) int {
		if a.count != b.count {
			return b.count - a.count
		}
		return int(b.rank - a.rank)
	})
	return groups
}

func sortByRankDesc(cards []deck.Card) []deck.Card {
	sorted := slices.Clone(cards)
	slices.SortStableFunc(sorted, func(a, b deck.Card) int {
		return int(b.Rank - a.Rank)
	})
	return sorted
}
