package poker

import (
	"fmt"
	"sort"

	"sixmax-holdem/pkg/deck"
)

// Evaluate5 returns the ranking for exactly five cards
func Evaluate5(cards []*deck.Card) Ranking {
	if len(cards) != 5 {
		panic(fmt.Sprintf("Evaluate5 requires exactly 5 cards, got %d", len(cards)))
	}

	ranks := make([]int, 5)
	isFlush := true
	for i, card := range cards {
		ranks[i] = card.Rank
		if card.Suit != cards[0].Suit {
			isFlush = false
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	counts := make(map[int]int)
	for _, r := range ranks {
		counts[r]++
	}

	// unique ranks, descending
	unique := make([]int, 0, 5)
	for _, r := range ranks {
		if len(unique) == 0 || unique[len(unique)-1] != r {
			unique = append(unique, r)
		}
	}

	straightHigh := straightHighFromRanks(unique)

	// rank groups ordered by count descending, then rank descending
	groups := make([]rankGroup, 0, len(counts))
	for r, c := range counts {
		groups = append(groups, rankGroup{rank: r, count: c})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	switch {
	case isFlush && straightHigh > 0:
		return Ranking{Category: StraightFlush, TieBreak: []int{straightHigh}}
	case groups[0].count == 4:
		kicker := 0
		for _, r := range unique {
			if r != groups[0].rank {
				kicker = r
				break
			}
		}
		return Ranking{Category: FourOfAKind, TieBreak: []int{groups[0].rank, kicker}}
	case groups[0].count == 3 && groups[1].count == 2:
		return Ranking{Category: FullHouse, TieBreak: []int{groups[0].rank, groups[1].rank}}
	case isFlush:
		return Ranking{Category: Flush, TieBreak: ranks}
	case straightHigh > 0:
		return Ranking{Category: Straight, TieBreak: []int{straightHigh}}
	case groups[0].count == 3:
		tb := []int{groups[0].rank}
		for _, r := range unique {
			if r != groups[0].rank {
				tb = append(tb, r)
			}
		}
		return Ranking{Category: ThreeOfAKind, TieBreak: tb}
	case groups[0].count == 2 && groups[1].count == 2:
		high, low := groups[0].rank, groups[1].rank
		kicker := 0
		for _, r := range unique {
			if r != high && r != low {
				kicker = r
				break
			}
		}
		return Ranking{Category: TwoPair, TieBreak: []int{high, low, kicker}}
	case groups[0].count == 2:
		tb := []int{groups[0].rank}
		for _, r := range unique {
			if r != groups[0].rank {
				tb = append(tb, r)
			}
		}
		return Ranking{Category: OnePair, TieBreak: tb}
	}

	return Ranking{Category: HighCard, TieBreak: ranks}
}

type rankGroup struct {
	rank  int
	count int
}

// straightHighFromRanks returns the high card of the best straight found in
// the unique, descending ranks, or 0 if there is no straight.
// The ace-low wheel (A-2-3-4-5) counts as a straight with a high card of 5.
func straightHighFromRanks(unique []int) int {
	has := make(map[int]bool, len(unique))
	for _, r := range unique {
		has[r] = true
	}

	if has[deck.Ace] && has[5] && has[4] && has[3] && has[2] {
		return 5
	}

	for hi := deck.Ace; hi >= 6; hi-- {
		ok := true
		for d := 0; d < 5; d++ {
			if !has[hi-d] {
				ok = false
				break
			}
		}

		if ok {
			return hi
		}
	}

	return 0
}

// BestOfSeven evaluates every five-card combination of the supplied cards
// and returns the strongest ranking along with the five cards that make it.
// If fewer than five cards are supplied, a zero-value ranking and a nil hand
// are returned; callers must treat that as "no hand yet".
func BestOfSeven(cards []*deck.Card) (Ranking, deck.Hand) {
	n := len(cards)
	if n < 5 {
		return Ranking{}, nil
	}

	var best Ranking
	var best5 deck.Hand
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						combo := []*deck.Card{cards[a], cards[b], cards[c], cards[d], cards[e]}
						ranking := Evaluate5(combo)
						if best5 == nil || Compare(ranking, best) > 0 {
							best = ranking
							best5 = combo
						}
					}
				}
			}
		}
	}

	return best, best5
}
