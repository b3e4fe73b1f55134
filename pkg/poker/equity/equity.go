// Package equity estimates a player's chance of winning the pot by Monte
// Carlo simulation against random opponent holdings. The result is a
// statistical estimate for display purposes, not exact equity.
package equity

import (
	"fmt"

	"sixmax-holdem/internal/rng"
	"sixmax-holdem/pkg/deck"
	"sixmax-holdem/pkg/poker"
)

// trial counts. More trials before the flop since more cards are unknown.
const (
	PreflopTrials  = 300
	PostflopTrials = 220
)

// Estimate returns the hero's estimated win percentage (0-100) against the
// given number of live opponents holding unknown cards.
//
// Each trial completes the board to five cards and deals two random cards to
// every opponent from the unseen pool. The hero scores a full point for
// strictly beating every opponent and 1/k when tied for best among k players
// (hero included). The estimate is the average score over all trials.
func Estimate(hole deck.Hand, board deck.Hand, liveOpponents int, gen rng.Generator) int {
	if len(hole) != 2 {
		panic(fmt.Sprintf("hero must hold exactly 2 cards, got %d", len(hole)))
	}

	if liveOpponents <= 0 {
		return 100
	}

	pool := unseenPool(hole, board)

	trials := PostflopTrials
	if len(board) == 0 {
		trials = PreflopTrials
	}

	needBoard := 5 - len(board)
	needOpp := liveOpponents * 2

	score := 0.0
	for t := 0; t < trials; t++ {
		// partial Fisher-Yates: we only need the first needBoard+needOpp cards
		for i := 0; i < needBoard+needOpp; i++ {
			j := i + gen.Intn(len(pool)-i)
			pool[i], pool[j] = pool[j], pool[i]
		}

		simBoard := board.Clone()
		for i := 0; i < needBoard; i++ {
			simBoard.AddCard(pool[i])
		}

		heroRanking, _ := poker.BestOfSeven(append(hole.Clone(), simBoard...))

		best := true
		ties := 1
		off := needBoard
		for k := 0; k < liveOpponents; k++ {
			oppCards := append(deck.Hand{pool[off], pool[off+1]}, simBoard...)
			off += 2

			oppRanking, _ := poker.BestOfSeven(oppCards)
			c := poker.Compare(heroRanking, oppRanking)
			if c < 0 {
				best = false
				break
			}

			if c == 0 {
				ties++
			}
		}

		if best {
			score += 1.0 / float64(ties)
		}
	}

	return int(score/float64(trials)*100 + 0.5)
}

// unseenPool returns every card not visible to the hero
func unseenPool(hole, board deck.Hand) []*deck.Card {
	known := make(map[deck.Card]bool, len(hole)+len(board))
	for _, c := range hole {
		known[*c] = true
	}
	for _, c := range board {
		known[*c] = true
	}

	pool := make([]*deck.Card, 0, 52-len(known))
	for _, suit := range deck.Suits {
		for rank := 2; rank <= deck.Ace; rank++ {
			card := &deck.Card{Rank: rank, Suit: suit}
			if !known[*card] {
				pool = append(pool, card)
			}
		}
	}

	return pool
}
