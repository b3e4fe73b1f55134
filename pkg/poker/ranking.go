package poker

import (
	"encoding/json"
	"fmt"
)

// Category is a poker hand category, i.e., full house
type Category int

// Constants for Category, ordered weakest to strongest
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
)

// String returns the string representation of a category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two pair"
	case ThreeOfAKind:
		return "Three of a kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full house"
	case FourOfAKind:
		return "Four of a kind"
	case StraightFlush:
		return "Straight flush"
	default:
		panic(fmt.Sprintf("unknown category: %d", c))
	}
}

// MarshalJSON encodes JSON
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(c),
		Name: c.String(),
	})
}

// Ranking is the strength of a five-card hand.
// Rankings compare by category first. Within a category, the tie-break
// vector compares element-wise, with missing elements treated as 0.
type Ranking struct {
	Category Category `json:"category"`
	TieBreak []int    `json:"tieBreak"`
}

// Compare returns a negative number if a is weaker than b, a positive
// number if a is stronger than b, and 0 if they are of equal strength.
func Compare(a, b Ranking) int {
	if a.Category != b.Category {
		return int(a.Category) - int(b.Category)
	}

	n := len(a.TieBreak)
	if len(b.TieBreak) > n {
		n = len(b.TieBreak)
	}

	for i := 0; i < n; i++ {
		var x, y int
		if i < len(a.TieBreak) {
			x = a.TieBreak[i]
		}
		if i < len(b.TieBreak) {
			y = b.TieBreak[i]
		}

		if x != y {
			return x - y
		}
	}

	return 0
}
