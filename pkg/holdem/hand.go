package holdem

import (
	"fmt"
	"strings"

	"sixmax-holdem/pkg/deck"
	"sixmax-holdem/pkg/poker"
)

// StartHand begins a new hand: rotates the dealer, shuffles a fresh deck,
// deals two hole cards to every surviving seat and posts the blinds.
// The caller must have already checked Champion()
func (t *Table) StartHand() error {
	t.sweepEliminations()

	t.handInProgress = true
	t.stage = StagePreflop
	t.deck = deck.New()
	t.deck.Shuffle(0)
	t.board = deck.Hand{}
	t.pot = 0

	for _, p := range t.players {
		p.resetForHand()
	}

	t.dealer = t.nextNotOut(t.dealer)
	t.sbPos = t.nextNotOut(t.dealer)
	t.bbPos = t.nextNotOut(t.sbPos)

	// two passes, one card per surviving seat per pass
	for pass := 0; pass < 2; pass++ {
		for _, p := range t.players {
			if p.Out {
				continue
			}

			card, err := t.deck.Draw()
			if err != nil {
				return err
			}

			p.Hand.AddCard(card)
		}
	}

	t.resetForStreet()
	t.postBlind(t.sbPos, t.options.SmallBlind)
	t.postBlind(t.bbPos, t.options.BigBlind)

	t.toCall = t.players[t.sbPos].Bet
	if bb := t.players[t.bbPos].Bet; bb > t.toCall {
		t.toCall = bb
	}

	t.current = t.nextActive(t.bbPos)
	t.message = "New hand"
	return nil
}

// AdvanceStreet moves the hand to the next street, dealing community cards
// as required. It returns true once the hand has reached showdown
func (t *Table) AdvanceStreet() (showdown bool, err error) {
	t.resetForStreet()

	switch t.stage {
	case StagePreflop:
		if err := t.dealCommunity(3); err != nil {
			return false, err
		}
		t.stage = StageFlop
	case StageFlop:
		if err := t.dealCommunity(1); err != nil {
			return false, err
		}
		t.stage = StageTurn
	case StageTurn:
		if err := t.dealCommunity(1); err != nil {
			return false, err
		}
		t.stage = StageRiver
	case StageRiver:
		t.stage = StageShowdown
	case StageShowdown:
		// the hand is already at showdown; nothing to deal
		return true, nil
	default:
		return false, fmt.Errorf("cannot advance from stage %s", t.stage)
	}

	t.current = t.nextActive(t.dealer)
	return t.stage == StageShowdown, nil
}

func (t *Table) dealCommunity(count int) error {
	for i := 0; i < count; i++ {
		card, err := t.deck.Draw()
		if err != nil {
			return err
		}

		t.board.AddCard(card)
	}

	return nil
}

// Showdown evaluates every live player's best five of seven, splits the pot
// among the tied best hands and ends the hand. Any odd chips left by the
// integer split go one-by-one to the winners in evaluation order so no chip
// is ever lost
func (t *Table) Showdown() []*Player {
	alive := t.livePlayers()
	if len(alive) == 1 {
		t.awardUncontested()
		return alive
	}

	var best poker.Ranking
	winners := make([]*Player, 0, len(alive))
	for i, p := range alive {
		ranking, _ := poker.BestOfSeven(append(p.Hand.Clone(), t.board...))
		if i == 0 {
			best = ranking
			winners = append(winners, p)
			continue
		}

		switch c := poker.Compare(ranking, best); {
		case c > 0:
			best = ranking
			winners = winners[:0]
			winners = append(winners, p)
		case c == 0:
			winners = append(winners, p)
		}
	}

	share := t.pot / len(winners)
	remainder := t.pot - share*len(winners)
	names := make([]string, len(winners))
	for i, w := range winners {
		w.Chips += share
		if remainder > 0 {
			w.Chips++
			remainder--
		}

		names[i] = w.Name
	}

	t.message = fmt.Sprintf("Winner: %s", strings.Join(names, ", "))
	t.endHand()
	return winners
}

// awardUncontested gives the entire pot to the last live player
func (t *Table) awardUncontested() {
	winner := t.livePlayers()[0]
	winner.Chips += t.pot
	t.message = fmt.Sprintf("%s wins %d (all folded)", winner.Name, t.pot)
	t.endHand()
}

func (t *Table) endHand() {
	t.pot = 0
	t.handInProgress = false
	t.stage = StageIdle
	t.sweepEliminations()
}
