package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sixmax-holdem/internal/rng"
	"sixmax-holdem/pkg/deck"
)

func TestBotPolicy_decide_neverFoldsForFree(t *testing.T) {
	table := setupHand(t)
	bots := &botPolicy{gen: rng.NewSeeded(1)}

	// clear the betting so nothing is owed
	table.resetForStreet()
	table.stage = StageFlop
	table.board = deck.CardsFromString("2c,7d,9h")

	for i := 0; i < 100; i++ {
		action, _ := bots.decide(table, 4)
		assert.NotEqual(t, ActionFold, action)
		assert.Contains(t, []Action{ActionCheck, ActionRaise}, action)
	}
}

func TestBotPolicy_decide_validActions(t *testing.T) {
	table := setupHand(t)
	bots := &botPolicy{gen: rng.NewSeeded(42)}

	for i := 0; i < 100; i++ {
		action, amount := bots.decide(table, 4)
		assert.Contains(t, []Action{ActionFold, ActionCheck, ActionCall, ActionRaise}, action)
		assert.NotEqual(t, ActionCheck, action, "cannot check facing the blind")

		if action == ActionRaise {
			p := table.players[4]
			assert.GreaterOrEqual(t, amount, table.MinRaiseTo())
			assert.LessOrEqual(t, amount, p.MaxRaiseTo())
		}
	}
}

func TestBotPolicy_decide_foldsTrashUnderPressure(t *testing.T) {
	table := setupHand(t)
	bots := &botPolicy{gen: rng.NewSeeded(7)}

	seat := table.players[4]
	seat.Hand = deck.CardsFromString("2c,7d")
	seat.Chips = 100
	table.toCall = 500

	folds := 0
	for i := 0; i < 100; i++ {
		if action, _ := bots.decide(table, 4); action == ActionFold {
			folds++
		}
	}

	assert.Greater(t, folds, 50)
}

func TestBotPolicy_preflopScore(t *testing.T) {
	bots := &botPolicy{gen: rng.NewSeeded(3)}

	aces := &Player{Hand: deck.CardsFromString("14c,14d")}
	trash := &Player{Hand: deck.CardsFromString("2c,7d")}

	// noise is ±0.03, far smaller than the gap between these holdings
	assert.Greater(t, bots.preflopScore(aces), bots.preflopScore(trash)+0.3)
}

func TestBotPolicy_raiseTarget(t *testing.T) {
	table := setupHand(t)
	bots := &botPolicy{gen: rng.NewSeeded(9)}

	p := table.players[4]
	for i := 0; i < 50; i++ {
		target := bots.raiseTarget(table, p)
		assert.GreaterOrEqual(t, target, table.MinRaiseTo())
		assert.LessOrEqual(t, target, table.MinRaiseTo()+2*table.options.BigBlind)
	}

	// a short stack clamps to all-in
	p.Chips = 15
	p.Bet = 0
	assert.Equal(t, 15, bots.raiseTarget(table, p))
}
