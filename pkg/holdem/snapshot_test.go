package holdem

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"sixmax-holdem/pkg/deck"
)

func TestTable_gameSnapshot_isDeepCopy(t *testing.T) {
	table := setupHand(t)
	snap := table.gameSnapshot()

	a := assert.New(t)
	a.Equal(6, len(snap.Players))
	a.Equal(30, snap.Pot)
	a.Equal(StagePreflop, snap.Stage)
	a.True(snap.HandInProgress)
	a.Equal(40, len(snap.Deck))

	// mutating the snapshot must not touch the table
	original := deck.CardToString(table.players[0].Hand[0])
	snap.Players[0].Chips = 0
	snap.Players[0].Hand[0] = nil
	snap.Board.AddCard(deck.CardFromString("3c"))

	a.Equal(1000, table.players[0].Chips)
	a.Equal(original, deck.CardToString(table.players[0].Hand[0]))
	a.Equal(0, len(table.Board()))
}

func TestTable_gameSnapshot_roundTripsJSON(t *testing.T) {
	table := setupHand(t)
	snap := table.gameSnapshot()

	b, err := json.Marshal(snap)
	assert.NoError(t, err)

	var decoded GameSnapshot
	assert.NoError(t, json.Unmarshal(b, &decoded))

	restored, err := RestoreTable(DefaultOptions(), decoded, "Kate")
	assert.NoError(t, err)

	a := assert.New(t)
	a.True(restored.HandInProgress())
	a.Equal(StagePreflop, restored.Stage())
	a.Equal(30, restored.Pot())
	a.Equal(20, restored.ToCall())
	a.Equal(4, restored.Current())
	a.Equal(40, len(restored.deck.Cards))
	a.Equal(6000, restored.totalChips())
}

func TestRestoreTable_wrongPlayerCountStartsFresh(t *testing.T) {
	table, err := RestoreTable(DefaultOptions(), GameSnapshot{
		Players: []*Player{{Name: "Kate", Chips: 9999}},
		Pot:     500,
	}, "Kate")
	assert.NoError(t, err)

	assert.Equal(t, 6, len(table.Players()))
	assert.Equal(t, 1000, table.players[0].Chips)
	assert.Equal(t, 0, table.Pot())
	assert.False(t, table.HandInProgress())
}

func TestRestoreTable_coercesHostileValues(t *testing.T) {
	table := setupHand(t)
	snap := table.gameSnapshot()

	snap.Players[1].Chips = -50
	snap.Players[2].Bet = -10
	snap.Players[3].Out = true
	snap.Players[3].Chips = 400
	snap.Players[0].IsBot = true
	snap.Players[0].Name = "IMPOSTER"
	snap.Pot = -100
	snap.Dealer = 17
	snap.Current = -2
	snap.ToCall = -5

	restored, err := RestoreTable(DefaultOptions(), snap, "Kate")
	assert.NoError(t, err)

	a := assert.New(t)
	a.Equal(0, restored.players[1].Chips)
	a.Equal(0, restored.players[2].Bet)

	// eliminated stays eliminated, chips zeroed
	a.True(restored.players[3].Out)
	a.True(restored.players[3].Folded)
	a.Equal(0, restored.players[3].Chips)

	// seat zero always belongs to the human
	a.Equal("Kate", restored.players[0].Name)
	a.False(restored.players[0].IsBot)

	a.Equal(0, restored.Pot())
	a.Equal(0, restored.dealer)
	a.Equal(0, restored.Current())
	a.Equal(0, restored.ToCall())
}

func TestRestoreTable_abandonsUndealtHand(t *testing.T) {
	table := setupHand(t)
	snap := table.gameSnapshot()

	// a live seat with a single hole card is unrecoverable
	snap.Players[4].Hand = snap.Players[4].Hand[:1]

	restored, err := RestoreTable(DefaultOptions(), snap, "Kate")
	assert.NoError(t, err)
	assert.False(t, restored.HandInProgress())
	assert.Equal(t, StageIdle, restored.Stage())
	assert.Equal(t, 0, restored.Pot())
}

func TestRestoreTable_nonBettingStageGoesIdle(t *testing.T) {
	table := setupHand(t)
	snap := table.gameSnapshot()
	snap.Stage = StageShowdown

	restored, err := RestoreTable(DefaultOptions(), snap, "Kate")
	assert.NoError(t, err)
	assert.False(t, restored.HandInProgress())
	assert.Equal(t, StageIdle, restored.Stage())
}

func TestRestoreTable_dropsExtraBoardCards(t *testing.T) {
	table := setupHand(t)
	snap := table.gameSnapshot()
	snap.Board = deck.CardsFromString("2c,3c,4c,5c,6c,7c,8c")

	restored, err := RestoreTable(DefaultOptions(), snap, "Kate")
	assert.NoError(t, err)
	assert.Equal(t, 5, len(restored.Board()))
}
