package holdem

import (
	"sixmax-holdem/pkg/deck"
)

// SnapshotVersion is the persisted schema version
const SnapshotVersion = 2

// Snapshot is the full externally-visible state of a session. It doubles as
// the persistence format and the render payload for the UI
type Snapshot struct {
	Version     int          `json:"version"`
	Nickname    string       `json:"nickname"`
	TurnSeconds int          `json:"turnSeconds"`
	Paused      bool         `json:"paused"`
	Game        GameSnapshot `json:"game"`

	// display-only fields, never trusted on load
	RunMode     string       `json:"runMode"`
	Message     string       `json:"message"`
	TurnLeft    int          `json:"turnLeft"`
	Hero        *HeroInfo    `json:"hero,omitempty"`
	RaiseBounds *RaiseBounds `json:"raiseBounds,omitempty"`
}

// GameSnapshot is the table/tournament portion of a snapshot
type GameSnapshot struct {
	Players           []*Player    `json:"players"`
	Deck              []*deck.Card `json:"deck"`
	Board             deck.Hand    `json:"board"`
	Pot               int          `json:"pot"`
	Stage             Stage        `json:"stage"`
	HandInProgress    bool         `json:"handInProgress"`
	TournamentStarted bool         `json:"tournamentStarted"`
	Dealer            int          `json:"dealer"`
	SmallBlindPos     int          `json:"sbPos"`
	BigBlindPos       int          `json:"bbPos"`
	Current           int          `json:"current"`
	ToCall            int          `json:"toCall"`
	RaisesThisRound   int          `json:"raisesThisRound"`
}

// HeroInfo is display info for the human seat
type HeroInfo struct {
	HandName string   `json:"handName,omitempty"`
	WinPct   *int     `json:"winPct"`
	Best5    []string `json:"best5,omitempty"`
}

// RaiseBounds are the suggested limits for the raise control
type RaiseBounds struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}

// gameSnapshot copies the table state
func (t *Table) gameSnapshot() GameSnapshot {
	players := make([]*Player, len(t.players))
	for i, p := range t.players {
		cp := *p
		cp.Hand = p.Hand.Clone()
		players[i] = &cp
	}

	var cards []*deck.Card
	if t.deck != nil {
		cards = make([]*deck.Card, len(t.deck.Cards))
		copy(cards, t.deck.Cards)
	}

	return GameSnapshot{
		Players:           players,
		Deck:              cards,
		Board:             t.board.Clone(),
		Pot:               t.pot,
		Stage:             t.stage,
		HandInProgress:    t.handInProgress,
		TournamentStarted: t.tournamentStarted,
		Dealer:            t.dealer,
		SmallBlindPos:     t.sbPos,
		BigBlindPos:       t.bbPos,
		Current:           t.current,
		ToCall:            t.toCall,
		RaisesThisRound:   t.raisesThisRound,
	}
}

// RestoreTable rebuilds a table from a persisted game snapshot. The snapshot
// is untrusted client-side text: every field is coerced into a safe value,
// and anything unrecoverable falls back to a fresh tournament
func RestoreTable(opts Options, snap GameSnapshot, humanName string) (*Table, error) {
	t, err := NewTable(opts, humanName)
	if err != nil {
		return nil, err
	}

	if len(snap.Players) != opts.BotCount+1 {
		return t, nil
	}

	seats := len(snap.Players)
	for i, p := range snap.Players {
		if p == nil {
			return t, nil
		}

		restored := *p
		if restored.Chips < 0 {
			restored.Chips = 0
		}
		if restored.Bet < 0 {
			restored.Bet = 0
		}
		if restored.Hand == nil || len(restored.Hand) > 2 {
			restored.Hand = deck.Hand{}
		}
		if restored.Out {
			restored.Folded = true
			restored.Chips = 0
		}

		t.players[i] = &restored
	}

	// the hero seat always belongs to the session's human
	t.players[0].Name = humanName
	t.players[0].IsBot = false

	t.board = deck.Hand{}
	for _, c := range snap.Board {
		if c != nil && len(t.board) < 5 {
			t.board.AddCard(c)
		}
	}

	cards := make([]*deck.Card, 0, len(snap.Deck))
	for _, c := range snap.Deck {
		if c != nil {
			cards = append(cards, c)
		}
	}
	t.deck = &deck.Deck{Cards: cards}

	t.pot = clampMin(snap.Pot, 0)
	t.stage = snap.Stage
	t.handInProgress = snap.HandInProgress && snap.Stage.IsBettingStreet()
	t.tournamentStarted = true
	t.dealer = clampSeat(snap.Dealer, seats)
	t.sbPos = clampSeat(snap.SmallBlindPos, seats)
	t.bbPos = clampSeat(snap.BigBlindPos, seats)
	t.current = clampSeat(snap.Current, seats)
	t.toCall = clampMin(snap.ToCall, 0)
	t.raisesThisRound = clampMin(snap.RaisesThisRound, 0)

	if !t.handInProgress {
		t.stage = StageIdle
	}

	// a hand cannot be in progress without a live hero-visible state
	if t.handInProgress {
		for _, p := range t.players {
			if !p.Out && len(p.Hand) != 2 {
				t.abandonHand()
				break
			}
		}
	}

	return t, nil
}

// abandonHand discards an unrecoverable mid-hand state, keeping stacks
func (t *Table) abandonHand() {
	for _, p := range t.players {
		p.resetForHand()
	}

	t.board = deck.Hand{}
	t.pot = 0
	t.stage = StageIdle
	t.handInProgress = false
	t.toCall = 0
	t.raisesThisRound = 0
}

func clampMin(v, min int) int {
	if v < min {
		return min
	}

	return v
}

func clampSeat(v, seats int) int {
	if v < 0 || v >= seats {
		return 0
	}

	return v
}
