package holdem

import (
	"fmt"

	"sixmax-holdem/pkg/deck"
)

// Table holds the complete state of one tournament in progress
type Table struct {
	options Options

	players []*Player
	deck    *deck.Deck
	board   deck.Hand
	pot     int
	stage   Stage

	dealer  int
	sbPos   int
	bbPos   int
	current int

	toCall          int
	raisesThisRound int

	handInProgress    bool
	tournamentStarted bool
	message           string
}

// NewTable returns a table with the human in seat 0 and bots in the rest
func NewTable(opts Options, humanName string) (*Table, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	t := &Table{options: opts}
	t.startTournament(humanName)
	return t, nil
}

// startTournament seats everyone with a fresh stack
func (t *Table) startTournament(humanName string) {
	players := make([]*Player, 0, t.options.BotCount+1)
	players = append(players, &Player{
		Name:  humanName,
		Chips: t.options.StartingChips,
		Hand:  deck.Hand{},
	})

	for i := 1; i <= t.options.BotCount; i++ {
		players = append(players, &Player{
			Name:  fmt.Sprintf("BOT%d", i),
			IsBot: true,
			Chips: t.options.StartingChips,
			Hand:  deck.Hand{},
		})
	}

	t.players = players
	t.dealer = 0
	t.sbPos = 1
	t.bbPos = 2
	t.current = 0
	t.deck = nil
	t.board = deck.Hand{}
	t.pot = 0
	t.stage = StageIdle
	t.handInProgress = false
	t.tournamentStarted = true
	t.toCall = 0
	t.raisesThisRound = 0
}

// ResetTournament wipes everyone back to the starting stack
func (t *Table) ResetTournament() {
	t.startTournament(t.players[0].Name)
}

// Players returns the seats in order
func (t *Table) Players() []*Player {
	return t.players
}

// Pot returns the chips in the middle
func (t *Table) Pot() int {
	return t.pot
}

// Stage returns the current stage
func (t *Table) Stage() Stage {
	return t.stage
}

// Board returns the community cards
func (t *Table) Board() deck.Hand {
	return t.board
}

// Current returns the seat index that is to act
func (t *Table) Current() int {
	return t.current
}

// ToCall returns the table-wide amount to match
func (t *Table) ToCall() int {
	return t.toCall
}

// HandInProgress returns true while a hand is being played
func (t *Table) HandInProgress() bool {
	return t.handInProgress
}

// Message returns the last status message
func (t *Table) Message() string {
	return t.message
}

// livePlayers returns every player still contesting the hand
func (t *Table) livePlayers() []*Player {
	live := make([]*Player, 0, len(t.players))
	for _, p := range t.players {
		if p.Live() {
			live = append(live, p)
		}
	}

	return live
}

// onlyOneLeft returns true if a single live player remains
func (t *Table) onlyOneLeft() bool {
	return len(t.livePlayers()) == 1
}

// nextActive returns the next seat after from that is still in the hand.
// If no other seat qualifies, from is returned unchanged
func (t *Table) nextActive(from int) int {
	n := len(t.players)
	for k := 1; k <= n; k++ {
		i := (from + k) % n
		if t.players[i].Live() {
			return i
		}
	}

	return from
}

// nextNotOut returns the next seat after from that has not been eliminated
func (t *Table) nextNotOut(from int) int {
	n := len(t.players)
	for k := 1; k <= n; k++ {
		i := (from + k) % n
		if !t.players[i].Out {
			return i
		}
	}

	return from
}

// sweepEliminations permanently knocks out any player at zero chips.
// Elimination only clears on an explicit tournament reset
func (t *Table) sweepEliminations() {
	for _, p := range t.players {
		if !p.Out && p.Chips <= 0 {
			p.Out = true
			p.Chips = 0
			p.Folded = true
		}
	}
}

// Champion returns the last player standing, or nil if the tournament is
// still contested
func (t *Table) Champion() *Player {
	var alive *Player
	for _, p := range t.players {
		if p.Out {
			continue
		}

		if alive != nil {
			return nil
		}

		alive = p
	}

	return alive
}

// resetForStreet clears every seat's bet/acted state and the table betting
// markers for a new street
func (t *Table) resetForStreet() {
	for _, p := range t.players {
		if p.Out {
			continue
		}

		p.resetForStreet()
	}

	t.toCall = 0
	t.raisesThisRound = 0
}

// totalChips is the conservation check: chips behind + live bets are already
// folded into pot, so the invariant is Σchips + pot
func (t *Table) totalChips() int {
	sum := t.pot
	for _, p := range t.players {
		sum += p.Chips
	}

	return sum
}
