package holdem

import "sixmax-holdem/pkg/deck"

// Player is a seat at the table. Seat 0 is always the human
type Player struct {
	Name   string    `json:"name"`
	IsBot  bool      `json:"isBot"`
	Chips  int       `json:"chips"`
	Bet    int       `json:"bet"`
	Folded bool      `json:"folded"`
	Out    bool      `json:"out"`
	Acted  bool      `json:"acted"`
	Hand   deck.Hand `json:"hand"`
}

// Live returns true if the player can still win this hand
func (p *Player) Live() bool {
	return !p.Out && !p.Folded
}

// AllIn returns true if the player has no chips behind
func (p *Player) AllIn() bool {
	return p.Chips == 0
}

// Owes returns the amount the player must still pay to match toCall
func (p *Player) Owes(toCall int) int {
	owed := toCall - p.Bet
	if owed < 0 {
		return 0
	}

	return owed
}

// MaxRaiseTo returns the largest total bet the player can reach
func (p *Player) MaxRaiseTo() int {
	return p.Bet + p.Chips
}

// resetForHand clears per-hand state. Eliminated players stay folded so the
// rotation helpers keep skipping them
func (p *Player) resetForHand() {
	p.Folded = p.Out
	p.Bet = 0
	p.Acted = false
	p.Hand = deck.Hand{}
}

// resetForStreet clears per-street state
func (p *Player) resetForStreet() {
	p.Bet = 0
	p.Acted = false
}
