package holdem

import (
	"errors"
	"fmt"
)

// betting errors. The session layer logs and swallows these; the engine
// still validates so a misbehaving caller can never corrupt the table
var (
	ErrNoHandInProgress = errors.New("no hand in progress")
	ErrNotLive          = errors.New("player is not in the hand")
	ErrCannotCheck      = errors.New("cannot check when chips are owed")
)

// Result describes what an action did to the hand
type Result struct {
	// HandEnded is true if the action ended the hand with an uncontested pot
	HandEnded bool

	// RoundComplete is true if the betting round finished with this action
	RoundComplete bool
}

func (t *Table) validateActor(seat int) (*Player, error) {
	if !t.handInProgress {
		return nil, ErrNoHandInProgress
	}

	if seat < 0 || seat >= len(t.players) {
		return nil, fmt.Errorf("no such seat: %d", seat)
	}

	p := t.players[seat]
	if !p.Live() {
		return nil, ErrNotLive
	}

	return p, nil
}

// postBlind moves up to amount from the seat into the pot. A short stack
// posts all-in for whatever it has
func (t *Table) postBlind(seat, amount int) {
	p := t.players[seat]
	if p.Out {
		return
	}

	pay := amount
	if pay > p.Chips {
		pay = p.Chips
	}

	p.Chips -= pay
	p.Bet += pay
	t.pot += pay
}

// MinRaiseTo returns the minimum legal raise target: one big blind over the
// current amount to call
func (t *Table) MinRaiseTo() int {
	return t.toCall + t.options.BigBlind
}

// Fold removes the seat from the hand. If that leaves a single live player,
// the pot is awarded immediately without a showdown
func (t *Table) Fold(seat int) (Result, error) {
	p, err := t.validateActor(seat)
	if err != nil {
		return Result{}, err
	}

	p.Folded = true
	p.Acted = true
	t.message = fmt.Sprintf("%s folds", p.Name)

	if t.onlyOneLeft() {
		t.awardUncontested()
		return Result{HandEnded: true}, nil
	}

	t.current = t.nextActive(seat)
	return Result{RoundComplete: t.IsRoundComplete()}, nil
}

// Check passes the action. Only legal when nothing is owed
func (t *Table) Check(seat int) (Result, error) {
	p, err := t.validateActor(seat)
	if err != nil {
		return Result{}, err
	}

	if p.Owes(t.toCall) != 0 {
		return Result{}, ErrCannotCheck
	}

	p.Acted = true
	t.message = fmt.Sprintf("%s checks", p.Name)
	t.current = t.nextActive(seat)
	return Result{RoundComplete: t.IsRoundComplete()}, nil
}

// Call matches the current bet, going all-in if the stack is short
func (t *Table) Call(seat int) (Result, error) {
	p, err := t.validateActor(seat)
	if err != nil {
		return Result{}, err
	}

	pay := p.Owes(t.toCall)
	if pay > p.Chips {
		pay = p.Chips
	}

	p.Chips -= pay
	p.Bet += pay
	t.pot += pay
	p.Acted = true
	t.message = fmt.Sprintf("%s calls %d", p.Name, pay)
	t.current = t.nextActive(seat)
	return Result{RoundComplete: t.IsRoundComplete()}, nil
}

// RaiseTo raises the seat's total bet to the target amount, clamped into
// [MinRaiseTo, all-in]. Once the raise cap is reached, or if the clamped
// raise adds nothing, the request degrades to a call. A successful raise
// reopens the action for every other live player
func (t *Table) RaiseTo(seat, target int) (Result, error) {
	p, err := t.validateActor(seat)
	if err != nil {
		return Result{}, err
	}

	if t.raisesThisRound >= t.options.MaxRaises {
		return t.Call(seat)
	}

	if target < t.MinRaiseTo() {
		target = t.MinRaiseTo()
	}
	if target > p.MaxRaiseTo() {
		target = p.MaxRaiseTo()
	}

	add := target - p.Bet
	if add > p.Chips {
		add = p.Chips
	}
	if add <= 0 {
		return t.Call(seat)
	}

	p.Chips -= add
	p.Bet += add
	t.pot += add

	if p.Bet > t.toCall {
		t.toCall = p.Bet
	}
	t.raisesThisRound++

	// the raise reopens action for everyone else
	for i, other := range t.players {
		if !other.Live() {
			continue
		}

		other.Acted = i == seat
	}

	t.message = fmt.Sprintf("%s raises to %d", p.Name, p.Bet)
	t.current = t.nextActive(seat)
	return Result{RoundComplete: t.IsRoundComplete()}, nil
}

// IsRoundComplete returns true once every live player is either all-in or
// has acted and matched the current bet
func (t *Table) IsRoundComplete() bool {
	for _, p := range t.livePlayers() {
		if p.AllIn() {
			continue
		}

		if !p.Acted || p.Bet != t.toCall {
			return false
		}
	}

	return true
}
