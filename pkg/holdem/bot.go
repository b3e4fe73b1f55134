package holdem

import (
	"sixmax-holdem/internal/rng"
	"sixmax-holdem/pkg/poker"
)

// botPolicy is a heuristic decision function for the scripted opponents.
// It is intentionally noisy and weighted toward passivity: mostly
// check/call, occasional raises, folds under pressure with weak holdings
type botPolicy struct {
	gen rng.Generator
}

// decide picks an action for the seat. For a raise, the second return value
// is the target amount
func (b *botPolicy) decide(t *Table, seat int) (Action, int) {
	p := t.players[seat]
	owed := p.Owes(t.toCall)

	stack := p.Chips
	if stack < 1 {
		stack = 1
	}
	pressure := float64(owed) / float64(stack+1)

	canRaise := t.raisesThisRound < t.options.MaxRaises

	var strength float64
	if t.stage == StagePreflop {
		strength = b.preflopScore(p)
	} else {
		ranking, _ := poker.BestOfSeven(append(p.Hand.Clone(), t.board...))
		strength = float64(ranking.Category)/float64(poker.StraightFlush) + (b.gen.Float64()-0.5)*0.10
	}

	if owed == 0 {
		if strength > 0.62 && canRaise && b.gen.Float64() < 0.25 {
			return ActionRaise, b.raiseTarget(t, p)
		}

		return ActionCheck, 0
	}

	if strength < 0.30 && pressure > 0.13 && b.gen.Float64() < 0.82 {
		return ActionFold, 0
	}

	if strength > 0.75 && canRaise && b.gen.Float64() < 0.35 {
		return ActionRaise, b.raiseTarget(t, p)
	}

	return ActionCall, 0
}

// preflopScore rates a starting hand on pairs, high cards, suitedness and
// connectedness, with a little noise so bots do not play identically
func (b *botPolicy) preflopScore(p *Player) float64 {
	a, c := p.Hand[0], p.Hand[1]

	high := a.Rank
	if c.Rank > high {
		high = c.Rank
	}

	gap := a.Rank - c.Rank
	if gap < 0 {
		gap = -gap
	}

	score := (float64(high) / 14) * 0.30
	if a.Rank == c.Rank {
		score += 0.55
	}
	if a.Suit == c.Suit {
		score += 0.08
	}
	if gap <= 2 {
		score += 0.06
	}
	score += (b.gen.Float64() - 0.5) * 0.06

	return score
}

// raiseTarget sizes a raise between the minimum and two big blinds over it,
// clamped by the stack
func (b *botPolicy) raiseTarget(t *Table, p *Player) int {
	target := t.MinRaiseTo() + b.gen.Intn(3)*t.options.BigBlind
	if target > p.MaxRaiseTo() {
		target = p.MaxRaiseTo()
	}

	return target
}
