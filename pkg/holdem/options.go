package holdem

import (
	"errors"
	"time"
)

// TurnSecondsOptions are the turn-timer durations a player may pick from
var TurnSecondsOptions = []int{5, 10, 15, 20}

// DefaultTurnSeconds is the turn-timer duration used when none is configured
const DefaultTurnSeconds = 15

// Options configures a tournament
type Options struct {
	StartingChips int
	SmallBlind    int
	BigBlind      int
	BotCount      int
	MaxRaises     int
	TurnSeconds   int

	// pacing delays
	BotThinkDelay time.Duration
	StreetPause   time.Duration
	NextHandPause time.Duration
	ChampionPause time.Duration

	// TickInterval is the turn-countdown resolution
	TickInterval time.Duration
}

// DefaultOptions returns the standard tournament setup: six seats, 1000
// starting chips, 10/20 blinds, four raises per round
func DefaultOptions() Options {
	return Options{
		StartingChips: 1000,
		SmallBlind:    10,
		BigBlind:      20,
		BotCount:      5,
		MaxRaises:     4,
		TurnSeconds:   DefaultTurnSeconds,

		BotThinkDelay: 450 * time.Millisecond,
		StreetPause:   850 * time.Millisecond,
		NextHandPause: 1200 * time.Millisecond,
		ChampionPause: 2 * time.Second,
		TickInterval:  time.Second,
	}
}

func validateOptions(opts Options) error {
	if opts.StartingChips <= 0 {
		return errors.New("starting chips must be > 0")
	}

	if opts.SmallBlind <= 0 || opts.BigBlind < opts.SmallBlind {
		return errors.New("blinds must satisfy 0 < small <= big")
	}

	if opts.BotCount < 1 {
		return errors.New("there must be at least one bot")
	}

	if opts.MaxRaises < 1 {
		return errors.New("max raises must be >= 1")
	}

	return nil
}

// ValidTurnSeconds returns true if the value is one of the allowed options
func ValidTurnSeconds(seconds int) bool {
	for _, v := range TurnSecondsOptions {
		if v == seconds {
			return true
		}
	}

	return false
}
