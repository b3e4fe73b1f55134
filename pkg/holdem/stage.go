package holdem

import (
	"encoding/json"
	"strings"
)

// Stage represents where a hand is in its lifecycle
type Stage int

// constants for Stage
const (
	StageIdle Stage = iota
	StagePreflop
	StageFlop
	StageTurn
	StageRiver
	StageShowdown
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StagePreflop:
		return "preflop"
	case StageFlop:
		return "flop"
	case StageTurn:
		return "turn"
	case StageRiver:
		return "river"
	case StageShowdown:
		return "showdown"
	}

	return ""
}

// IsBettingStreet returns true if the stage is an open betting street
func (s Stage) IsBettingStreet() bool {
	return s == StagePreflop || s == StageFlop || s == StageTurn || s == StageRiver
}

// MarshalJSON encodes JSON
func (s Stage) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes JSON. Unknown stages decode to StageIdle so a stale
// or hand-edited snapshot can never load into an impossible phase.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		*s = StageIdle
		return nil
	}

	*s = StageFromString(name)
	return nil
}

// StageFromString returns the stage for the name, or StageIdle if unknown
func StageFromString(name string) Stage {
	switch strings.ToLower(name) {
	case "preflop":
		return StagePreflop
	case "flop":
		return StageFlop
	case "turn":
		return StageTurn
	case "river":
		return StageRiver
	case "showdown":
		return StageShowdown
	}

	return StageIdle
}
