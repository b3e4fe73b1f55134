package holdem

import (
	"fmt"
	"strings"
)

// Action is a betting action a player can take
type Action string

// action constants
const (
	ActionFold  Action = "fold"
	ActionCheck Action = "check"
	ActionCall  Action = "call"
	ActionRaise Action = "raise"
)

var validActions = map[Action]bool{
	ActionFold:  true,
	ActionCheck: true,
	ActionCall:  true,
	ActionRaise: true,
}

// ActionFromString returns the action for the name
func ActionFromString(s string) (Action, error) {
	a := Action(strings.ToLower(s))
	if _, ok := validActions[a]; ok {
		return a, nil
	}

	return "", fmt.Errorf("invalid action: %s", s)
}
