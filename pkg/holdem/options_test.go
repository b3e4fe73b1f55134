package holdem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	a := assert.New(t)
	a.Equal(1000, opts.StartingChips)
	a.Equal(10, opts.SmallBlind)
	a.Equal(20, opts.BigBlind)
	a.Equal(5, opts.BotCount)
	a.Equal(4, opts.MaxRaises)
	a.Equal(15, opts.TurnSeconds)
	a.Equal(450*time.Millisecond, opts.BotThinkDelay)
	a.Equal(850*time.Millisecond, opts.StreetPause)
	a.Equal(time.Second, opts.TickInterval)

	a.NoError(validateOptions(opts))
}

func TestValidTurnSeconds(t *testing.T) {
	for _, v := range []int{5, 10, 15, 20} {
		assert.True(t, ValidTurnSeconds(v))
	}

	assert.False(t, ValidTurnSeconds(0))
	assert.False(t, ValidTurnSeconds(12))
	assert.False(t, ValidTurnSeconds(-5))
}
