package holdem

import (
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// memStore records every saved snapshot
type memStore struct {
	mu    sync.Mutex
	saves []Snapshot
}

func (m *memStore) Save(snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saves = append(m.saves, snap)
	return nil
}

func (m *memStore) last() (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.saves) == 0 {
		return Snapshot{}, false
	}

	return m.saves[len(m.saves)-1], true
}

// slowOptions pushes every pacing delay out to an hour so nothing fires on
// its own while a test inspects state
func slowOptions() Options {
	opts := DefaultOptions()
	opts.BotThinkDelay = time.Hour
	opts.StreetPause = time.Hour
	opts.NextHandPause = time.Hour
	opts.ChampionPause = time.Hour
	return opts
}

func setupSession(t *testing.T, store Store) *Session {
	t.Helper()

	s, err := NewSession(logrus.StandardLogger(), slowOptions(), "Kate", nil, store)
	assert.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestNewSession(t *testing.T) {
	store := &memStore{}
	s := setupSession(t, store)

	snap := s.Snapshot()
	a := assert.New(t)
	a.Equal(SnapshotVersion, snap.Version)
	a.Equal("Kate", snap.Nickname)
	a.Equal(15, snap.TurnSeconds)
	a.True(snap.Paused)
	a.Equal("paused", snap.RunMode)
	a.False(snap.Game.HandInProgress)
	a.NotEqual("", s.ID())

	// session creation persists immediately
	saved, ok := store.last()
	a.True(ok)
	a.True(saved.Paused)
}

func TestNewSession_restoresTurnSeconds(t *testing.T) {
	table := setupTable(t)
	restored := &Snapshot{
		Version:     SnapshotVersion,
		TurnSeconds: 5,
		Game:        table.gameSnapshot(),
	}

	s, err := NewSession(logrus.StandardLogger(), slowOptions(), "Kate", restored, nil)
	assert.NoError(t, err)
	defer s.Close()

	assert.Equal(t, 5, s.Snapshot().TurnSeconds)

	// out-of-range persisted values fall back to the configured default
	restored.TurnSeconds = 99
	s2, err := NewSession(logrus.StandardLogger(), slowOptions(), "Kate", restored, nil)
	assert.NoError(t, err)
	defer s2.Close()

	assert.Equal(t, 15, s2.Snapshot().TurnSeconds)
}

func TestSession_ResumeStartsHand(t *testing.T) {
	s := setupSession(t, nil)
	s.Resume()

	snap := s.Snapshot()
	a := assert.New(t)
	a.Equal("running", snap.RunMode)
	a.False(snap.Paused)
	a.True(snap.Game.HandInProgress)
	a.Equal(StagePreflop, snap.Game.Stage)
	a.Equal(30, snap.Game.Pot)

	s.Pause()
	snap = s.Snapshot()
	a.Equal("paused", snap.RunMode)
	a.True(snap.Paused)

	// pausing does not abandon the hand
	a.True(snap.Game.HandInProgress)
}

func TestSession_HumanActionIgnoredWhilePaused(t *testing.T) {
	s := setupSession(t, nil)
	s.Resume()
	s.Pause()

	before := s.Snapshot()
	s.HumanAction(ActionFold, 0)

	after := s.Snapshot()
	assert.Equal(t, before.Game.Pot, after.Game.Pot)
	assert.False(t, after.Game.Players[0].Folded)
}

func TestSession_HumanActionIgnoredOutOfTurn(t *testing.T) {
	s := setupSession(t, nil)
	s.Resume()

	// seat 4 acts first in the opening hand
	assert.Equal(t, 4, s.Snapshot().Game.Current)

	s.HumanAction(ActionFold, 0)
	assert.False(t, s.Snapshot().Game.Players[0].Folded)
}

func TestSession_HumanActionApplies(t *testing.T) {
	s := setupSession(t, nil)
	s.Resume()

	// force the action onto the human seat
	s.do(func() { s.table.current = 0 })

	s.HumanAction(ActionCall, 0)
	snap := s.Snapshot()
	assert.Equal(t, "Kate calls 20", snap.Message)
	assert.Equal(t, 50, snap.Game.Pot)
	assert.Equal(t, 980, snap.Game.Players[0].Chips)
}

func TestSession_timeoutAttribution(t *testing.T) {
	s := setupSession(t, nil)
	s.Resume()

	s.do(func() {
		s.table.current = 0
		s.applyAction(0, ActionFold, 0, true)
	})

	assert.Equal(t, "Kate auto-fold (timeout)", s.Snapshot().Message)
	assert.True(t, s.Snapshot().Game.Players[0].Folded)
}

func TestSession_SetTurnSeconds(t *testing.T) {
	s := setupSession(t, nil)

	s.SetTurnSeconds(10)
	assert.Equal(t, 10, s.Snapshot().TurnSeconds)

	s.SetTurnSeconds(11)
	assert.Equal(t, 10, s.Snapshot().TurnSeconds)
}

func TestSession_menuSuspendsAndRestores(t *testing.T) {
	s := setupSession(t, nil)
	s.Resume()

	s.OpenMenu()
	snap := s.Snapshot()
	assert.Equal(t, "menu", snap.RunMode)
	assert.True(t, snap.Paused)

	s.CloseMenu()
	snap = s.Snapshot()
	assert.Equal(t, "running", snap.RunMode)

	// closing a menu that was opened while paused stays paused
	s.Pause()
	s.OpenMenu()
	s.CloseMenu()
	assert.Equal(t, "paused", s.Snapshot().RunMode)
}

func TestSession_ResetTournament(t *testing.T) {
	s := setupSession(t, nil)
	s.Resume()
	s.Pause()

	s.do(func() { s.table.players[0].Chips = 1 })
	s.ResetTournament()

	snap := s.Snapshot()
	assert.Equal(t, 1000, snap.Game.Players[0].Chips)
	assert.False(t, snap.Game.HandInProgress)
}

func TestSession_snapshotRaiseBoundsAndHero(t *testing.T) {
	s := setupSession(t, nil)
	s.Resume()
	s.do(func() { s.table.current = 0 })

	snap := s.Snapshot()
	a := assert.New(t)
	if a.NotNil(snap.RaiseBounds) {
		a.Equal(40, snap.RaiseBounds.Min)
		a.Equal(1000, snap.RaiseBounds.Max)
		a.Equal(520, snap.RaiseBounds.Default)
	}

	if a.NotNil(snap.Hero) {
		if a.NotNil(snap.Hero.WinPct) {
			a.GreaterOrEqual(*snap.Hero.WinPct, 0)
			a.LessOrEqual(*snap.Hero.WinPct, 100)
		}

		// preflop there is no five-card hand to name yet
		a.Equal("", snap.Hero.HandName)
	}
}

func TestSession_persistedSnapshotAlwaysPaused(t *testing.T) {
	store := &memStore{}
	s := setupSession(t, store)
	s.Resume()

	store.mu.Lock()
	saves := append([]Snapshot{}, store.saves...)
	store.mu.Unlock()

	assert.NotEmpty(t, saves)
	for _, snap := range saves {
		assert.True(t, snap.Paused)
		assert.Equal(t, "paused", snap.RunMode)
	}
}

func TestSession_resumeAtShowdownAwardsPot(t *testing.T) {
	opts := slowOptions()
	opts.StreetPause = time.Millisecond

	s, err := NewSession(logrus.StandardLogger(), opts, "Kate", nil, nil)
	assert.NoError(t, err)
	t.Cleanup(s.Close)

	s.Resume()

	// park the hand in the window after river betting where the showdown
	// timer has not fired yet
	s.do(func() {
		for i := 0; i < 3; i++ {
			showdown, err := s.table.AdvanceStreet()
			assert.NoError(t, err)
			assert.False(t, showdown)
		}

		showdown, err := s.table.AdvanceStreet()
		assert.NoError(t, err)
		assert.True(t, showdown)
	})

	s.Pause()
	s.Resume()

	assert.Eventually(t, func() bool {
		snap := s.Snapshot()
		return !snap.Game.HandInProgress && snap.Game.Pot == 0
	}, 5*time.Second, 10*time.Millisecond, "showdown never resolved")

	snap := s.Snapshot()
	total := snap.Game.Pot
	for _, p := range snap.Game.Players {
		total += p.Chips
	}

	assert.Equal(t, 6000, total)
	assert.Contains(t, snap.Message, "Winner")
}

func TestSession_turnTimerAutoFold(t *testing.T) {
	opts := slowOptions()
	opts.TickInterval = time.Millisecond
	opts.TurnSeconds = 5

	s, err := NewSession(logrus.StandardLogger(), opts, "Kate", nil, nil)
	assert.NoError(t, err)
	t.Cleanup(s.Close)

	s.Resume()

	// facing the big blind, the expiring countdown folds the hero
	s.do(func() {
		s.table.current = 0
		s.tick()
	})

	assert.Eventually(t, func() bool {
		return s.Snapshot().Game.Players[0].Folded
	}, 5*time.Second, 10*time.Millisecond, "countdown never folded the hero")

	assert.Equal(t, "Kate auto-fold (timeout)", s.Snapshot().Message)
}

func TestSession_turnTimerAutoCheck(t *testing.T) {
	opts := slowOptions()
	opts.TickInterval = time.Millisecond
	opts.TurnSeconds = 5

	s, err := NewSession(logrus.StandardLogger(), opts, "Kate", nil, nil)
	assert.NoError(t, err)
	t.Cleanup(s.Close)

	s.Resume()

	// on the flop nothing is owed, so the expiring countdown checks
	s.do(func() {
		showdown, err := s.table.AdvanceStreet()
		assert.NoError(t, err)
		assert.False(t, showdown)

		s.table.current = 0
		s.tick()
	})

	assert.Eventually(t, func() bool {
		return s.Snapshot().Game.Players[0].Acted
	}, 5*time.Second, 10*time.Millisecond, "countdown never checked for the hero")

	assert.Equal(t, "Kate auto-check (timeout)", s.Snapshot().Message)
	assert.False(t, s.Snapshot().Game.Players[0].Folded)
}

func TestSession_timeoutFoldKeepsWinBanner(t *testing.T) {
	s := setupSession(t, nil)
	s.Resume()

	s.do(func() {
		for i := 2; i < 6; i++ {
			s.table.players[i].Folded = true
		}

		s.table.current = 0
		s.applyAction(0, ActionFold, 0, true)
	})

	snap := s.Snapshot()
	assert.Equal(t, "BOT1 wins 30 (all folded)", snap.Message)
	assert.False(t, snap.Game.HandInProgress)
	assert.Equal(t, 1030, snap.Game.Players[1].Chips)
}

func TestSession_botsPlayThroughToHuman(t *testing.T) {
	opts := slowOptions()
	opts.BotThinkDelay = time.Millisecond
	opts.StreetPause = time.Millisecond
	opts.NextHandPause = 5 * time.Millisecond

	s, err := NewSession(logrus.StandardLogger(), opts, "Kate", nil, nil)
	assert.NoError(t, err)
	defer s.Close()

	s.Resume()

	assert.Eventually(t, func() bool {
		snap := s.Snapshot()
		return snap.Game.HandInProgress && snap.Game.Current == 0
	}, 5*time.Second, 10*time.Millisecond, "bots never passed the action to the human")

	s.Pause()
	assert.True(t, s.Snapshot().Paused)
}
