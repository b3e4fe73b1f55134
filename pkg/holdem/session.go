package holdem

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sixmax-holdem/internal/rng"
	"sixmax-holdem/pkg/deck"
	"sixmax-holdem/pkg/poker"
	"sixmax-holdem/pkg/poker/equity"
)

// RunMode gates whether any timer-driven transition may fire
type RunMode int

// constants for RunMode
const (
	ModePaused RunMode = iota
	ModeMenuOpen
	ModeRunning
)

func (m RunMode) String() string {
	switch m {
	case ModePaused:
		return "paused"
	case ModeMenuOpen:
		return "menu"
	case ModeRunning:
		return "running"
	}

	return ""
}

// Store persists session snapshots
type Store interface {
	Save(snap Snapshot) error
}

// Session owns one tournament and drives it: it validates and applies
// actions, sequences bot turns and street pauses through the scheduler, and
// persists a snapshot after every change. All mutation runs on a single
// run-loop goroutine, so no two actions can ever interleave
type Session struct {
	id    string
	log   logrus.FieldLogger
	opts  Options
	table *Table
	store Store
	sched *Scheduler
	gen   rng.Generator
	bots  *botPolicy

	mode           RunMode
	modeBeforeMenu RunMode
	turnSeconds    int
	turnLeft       int

	exec      chan func()
	done      chan struct{}
	closeOnce sync.Once

	updates chan Snapshot
}

// NewSession creates a session for the nickname. If restored is non-nil its
// game state is loaded (defensively coerced); otherwise a fresh tournament
// is seated. Sessions always begin paused
func NewSession(log logrus.FieldLogger, opts Options, nickname string, restored *Snapshot, store Store) (*Session, error) {
	turnSeconds := opts.TurnSeconds
	if !ValidTurnSeconds(turnSeconds) {
		turnSeconds = DefaultTurnSeconds
	}

	var table *Table
	var err error
	if restored != nil {
		table, err = RestoreTable(opts, restored.Game, nickname)
		if ValidTurnSeconds(restored.TurnSeconds) {
			turnSeconds = restored.TurnSeconds
		}
	} else {
		table, err = NewTable(opts, nickname)
	}
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:          uuid.New().String(),
		log:         log.WithField("nickname", nickname),
		opts:        opts,
		table:       table,
		store:       store,
		gen:         rng.Crypto{},
		mode:        ModePaused,
		turnSeconds: turnSeconds,
		turnLeft:    turnSeconds,
		exec:        make(chan func(), 64),
		done:        make(chan struct{}),
		updates:     make(chan Snapshot, 64),
	}

	s.sched = newScheduler(s.runOn)
	s.bots = &botPolicy{gen: s.gen}

	go s.run()
	s.do(s.notifyAndSave)
	return s, nil
}

// ID returns the session's unique id
func (s *Session) ID() string {
	return s.id
}

// Updates returns a channel of snapshots pushed after every state change.
// Snapshots are dropped, not blocked on, if the consumer falls behind
func (s *Session) Updates() <-chan Snapshot {
	return s.updates
}

// Close stops the run loop and invalidates all timers
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.sched.StopAll()
		close(s.done)
	})
}

func (s *Session) run() {
	for {
		select {
		case fn := <-s.exec:
			fn()
		case <-s.done:
			return
		}
	}
}

// runOn queues fn for the run loop
func (s *Session) runOn(fn func()) {
	select {
	case s.exec <- fn:
	case <-s.done:
	}
}

// do queues fn and waits for it to finish
func (s *Session) do(fn func()) {
	finished := make(chan struct{})
	s.runOn(func() {
		fn()
		close(finished)
	})

	select {
	case <-finished:
	case <-s.done:
	}
}

// Snapshot returns the current state
func (s *Session) Snapshot() Snapshot {
	var snap Snapshot
	s.do(func() {
		snap = s.snapshotLocked()
	})

	return snap
}

// HumanAction applies an action for the human seat. It is a no-op unless
// the engine is running and it is exactly the human's turn
func (s *Session) HumanAction(action Action, amount int) {
	s.do(func() {
		if s.mode != ModeRunning {
			s.log.WithField("action", action).Debug("ignoring action while not running")
			return
		}

		if !s.table.handInProgress || s.table.current != 0 {
			s.log.WithField("action", action).Debug("ignoring out-of-turn action")
			return
		}

		s.applyAction(0, action, amount, false)
	})
}

// OpenMenu stops all pending timers and opens the menu
func (s *Session) OpenMenu() {
	s.do(func() {
		if s.mode == ModeMenuOpen {
			return
		}

		s.modeBeforeMenu = s.mode
		s.mode = ModeMenuOpen
		s.sched.StopAll()
		s.notifyAndSave()
	})
}

// CloseMenu restores the mode the session was in before the menu opened
func (s *Session) CloseMenu() {
	s.do(func() {
		if s.mode != ModeMenuOpen {
			return
		}

		s.mode = s.modeBeforeMenu
		if s.mode == ModeRunning {
			s.tick()
		}

		s.notifyAndSave()
	})
}

// Pause halts play. No timer-driven transition can fire while paused
func (s *Session) Pause() {
	s.do(func() {
		s.mode = ModePaused
		s.sched.StopAll()
		s.notifyAndSave()
	})
}

// Resume starts or continues play
func (s *Session) Resume() {
	s.do(func() {
		s.mode = ModeRunning
		s.modeBeforeMenu = ModeRunning
		s.sched.StopAll()

		if !s.table.handInProgress || s.table.stage == StageIdle {
			s.startHand()
			return
		}

		s.tick()
	})
}

// SetTurnSeconds sets the human's turn-timer duration. Values outside the
// allowed options are ignored
func (s *Session) SetTurnSeconds(seconds int) {
	s.do(func() {
		if !ValidTurnSeconds(seconds) {
			s.log.WithField("seconds", seconds).Debug("ignoring invalid turn seconds")
			return
		}

		s.turnSeconds = seconds
		s.notifyAndSave()
	})
}

// ResetTournament wipes everyone back to the starting stack
func (s *Session) ResetTournament() {
	s.do(func() {
		s.sched.StopAll()
		s.table.ResetTournament()
		s.notifyAndSave()

		if s.mode == ModeRunning {
			s.startHand()
		}
	})
}

// startHand begins the next hand, or declares the champion and schedules a
// full tournament reset
func (s *Session) startHand() {
	if s.mode != ModeRunning {
		return
	}

	s.table.sweepEliminations()
	if champ := s.table.Champion(); champ != nil {
		s.table.message = fmt.Sprintf("CHAMPION: %s!", champ.Name)
		s.notifyAndSave()

		s.sched.StopAll()
		s.sched.After(s.opts.ChampionPause, func() {
			s.table.ResetTournament()
			s.notifyAndSave()
			s.startHand()
		})
		return
	}

	if err := s.table.StartHand(); err != nil {
		s.safeReset(err)
		return
	}

	s.notifyAndSave()
	s.tick()
}

// tick decides what happens next: start a hand, wait on the human with a
// countdown, or schedule a bot decision
func (s *Session) tick() {
	s.sched.StopAll()

	if s.mode != ModeRunning {
		return
	}

	if !s.table.handInProgress || s.table.stage == StageIdle {
		s.startHand()
		return
	}

	// a pause can land between river completion and the showdown firing
	if s.table.stage == StageShowdown {
		s.sched.After(s.opts.StreetPause, s.showdown)
		s.notify()
		return
	}

	if !s.table.players[s.table.current].Live() {
		s.table.current = s.table.nextActive(s.table.current)
	}

	if s.table.players[s.table.current].IsBot {
		s.sched.After(s.opts.BotThinkDelay, s.botAct)
		s.notify()
		return
	}

	s.startTurnTimer()
	s.notify()
}

// startTurnTimer runs the once-per-second countdown for the human's turn.
// At zero the engine checks if nothing is owed, otherwise folds, attributed
// to the timeout
func (s *Session) startTurnTimer() {
	s.turnLeft = s.turnSeconds

	interval := s.opts.TickInterval
	if interval <= 0 {
		interval = time.Second
	}

	s.sched.Every(interval, func() bool {
		s.turnLeft--
		if s.turnLeft > 0 {
			s.notify()
			return true
		}

		hero := s.table.players[0]
		if hero.Owes(s.table.toCall) == 0 {
			s.applyAction(0, ActionCheck, 0, true)
		} else {
			s.applyAction(0, ActionFold, 0, true)
		}

		return false
	})
}

// botAct makes a decision for the current bot seat
func (s *Session) botAct() {
	if !s.table.handInProgress || s.mode != ModeRunning {
		return
	}

	seat := s.table.current
	if !s.table.players[seat].Live() {
		seat = s.table.nextActive(seat)
		s.table.current = seat
	}

	action, amount := s.bots.decide(s.table, seat)
	s.applyAction(seat, action, amount, false)
}

// applyAction validates and applies one betting action, then sequences
// whatever comes next: the uncontested award, the next street, or the next
// player's turn
func (s *Session) applyAction(seat int, action Action, amount int, byTimeout bool) {
	var res Result
	var err error

	switch action {
	case ActionFold:
		res, err = s.table.Fold(seat)
	case ActionCheck:
		res, err = s.table.Check(seat)
	case ActionCall:
		res, err = s.table.Call(seat)
	case ActionRaise:
		res, err = s.table.RaiseTo(seat, amount)
	default:
		err = fmt.Errorf("invalid action: %s", action)
	}

	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"seat":   seat,
			"action": action,
		}).Debug("rejected action")
		return
	}

	// a timeout fold that ends the hand keeps the win banner
	if byTimeout && !res.HandEnded {
		s.table.message = fmt.Sprintf("%s auto-%s (timeout)", s.table.players[seat].Name, action)
	}

	s.sched.StopAll()

	if res.HandEnded {
		s.notifyAndSave()
		s.sched.After(s.opts.NextHandPause, s.startHand)
		return
	}

	if res.RoundComplete {
		s.notifyAndSave()
		s.scheduleAdvance()
		return
	}

	s.notifyAndSave()
	s.tick()
}

// scheduleAdvance moves to the next street after the inter-street pause
func (s *Session) scheduleAdvance() {
	s.sched.After(s.opts.StreetPause, func() {
		showdown, err := s.table.AdvanceStreet()
		if err != nil {
			s.safeReset(err)
			return
		}

		s.notifyAndSave()

		if showdown {
			s.sched.After(s.opts.StreetPause, s.showdown)
			return
		}

		s.tick()
	})
}

func (s *Session) showdown() {
	s.table.Showdown()
	s.notifyAndSave()

	s.sched.StopAll()
	s.sched.After(s.opts.NextHandPause, s.startHand)
}

// safeReset recovers from an internal invariant violation (e.g. an
// exhausted deck in a corrupted restore) by abandoning the hand. The
// session keeps running; the next tick deals fresh
func (s *Session) safeReset(err error) {
	s.log.WithError(err).Error("invariant violation, abandoning hand")
	s.table.abandonHand()
	s.table.message = "Restarting hand"
	s.notifyAndSave()

	s.sched.StopAll()
	s.sched.After(s.opts.NextHandPause, s.startHand)
}

// notify pushes a snapshot to the updates channel without blocking
func (s *Session) notify() {
	s.push(s.snapshotLocked())
}

func (s *Session) push(snap Snapshot) {
	select {
	case s.updates <- snap:
	default:
	}
}

// notifyAndSave builds one snapshot, pushes it and persists a copy with the
// run mode forced to paused so a reload never auto-resumes play
func (s *Session) notifyAndSave() {
	snap := s.snapshotLocked()
	s.push(snap)

	if s.store == nil {
		return
	}

	snap.Paused = true
	snap.RunMode = ModePaused.String()
	if err := s.store.Save(snap); err != nil {
		s.log.WithError(err).Error("could not persist snapshot")
	}
}

// snapshotLocked builds the display snapshot. Must run on the run loop
func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		Version:     SnapshotVersion,
		Nickname:    s.table.players[0].Name,
		TurnSeconds: s.turnSeconds,
		Paused:      s.mode != ModeRunning,
		Game:        s.table.gameSnapshot(),
		RunMode:     s.mode.String(),
		Message:     s.table.message,
		TurnLeft:    s.turnLeft,
		Hero:        s.heroInfo(),
	}

	if s.table.handInProgress && s.table.current == 0 {
		hero := s.table.players[0]
		min := s.table.MinRaiseTo()
		max := hero.MaxRaiseTo()
		if min > max {
			min = max
		}

		snap.RaiseBounds = &RaiseBounds{
			Min:     min,
			Max:     max,
			Default: (min + max) / 2,
		}
	}

	return snap
}

// heroInfo computes the human's current hand name, best-five highlight and
// estimated win percentage. Returns nil when the hero is not in a hand
func (s *Session) heroInfo() *HeroInfo {
	hero := s.table.players[0]
	if !s.table.handInProgress || !hero.Live() || len(hero.Hand) < 2 {
		return nil
	}

	info := &HeroInfo{}

	cards := append(hero.Hand.Clone(), s.table.board...)
	if len(cards) >= 5 {
		ranking, best5 := poker.BestOfSeven(cards)
		info.HandName = ranking.Category.String()
		info.Best5 = make([]string, len(best5))
		for i, c := range best5 {
			info.Best5[i] = deck.CardToString(c)
		}
	}

	liveOpponents := 0
	for i, p := range s.table.players {
		if i != 0 && p.Live() {
			liveOpponents++
		}
	}

	pct := equity.Estimate(hero.Hand, s.table.board, liveOpponents, s.gen)
	info.WinPct = &pct

	return info
}
