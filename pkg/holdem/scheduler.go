package holdem

import (
	"sync"
	"time"
)

// Scheduler sequences delayed work for a session: bot thinking delays,
// inter-street pauses and the turn countdown. Every scheduled callback
// captures the generation current at schedule time; StopAll advances the
// generation, so a callback that fires late runs into the guard and does
// nothing. This is what makes pause, menu-open and resets race-free even
// though timers expire on their own goroutines.
type Scheduler struct {
	mu         sync.Mutex
	generation uint64

	// exec funnels a callback onto the owner's run loop so all state
	// mutation stays serialized
	exec func(fn func())
}

func newScheduler(exec func(fn func())) *Scheduler {
	return &Scheduler{exec: exec}
}

// Generation returns the current generation token
func (s *Scheduler) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.generation
}

// StopAll invalidates every pending callback
func (s *Scheduler) StopAll() {
	s.mu.Lock()
	s.generation++
	s.mu.Unlock()
}

// After runs fn on the owner's run loop once the delay elapses, unless
// StopAll has been called in the meantime
func (s *Scheduler) After(d time.Duration, fn func()) {
	gen := s.Generation()

	time.AfterFunc(d, func() {
		s.exec(func() {
			if s.Generation() != gen {
				return
			}

			fn()
		})
	})
}

// Every runs fn on the owner's run loop once per interval for as long as fn
// returns true and the generation is unchanged
func (s *Scheduler) Every(d time.Duration, fn func() bool) {
	s.After(d, func() {
		if fn() {
			s.Every(d, fn)
		}
	})
}
