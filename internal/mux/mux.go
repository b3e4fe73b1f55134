// Package mux exposes the simulator over HTTP: a session is created for a
// nickname, then driven over a websocket that pushes state snapshots and
// accepts action payloads.
package mux

import (
	"net/http"
	"sync"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"sixmax-holdem/pkg/holdem"
)

// SnapshotStore is the persistence the mux needs: load on session creation,
// save handled by the session itself
type SnapshotStore interface {
	holdem.Store
	Load(nick string) (*holdem.Snapshot, bool)
	LastNick() (string, bool)
}

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	store   SnapshotStore
	opts    holdem.Options

	mu       sync.Mutex
	sessions map[string]*holdem.Session
	byNick   map[string]string
}

// NewMux returns a new HTTP mux
func NewMux(version string, store SnapshotStore, opts holdem.Options) *Mux {
	m := &Mux{
		Router:   gmux.NewRouter(),
		version:  version,
		store:    store,
		opts:     opts,
		sessions: make(map[string]*holdem.Session),
		byNick:   make(map[string]string),
	}

	m.Methods(http.MethodGet).Path("/health").Handler(m.getHealth())
	m.Methods(http.MethodGet).Path("/nickname").Handler(m.getNickname())
	m.Methods(http.MethodPost).Path("/session").Handler(m.postSession())

	sr := m.PathPrefix("/session/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
	sr.Methods(http.MethodGet).Path("/state").Handler(m.getSessionState())
	sr.Methods(http.MethodGet).Path("/ws").Handler(m.getSessionWS())

	return m
}

// session returns the session for the id, if it exists
func (m *Mux) session(id string) (*holdem.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	return s, ok
}

// register stores the session, replacing (and closing) any previous session
// for the same nickname
func (m *Mux) register(nick string, s *holdem.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if oldID, ok := m.byNick[nick]; ok {
		if old, ok := m.sessions[oldID]; ok {
			old.Close()
			delete(m.sessions, oldID)
		}

		logrus.WithField("nickname", nick).Debug("replaced existing session")
	}

	m.sessions[s.ID()] = s
	m.byNick[nick] = s.ID()
}
