package mux

import (
	"errors"
	"net/http"
	"strings"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"sixmax-holdem/pkg/holdem"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (m *Mux) getHealth() http.HandlerFunc {
	payload := healthResponse{
		Status:  "OK",
		Version: m.version,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, payload)
	}
}

type nicknameResponse struct {
	Nickname string `json:"nickname"`
}

// getNickname returns the most recently used nickname so the UI can
// pre-fill the entry form
func (m *Mux) getNickname() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		nick, ok := m.store.LastNick()
		if !ok {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		writeJSON(w, http.StatusOK, nicknameResponse{Nickname: nick})
	}
}

type postSessionPayload struct {
	Name string `json:"name"`
}

type sessionResponse struct {
	SessionID string          `json:"sessionId"`
	State     holdem.Snapshot `json:"state"`
}

// postSession loads or creates the persisted tournament for the nickname
// and starts a session for it. The session always starts paused
func (m *Mux) postSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postSessionPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		nick := strings.TrimSpace(payload.Name)
		if nick == "" {
			writeJSONError(w, http.StatusBadRequest, errors.New("name is required"))
			return
		}

		restored, _ := m.store.Load(nick)

		sess, err := holdem.NewSession(logrus.StandardLogger(), m.opts, nick, restored, m.store)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		m.register(strings.ToLower(nick), sess)

		writeJSON(w, http.StatusCreated, sessionResponse{
			SessionID: sess.ID(),
			State:     sess.Snapshot(),
		})
	}
}

// getSessionState returns a one-off snapshot for the session
func (m *Mux) getSessionState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := m.session(gmux.Vars(r)["uuid"])
		if !ok {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		writeJSON(w, http.StatusOK, sess.Snapshot())
	}
}
