package mux

import (
	"net/http"
	"time"

	gmux "github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"sixmax-holdem/pkg/holdem"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

// wsPayload is the message format from the UI
type wsPayload struct {
	Action  string `json:"action"`
	Amount  int    `json:"amount"`
	Seconds int    `json:"seconds"`
}

// getSessionWS upgrades to a websocket that pushes a snapshot after every
// engine event and accepts action payloads from the input layer
func (m *Mux) getSessionWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := m.session(gmux.Vars(r)["uuid"])
		if !ok {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		closed := make(chan struct{})
		defer func() {
			close(closed)
			_ = conn.Close()
		}()

		go m.webSocketWriteLoop(conn, sess, closed)
		m.webSocketReadLoop(conn, sess)
	}
}

func (m *Mux) webSocketWriteLoop(conn *websocket.Conn, sess *holdem.Session, closed <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case snap := <-sess.Updates():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(snap); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}

func (m *Mux) webSocketReadLoop(conn *websocket.Conn, sess *holdem.Session) {
	for {
		var payload wsPayload
		if err := conn.ReadJSON(&payload); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.WithError(err).Debug("websocket closed unexpectedly")
			}

			return
		}

		m.dispatch(sess, payload)
	}
}

// dispatch maps a payload onto the session's action surface. Unknown or
// illegal actions are no-ops; the engine re-validates everything anyway
func (m *Mux) dispatch(sess *holdem.Session, payload wsPayload) {
	switch payload.Action {
	case "pause":
		sess.Pause()
	case "resume":
		sess.Resume()
	case "openMenu":
		sess.OpenMenu()
	case "closeMenu":
		sess.CloseMenu()
	case "setTurnSeconds":
		sess.SetTurnSeconds(payload.Seconds)
	case "resetTournament":
		sess.ResetTournament()
	default:
		action, err := holdem.ActionFromString(payload.Action)
		if err != nil {
			logrus.WithField("action", payload.Action).Debug("ignoring unknown action")
			return
		}

		sess.HumanAction(action, payload.Amount)
	}
}
