package api

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"intercept-calc/internal/logging"
	"intercept-calc/internal/problem"
	"intercept-calc/internal/telemetry"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// streamMessage is one websocket message of a streamed trace.
type streamMessage struct {
	Type   string              `json:"type"`
	Frame  *telemetry.FrameRow `json:"frame,omitempty"`
	Result *problem.Result     `json:"result,omitempty"`
	Error  string              `json:"error,omitempty"`
}

type wsFrameWriter struct {
	conn *websocket.Conn
}

func (w wsFrameWriter) Write(row telemetry.FrameRow) error {
	return w.conn.WriteJSON(streamMessage{Type: "frame", Frame: &row})
}

// handleTraceStream expects one JSON message with the problem inputs (an
// empty object keeps the defaults), then streams every frame followed by the
// closed-form result and closes.
func (s *Server) handleTraceStream(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())
	kind := telemetry.Problem(chi.URLParam(r, "problem"))
	if _, err := s.presenterFromBody(nil, kind); err != nil {
		s.fail(w, r, err)
		return
	}
	opts, err := s.traceOptions(r, kind)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	sendErr := func(err error) {
		if werr := conn.WriteJSON(streamMessage{Type: "error", Error: err.Error()}); werr != nil {
			log.Debug("websocket error message not sent", "err", werr)
		}
	}

	_, msg, err := conn.ReadMessage()
	if err != nil {
		log.Debug("websocket closed before inputs", "err", err)
		return
	}
	p, err := s.presenterFromBody(bytes.NewReader(msg), kind)
	if err != nil {
		sendErr(err)
		return
	}
	res, err := p.Recompute()
	if err != nil {
		sendErr(err)
		return
	}
	m, err := p.Model()
	if err != nil {
		sendErr(err)
		return
	}
	if _, err := s.trace(r, m, opts, wsFrameWriter{conn: conn}); err != nil {
		log.Warn("streamed trace failed", "err", err)
		sendErr(err)
		return
	}
	calculationsTotal.WithLabelValues(string(res.Problem), strconv.FormatBool(res.Outcome)).Inc()
	if err := conn.WriteJSON(streamMessage{Type: "result", Result: &res}); err != nil {
		log.Debug("websocket result not sent", "err", err)
		return
	}
	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := conn.WriteMessage(websocket.CloseMessage, closeMsg); err != nil {
		log.Debug("websocket close not sent", "err", err)
	}
}
