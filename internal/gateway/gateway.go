// Package gateway terminates the browser websocket: it upgrades the HTTP
// request, binds the connection to a live session and pumps client events
// into it. The browser owns capture and recognition; the gateway only moves
// their results and the session's presentation commands across the wire.
package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"vozbot/internal/session"
	"vozbot/internal/speech"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  65536,
	WriteBufferSize: 65536,
	CheckOrigin: func(r *http.Request) bool {
		// Allow any origin for demo use; restrict in production
		return true
	},
}

// SpeechConfig carries what the gateway needs to build a synthesizer per
// connection. An empty APIKey yields text-only sessions.
type SpeechConfig struct {
	APIKey string
	Model  string
	Locale string
}

// Handler owns the websocket endpoint.
type Handler struct {
	manager *session.Manager
	speech  SpeechConfig
	delays  session.Delays
	logger  *zap.Logger
}

// NewHandler builds the websocket endpoint. Zero-value delays get the
// production pacing.
func NewHandler(manager *session.Manager, sc SpeechConfig, delays session.Delays, logger *zap.Logger) *Handler {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Handler{
		manager: manager,
		speech:  sc,
		delays:  delays,
		logger:  logger.With(zap.String("component", "gateway")),
	}
}

// ServeHTTP upgrades to a websocket and runs the read pump until the client
// says bye or the connection drops. One connection maps to one session.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	c := newConn(ws, h.logger)
	sess := h.manager.Create(session.Config{
		Presenter: c,
		Logger:    h.logger,
		Delays:    h.delays,
	})
	sess.UseSynthesizer(speech.New(
		h.speech.APIKey, h.speech.Model, h.speech.Locale,
		c, sess.HandleSpeechStatus,
		h.logger.With(zap.String("session", sess.ID())),
	))
	h.logger.Info("client connected", zap.String("session", sess.ID()))

	defer func() {
		h.manager.Remove(sess.ID())
		c.Close()
		h.logger.Info("client disconnected", zap.String("session", sess.ID()))
	}()

	for {
		mt, data, err := ws.ReadMessage()
		if err != nil {
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		var m clientMessage
		if err := json.Unmarshal(data, &m); err != nil {
			h.logger.Debug("bad client frame", zap.Error(err))
			continue
		}
		if done := h.dispatch(sess, m); done {
			return
		}
	}
}

// dispatch routes one client frame into the session. Returns true when the
// connection should close.
func (h *Handler) dispatch(sess *session.Session, m clientMessage) bool {
	switch m.Type {
	case "start":
		sess.Start(m.Fields)
	case "interim":
		sess.HandleInterim(m.Text)
	case "final":
		sess.HandleFinal(m.Text)
	case "action":
		sess.HandleAction(session.Action(m.Action))
	case "field":
		sess.HandleFieldInput(m.Field, m.Value)
	case "mic":
		sess.SetMicrophone(m.Enabled)
	case "listen":
		if m.Enabled {
			sess.StartListening()
		} else {
			sess.StopListening()
		}
	case "speech_error":
		sess.HandleSpeechError(m.Code)
	case "bye":
		return true
	default:
		h.logger.Debug("unknown client frame", zap.String("type", m.Type))
	}
	return false
}
