package gateway

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"vozbot/internal/notify"
	"vozbot/internal/transcript"
)

// clientMessage is one JSON frame received from the browser. Types:
// "start", "interim", "final", "action", "field", "mic", "listen",
// "speech_error", "bye".
type clientMessage struct {
	Type string `json:"type"`
	// interim/final
	Text string `json:"text,omitempty"`
	// action
	Action string `json:"action,omitempty"`
	// field
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
	// mic and listen
	Enabled bool `json:"enabled,omitempty"`
	// speech_error
	Code string `json:"code,omitempty"`
	// start: current client form values, used to seed the session
	Fields map[string]string `json:"fields,omitempty"`
}

// serverMessage is one JSON frame sent to the browser. Types: "message",
// "caption", "highlight", "set_field", "notice", "action", "status".
// Synthesized audio travels separately as binary frames.
type serverMessage struct {
	Type string `json:"type"`
	// message
	Role string `json:"role,omitempty"`
	At   string `json:"at,omitempty"`
	// message/caption/notice
	Text string `json:"text,omitempty"`
	// highlight
	Target string `json:"target,omitempty"`
	// set_field
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
	// notice presentation
	Kind       string `json:"kind,omitempty"`
	Icon       string `json:"icon,omitempty"`
	Color      string `json:"color,omitempty"`
	DurationMs int64  `json:"durationMs,omitempty"`
	// action
	Action string `json:"action,omitempty"`
	Label  string `json:"label,omitempty"`
	// status
	Status string `json:"status,omitempty"`
}

// conn adapts one websocket connection into the session's presentation
// surface and audio sink. Writes come from the session goroutine, scheduled
// timers and the synthesis stream, so every write is serialized on a mutex.
type conn struct {
	mu     sync.Mutex
	ws     *websocket.Conn
	logger *zap.Logger
}

func newConn(ws *websocket.Conn, logger *zap.Logger) *conn {
	return &conn{ws: ws, logger: logger}
}

func (c *conn) send(m serverMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ws.WriteJSON(m); err != nil {
		c.logger.Debug("ws write failed", zap.String("type", m.Type), zap.Error(err))
	}
}

func (c *conn) RenderMessage(e transcript.Entry) {
	c.send(serverMessage{Type: "message", Role: string(e.Role), Text: e.Text, At: e.At})
}

func (c *conn) ShowCaption(text string) {
	c.send(serverMessage{Type: "caption", Text: text})
}

func (c *conn) Highlight(id string) {
	c.send(serverMessage{Type: "highlight", Target: id})
}

func (c *conn) SetFieldValue(name, value string) {
	c.send(serverMessage{Type: "set_field", Field: name, Value: value})
}

func (c *conn) ShowNotice(kind notify.Kind, text string) {
	c.send(serverMessage{
		Type:       "notice",
		Kind:       string(kind),
		Text:       text,
		Icon:       kind.Icon(),
		Color:      kind.Color(),
		DurationMs: notify.Duration.Milliseconds(),
	})
}

func (c *conn) OfferAction(action, label string) {
	c.send(serverMessage{Type: "action", Action: action, Label: label})
}

func (c *conn) SetStatus(status string) {
	c.send(serverMessage{Type: "status", Status: status})
}

// WriteAudio forwards one synthesized audio frame as a binary message.
func (c *conn) WriteAudio(frame []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ws.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		c.logger.Debug("ws audio write failed", zap.Error(err))
	}
}

func (c *conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.Close()
}
