package gateway

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vozbot/internal/session"
)

func testDelays() session.Delays {
	return session.Delays{
		WelcomeAdvance: time.Millisecond,
		ExtractFill:    time.Millisecond,
		ExtractAdvance: time.Millisecond,
		NextQuestion:   time.Millisecond,
	}
}

func dialTestServer(t *testing.T) (*websocket.Conn, *session.Manager) {
	t.Helper()
	manager := session.NewManager()
	h := NewHandler(manager, SpeechConfig{}, testDelays(), zap.NewNop())
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws, manager
}

// readUntil reads JSON frames until pred matches one. Tests run without a
// synthesizer, so no binary frames interleave.
func readUntil(t *testing.T, ws *websocket.Conn, pred func(serverMessage) bool) serverMessage {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		_ = ws.SetReadDeadline(deadline)
		var m serverMessage
		if err := ws.ReadJSON(&m); err != nil {
			t.Fatalf("read: %v", err)
		}
		if pred(m) {
			return m
		}
	}
	t.Fatal("timed out waiting for frame")
	return serverMessage{}
}

func send(t *testing.T, ws *websocket.Conn, m clientMessage) {
	t.Helper()
	require.NoError(t, ws.WriteJSON(m))
}

func TestStartDeliversWelcomeMessage(t *testing.T) {
	ws, manager := dialTestServer(t)

	deadline := time.Now().Add(2 * time.Second)
	for manager.Len() != 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, 1, manager.Len())

	send(t, ws, clientMessage{Type: "start"})

	m := readUntil(t, ws, func(m serverMessage) bool { return m.Type == "message" })
	assert.Equal(t, "assistant", m.Role)
	assert.Contains(t, m.Text, "¿Comenzamos?")
	assert.NotEmpty(t, m.At)
}

func TestExtractActionFillsFields(t *testing.T) {
	ws, _ := dialTestServer(t)
	send(t, ws, clientMessage{Type: "start"})

	offer := readUntil(t, ws, func(m serverMessage) bool { return m.Type == "action" })
	assert.Equal(t, "extract", offer.Action)
	assert.Equal(t, "Extraer información", offer.Label)

	send(t, ws, clientMessage{Type: "action", Action: offer.Action})

	fill := readUntil(t, ws, func(m serverMessage) bool {
		return m.Type == "set_field" && m.Field == "socialReason"
	})
	assert.Equal(t, "Empresa ABC S.A", fill.Value)
}

func TestSpeechErrorProducesStyledNotice(t *testing.T) {
	ws, _ := dialTestServer(t)
	send(t, ws, clientMessage{Type: "start"})
	send(t, ws, clientMessage{Type: "speech_error", Code: "not-allowed"})

	m := readUntil(t, ws, func(m serverMessage) bool { return m.Type == "notice" })
	assert.Equal(t, "error", m.Kind)
	assert.Equal(t, "Permiso denegado para usar el micrófono.", m.Text)
	assert.Equal(t, "exclamation-circle", m.Icon)
	assert.Equal(t, "#FF4D4F", m.Color)
	assert.Equal(t, int64(3000), m.DurationMs)
}

func TestListenToggleReportsStatus(t *testing.T) {
	ws, _ := dialTestServer(t)
	send(t, ws, clientMessage{Type: "start"})
	send(t, ws, clientMessage{Type: "listen", Enabled: true})

	m := readUntil(t, ws, func(m serverMessage) bool { return m.Type == "status" })
	assert.Equal(t, "listening", m.Status)

	send(t, ws, clientMessage{Type: "listen", Enabled: false})
	m = readUntil(t, ws, func(m serverMessage) bool {
		return m.Type == "status" && m.Status == "idle"
	})
	assert.Equal(t, "idle", m.Status)
}

func TestByeRemovesSession(t *testing.T) {
	ws, manager := dialTestServer(t)
	send(t, ws, clientMessage{Type: "start"})
	readUntil(t, ws, func(m serverMessage) bool { return m.Type == "message" })

	send(t, ws, clientMessage{Type: "bye"})

	deadline := time.Now().Add(2 * time.Second)
	for manager.Len() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, 0, manager.Len())
}

func TestInterimEchoesCaption(t *testing.T) {
	ws, _ := dialTestServer(t)
	send(t, ws, clientMessage{Type: "start"})
	send(t, ws, clientMessage{Type: "interim", Text: "mi empresa se"})

	m := readUntil(t, ws, func(m serverMessage) bool { return m.Type == "caption" })
	assert.Equal(t, "mi empresa se", m.Text)
}
