package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/bingo-backend/internal/session"
)

const writeWait = 10 * time.Second

// connection serializes writes to one socket; store notifications and request
// replies arrive from different goroutines.
type connection struct {
	logger *slog.Logger
	ws     *websocket.Conn

	sessionID string

	writeMu sync.Mutex

	mu      sync.Mutex
	session *session.Session
}

func newConnection(logger *slog.Logger, ws *websocket.Conn, sessionID string) *connection {
	return &connection{
		logger:    logger,
		ws:        ws,
		sessionID: sessionID,
	}
}

func (that *connection) send(action string, payload Payload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err = that.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = that.ws.WriteJSON(Message{Action: action, Payload: raw}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *connection) sendError(action, errorMsg string) error {
	if err := that.send(action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}

func (that *connection) currentSession() *session.Session {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.session
}

// attach replaces the player session bound to this socket.
func (that *connection) attach(sess *session.Session) {
	that.mu.Lock()
	previous := that.session
	that.session = sess
	that.mu.Unlock()

	if previous != nil {
		if err := previous.Close(); err != nil {
			that.logger.Warn("failed to close previous session", "error", err)
		}
	}
}

func (that *connection) close() {
	that.attach(nil)

	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	_ = that.ws.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait),
	)

	if err := that.ws.Close(); err != nil {
		that.logger.Debug("failed to close socket", "error", err)
	}
}
