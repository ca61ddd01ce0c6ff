package stream

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// SafeWriter serializes writes to a websocket connection. Gorilla
// connections allow one concurrent writer only.
type SafeWriter struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewSafeWriter(conn *websocket.Conn) *SafeWriter {
	return &SafeWriter{conn: conn}
}

func (w *SafeWriter) WriteJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return w.conn.WriteJSON(v)
}

// CloseWithReason sends a close frame before closing the connection.
func (w *SafeWriter) CloseWithReason(code int, reason string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	msg := websocket.FormatCloseMessage(code, reason)
	_ = w.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeTimeout))
	return w.conn.Close()
}

func (w *SafeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.Close()
}
