package broadcast

import (
	"sync"

	"github.com/gorilla/websocket"
)

// WSClient adapts a WebSocket connection to the Client interface. Writes are
// serialized with a mutex because gorilla/websocket allows only one concurrent
// writer per connection.
type WSClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// NewWSClient wraps an upgraded connection.
func NewWSClient(conn *websocket.Conn) *WSClient {
	return &WSClient{conn: conn}
}

// Send writes the event as a JSON text message.
func (c *WSClient) Send(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(event)
}

// Close closes the underlying connection.
func (c *WSClient) Close() error {
	return c.conn.Close()
}
