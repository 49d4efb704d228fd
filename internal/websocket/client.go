// internal/websocket/client.go
package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 // countdown sockets receive nothing but pings
)

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	slug string

	closed chan struct{}
}

func NewClient(hub *Hub, conn *websocket.Conn, slug string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 16),
		slug:   slug,
		closed: make(chan struct{}),
	}
}

// ReadPump drains the connection so pongs and close frames are
// processed. Countdown clients never send application messages.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// WritePump pushes countdown frames and keepalive pings to the client.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.closed:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Send queues a frame, dropping it if the client cannot keep up. A slow
// countdown watcher just misses ticks; it never blocks the hub.
func (c *Client) Send(data []byte) {
	select {
	case c.send <- data:
	case <-c.closed:
	default:
	}
}

func (c *Client) Close() {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}
}
