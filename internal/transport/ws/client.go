// Package ws adapts websocket connections to the game hub. It owns framing,
// ping/pong keepalive, and disconnect notification; it holds no game state.
package ws

import (
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Saschadav/neonhideseek/internal/game"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 256
)

// Client pumps one websocket connection. It implements game.Sender.
type Client struct {
	id   string
	conn *websocket.Conn
	hub  *game.Hub
	send chan []byte
	done chan struct{}
	once sync.Once
}

// Serve runs a connection until it closes. It blocks, as the fiber websocket
// handler tears the connection down on return.
func Serve(hub *game.Hub, conn *websocket.Conn) {
	c := &Client{
		id:   uuid.NewString(),
		conn: conn,
		hub:  hub,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
	hub.Attach(c)

	go c.readPump()
	c.writePump()
}

// ID returns the connection identifier.
func (c *Client) ID() string {
	return c.id
}

// Send queues a message for delivery. A full buffer drops the message; the
// write pump's next deadline failure detaches the connection for good.
func (c *Client) Send(msg []byte) {
	select {
	case c.send <- msg:
	case <-c.done:
	default:
	}
}

func (c *Client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

func (c *Client) readPump() {
	defer func() {
		c.close()
		c.hub.Detach(c.id)
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			log.Debug().Str("conn", c.id).Err(err).Msg("read ended")
			return
		}
		c.hub.Dispatch(c.id, msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			return

		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Debug().Str("conn", c.id).Err(err).Msg("write failed")
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
