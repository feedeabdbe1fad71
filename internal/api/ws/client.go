package ws

import (
	"log"

	"github.com/gorilla/websocket"
)

const sendBuffer = 32

type envelope struct {
	Action string      `json:"action"`
	Data   interface{} `json:"data"`
}

// client is one websocket connection with a buffered outbound queue serviced
// by a single writer goroutine. gorilla/websocket allows at most one
// concurrent writer per connection, so every send goes through the queue.
type client struct {
	id   string
	conn *websocket.Conn
	send chan envelope
}

func (c *client) writePump() {
	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			log.Printf("conn %s: write: %v", c.id, err)
			break
		}
	}
	_ = c.conn.Close()
}
