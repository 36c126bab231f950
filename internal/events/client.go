package events

import (
	"time"

	"github.com/tcullen/arcadehub/internal/model"
)

// Client is a single connected SSE listener
type Client struct {
	playerID    model.PlayerID // empty for anonymous listeners
	send        chan []byte
	connectedAt time.Time
}

// NewClient creates a client with a buffered send channel
func NewClient(playerID model.PlayerID) *Client {
	return &Client{
		playerID:    playerID,
		send:        make(chan []byte, 64),
		connectedAt: time.Now(),
	}
}

// Send returns the channel of formatted SSE messages for this client.
// The hub closes it when the client is unregistered.
func (c *Client) Send() <-chan []byte {
	return c.send
}
