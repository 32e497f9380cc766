package main

import "sheep-server/session"

const sendBufferSize = 64

// Client is the server side of one connection. Its methods are called with
// Server.lock held.
type Client struct {
	ID     session.ConnID
	group  string
	send   chan []byte
	closed bool
	logger ConnLogger
}

func NewClient(id session.ConnID, logger ConnLogger) *Client {
	return &Client{ID: id, send: make(chan []byte, sendBufferSize), logger: logger}
}

// Send queues msg without blocking. A full queue drops the message.
func (c *Client) Send(msg []byte) {
	if c.closed {
		return
	}
	select {
	case c.send <- msg:
	default:
		c.logger.DroppedMessage()
	}
}

func (c *Client) Messages() <-chan []byte {
	return c.send
}

func (c *Client) Close() {
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
