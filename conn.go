package main

import (
	"errors"
	"io"
	"net"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"

	"sheep-server/session"
)

// maxMessageSize caps one inbound event, across all of its frames.
const maxMessageSize = 4096

var (
	ErrMalformedEvent  = errors.New("malformed event")
	ErrMessageTooLarge = errors.New("message too large")
)

type ClientWebsocket struct {
	conn net.Conn
}

func NewClientWebsocket(conn net.Conn) *ClientWebsocket {
	return &ClientWebsocket{conn}
}

// readText returns the next text message, answering control frames and
// skipping binary ones. Oversized frames or messages end the connection.
func (c ClientWebsocket) readText() ([]byte, error) {
	controlHandler := wsutil.ControlFrameHandler(c.conn, ws.StateServerSide)
	rd := wsutil.Reader{
		Source:         c.conn,
		State:          ws.StateServerSide,
		CheckUTF8:      true,
		MaxFrameSize:   maxMessageSize,
		OnIntermediate: controlHandler,
	}
	for {
		hdr, err := rd.NextFrame()
		if err != nil {
			return nil, err
		}
		if hdr.OpCode.IsControl() {
			if err := controlHandler(hdr, &rd); err != nil {
				return nil, err
			}
			continue
		}
		if hdr.OpCode != ws.OpText {
			if err := rd.Discard(); err != nil {
				return nil, err
			}
			continue
		}
		msg, err := io.ReadAll(io.LimitReader(&rd, maxMessageSize+1))
		if err != nil {
			return nil, err
		}
		if len(msg) > maxMessageSize {
			return nil, ErrMessageTooLarge
		}
		return msg, nil
	}
}

// ReadEvent returns the next event frame. ErrMalformedEvent means the frame
// was skipped and the connection is still usable; any other error ends it.
func (c ClientWebsocket) ReadEvent() (session.Envelope, error) {
	msg, err := c.readText()
	if err != nil {
		return session.Envelope{}, err
	}
	envelope, err := UnmarshalJSON[session.Envelope](msg)
	if err != nil {
		return session.Envelope{}, errors.Join(ErrMalformedEvent, err)
	}
	if envelope.Event == "" {
		return session.Envelope{}, ErrMalformedEvent
	}
	return envelope, nil
}

func (c ClientWebsocket) WriteText(data []byte) error {
	return wsutil.WriteServerText(c.conn, data)
}

// WritePump writes queued messages until the queue is closed. A failed write
// closes the connection so the read loop ends too.
func (c ClientWebsocket) WritePump(messages <-chan []byte) {
	for msg := range messages {
		if err := c.WriteText(msg); err != nil {
			c.conn.Close()
			for range messages {
			}
			return
		}
	}
}
