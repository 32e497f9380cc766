package main

import (
	"encoding/json"
	"errors"
	"net"
	"strings"
	"testing"

	"github.com/gobwas/ws/wsutil"

	"sheep-server/session"
)

func TestReadEvent(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	go func() {
		wsutil.WriteClientText(client, []byte(`not json`))
		wsutil.WriteClientText(client, []byte(`{"data":{}}`))
		wsutil.WriteClientText(client, []byte(`{"event":"move","data":{"x":1,"z":2,"thetaY":3}}`))
	}()
	serverWs := NewClientWebsocket(server)

	if _, err := serverWs.ReadEvent(); !errors.Is(err, ErrMalformedEvent) {
		t.Errorf("expected malformed event for invalid json, got: %v", err)
	}
	if _, err := serverWs.ReadEvent(); !errors.Is(err, ErrMalformedEvent) {
		t.Errorf("expected malformed event for missing name, got: %v", err)
	}
	envelope, err := serverWs.ReadEvent()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if envelope.Event != session.EventMove {
		t.Errorf("wrong event expected: %v got: %v", session.EventMove, envelope.Event)
	}
	if string(envelope.Data) != `{"x":1,"z":2,"thetaY":3}` {
		t.Errorf("wrong data got: %s", envelope.Data)
	}
	server.Close()
}

func TestReadEventClosed(t *testing.T) {
	client, server := net.Pipe()
	client.Close()
	if _, err := NewClientWebsocket(server).ReadEvent(); err == nil || errors.Is(err, ErrMalformedEvent) {
		t.Errorf("expected connection error, got: %v", err)
	}
}

func TestWritePump(t *testing.T) {
	client, server := net.Pipe()
	messages := make(chan []byte, 2)
	encoded, _ := session.Encode(session.EventError, "Too many rooms")
	messages <- encoded
	close(messages)
	go func() {
		NewClientWebsocket(server).WritePump(messages)
		server.Close()
	}()

	data, err := wsutil.ReadServerText(client)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var parsed struct {
		Event string `json:"event"`
		Data  string `json:"data"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Errorf("incorrect json sent")
	}
	if parsed.Event != "error" {
		t.Errorf("wrong event expected: %v got: %v", "error", parsed.Event)
	}
	if parsed.Data != "Too many rooms" {
		t.Errorf("wrong data expected: %v got: %v", "Too many rooms", parsed.Data)
	}
	client.Close()
}

func TestReadEventTooLarge(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()
	go func() {
		big := `{"event":"join","data":{"roomId":"` + strings.Repeat("a", maxMessageSize) + `"}}`
		wsutil.WriteClientText(client, []byte(big))
	}()

	_, err := NewClientWebsocket(server).ReadEvent()
	if err == nil || errors.Is(err, ErrMalformedEvent) {
		t.Errorf("expected oversized event to end the connection, got: %v", err)
	}
}

func TestReadEventSkipsBinary(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()
	go func() {
		wsutil.WriteClientBinary(client, []byte{1, 2, 3})
		wsutil.WriteClientText(client, []byte(`{"event":"leave"}`))
	}()

	envelope, err := NewClientWebsocket(server).ReadEvent()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if envelope.Event != session.EventLeave {
		t.Errorf("wrong event expected: %v got: %v", session.EventLeave, envelope.Event)
	}
}
