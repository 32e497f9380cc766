package main

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheep-server/session"
)

type received struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func newTestServer() *Server {
	return NewServer(session.NewCoordinator(session.DefaultConfig(), zerolog.Nop()))
}

func connect(s *Server, id string) *Client {
	client := NewClient(session.ConnID(id), nopConnLogger())
	s.Connect(client)
	return client
}

func join(s *Server, client *Client, room string) {
	data := fmt.Sprintf(`{"roomId":%q,"playerName":"p","color":"#fff"}`, room)
	s.Handle(client, session.EventJoin, json.RawMessage(data))
}

// drain returns every queued message without blocking.
func drain(t *testing.T, client *Client) []received {
	t.Helper()
	var out []received
	for {
		select {
		case msg, ok := <-client.Messages():
			if !ok {
				return out
			}
			var r received
			require.NoError(t, json.Unmarshal(msg, &r))
			out = append(out, r)
		default:
			return out
		}
	}
}

func events(rs []received) []string {
	names := []string{}
	for _, r := range rs {
		names = append(names, r.Event)
	}
	return names
}

func TestServerJoinBroadcast(t *testing.T) {
	s := newTestServer()
	a := connect(s, "a")
	b := connect(s, "b")
	lobby := connect(s, "lobby")

	join(s, a, "abc")
	assert.Equal(t, []string{"joined"}, events(drain(t, a)))

	join(s, b, "abc")
	fromA := drain(t, a)
	require.Equal(t, []string{"playerJoined"}, events(fromA))
	assert.JSONEq(t, `{"player":{"id":"b","name":"p","color":"#fff","x":0,"z":0,"thetaY":0}}`, string(fromA[0].Data))

	fromB := drain(t, b)
	require.Equal(t, []string{"joined"}, events(fromB))
	var joined session.JoinedPayload
	require.NoError(t, json.Unmarshal(fromB[0].Data, &joined))
	assert.Len(t, joined.Room.Players, 2)
	assert.Empty(t, drain(t, lobby))
}

func TestServerMoveStaysInRoom(t *testing.T) {
	s := newTestServer()
	a := connect(s, "a")
	b := connect(s, "b")
	other := connect(s, "other")
	lobby := connect(s, "lobby")
	join(s, a, "abc")
	join(s, b, "abc")
	join(s, other, "xyz")
	drain(t, a)
	drain(t, b)
	drain(t, other)

	s.Handle(a, session.EventMove, json.RawMessage(`{"x":1,"z":2,"thetaY":3}`))
	assert.Empty(t, drain(t, a))
	fromB := drain(t, b)
	require.Equal(t, []string{"playerMoved"}, events(fromB))
	var moved session.PlayerMovedPayload
	require.NoError(t, json.Unmarshal(fromB[0].Data, &moved))
	assert.Equal(t, 1.0, moved.X)
	assert.Equal(t, session.ConnID("a"), moved.Player.ID)
	assert.Empty(t, drain(t, other))
	assert.Empty(t, drain(t, lobby))

	s.Handle(lobby, session.EventMove, json.RawMessage(`{"x":1,"z":2,"thetaY":3}`))
	assert.Empty(t, drain(t, a))
	assert.Empty(t, drain(t, b))
	assert.Empty(t, drain(t, lobby))
}

func TestServerRoomNamedLobby(t *testing.T) {
	s := newTestServer()
	a := connect(s, "a")
	b := connect(s, "b")
	idle := connect(s, "idle")
	join(s, a, "lobby")
	join(s, b, "lobby")

	s.Handle(a, session.EventMove, json.RawMessage(`{"x":1,"z":2,"thetaY":3}`))
	assert.Contains(t, events(drain(t, b)), "playerMoved")
	assert.Empty(t, drain(t, idle))
}

func TestServerLeaveAndDisconnect(t *testing.T) {
	s := newTestServer()
	a := connect(s, "a")
	b := connect(s, "b")
	join(s, a, "abc")
	join(s, b, "abc")
	drain(t, a)
	drain(t, b)

	s.Handle(b, session.EventLeave, nil)
	assert.Equal(t, []string{"playerLeft"}, events(drain(t, a)))
	assert.Empty(t, drain(t, b))
	assert.Equal(t, LobbyGroup, b.group)

	s.Handle(b, session.EventLeave, nil)
	assert.Empty(t, drain(t, a))

	// b is back in the lobby and no longer hears the room.
	s.Handle(a, session.EventMove, json.RawMessage(`{"x":1,"z":2,"thetaY":3}`))
	assert.Empty(t, drain(t, b))

	join(s, b, "abc")
	drain(t, a)
	drain(t, b)
	s.Disconnect(b)
	assert.Equal(t, []string{"playerLeft"}, events(drain(t, a)))
	assert.Equal(t, 1, s.ClientCount())
	_, open := <-b.Messages()
	assert.False(t, open)

	s.Disconnect(b)
	s.Handle(b, session.EventJoin, nil)
	assert.Empty(t, drain(t, a))
}

func TestServerErrorGoesToCallerOnly(t *testing.T) {
	s := newTestServer()
	a := connect(s, "a")
	b := connect(s, "b")
	join(s, a, "abc")
	drain(t, a)

	join(s, b, "!!!")
	fromB := drain(t, b)
	require.Equal(t, []string{"error"}, events(fromB))
	assert.JSONEq(t, `"Invalid room id"`, string(fromB[0].Data))
	assert.Empty(t, drain(t, a))
}
