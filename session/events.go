package session

import "encoding/json"

// Inbound events.
const (
	EventJoin       = "join"
	EventMove       = "move"
	EventLeave      = "leave"
	EventDisconnect = "disconnect"
)

// Outbound events.
const (
	EventError        = "error"
	EventJoined       = "joined"
	EventPlayerJoined = "playerJoined"
	EventPlayerMoved  = "playerMoved"
	EventPlayerLeft   = "playerLeft"
)

// Envelope is one websocket frame.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func Encode(event string, payload any) ([]byte, error) {
	return json.Marshal(struct {
		Event string `json:"event"`
		Data  any    `json:"data,omitempty"`
	}{Event: event, Data: payload})
}

type JoinRequest struct {
	RoomID       string `json:"roomId"`
	PlayerName   string `json:"playerName"`
	Color        string `json:"color"`
	RoomPassword string `json:"roomPassword"`
}

type movePayload struct {
	X      *float64 `json:"x"`
	Z      *float64 `json:"z"`
	ThetaY *float64 `json:"thetaY"`
}

type JoinedPayload struct {
	Room   RoomView `json:"room"`
	Player Player   `json:"player"`
}

type PlayerJoinedPayload struct {
	Player Player `json:"player"`
}

type PlayerMovedPayload struct {
	X      float64 `json:"x"`
	Z      float64 `json:"z"`
	ThetaY float64 `json:"thetaY"`
	Player Player  `json:"player"`
}

type PlayerLeftPayload struct {
	Player Player `json:"player"`
}

type Target int

const (
	// TargetCaller sends only to the connection that raised the event.
	TargetCaller Target = iota
	// TargetPeers sends to every member of Room except the caller.
	TargetPeers
)

type Emission struct {
	Target  Target
	Room    string
	Event   string
	Payload any
}

func toCaller(event string, payload any) Emission {
	return Emission{Target: TargetCaller, Event: event, Payload: payload}
}

func toPeers(room, event string, payload any) Emission {
	return Emission{Target: TargetPeers, Room: room, Event: event, Payload: payload}
}

// Outcome is what the transport must do after an event was handled, in order:
// deliver Emissions, then move the caller out of LeftRoom and into JoinedRoom.
type Outcome struct {
	Emissions  []Emission
	LeftRoom   string
	JoinedRoom string
}
