package session

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

type Config struct {
	MaxRooms       int
	KeepEmptyRooms bool
}

func DefaultConfig() Config {
	return Config{MaxRooms: 10, KeepEmptyRooms: false}
}

// Coordinator owns the room registry and handles inbound session events.
// A single mutex serializes every handler, so each event is applied and its
// emissions computed before the next event is looked at.
type Coordinator struct {
	cfg      Config
	registry *Registry
	logger   zerolog.Logger
	lock     sync.Mutex
}

func NewCoordinator(cfg Config, logger zerolog.Logger) *Coordinator {
	if cfg.MaxRooms <= 0 {
		cfg.MaxRooms = DefaultConfig().MaxRooms
	}
	return &Coordinator{
		cfg:      cfg,
		registry: NewRegistry(),
		logger:   logger.With().Str("component", "session").Logger(),
	}
}

// Dispatch decodes the payload of a named event and runs its handler.
// Unknown events and undecodable move payloads produce an empty Outcome.
func (c *Coordinator) Dispatch(caller ConnID, event string, data json.RawMessage) Outcome {
	switch event {
	case EventJoin:
		var req JoinRequest
		if len(data) > 0 {
			if err := json.Unmarshal(data, &req); err != nil {
				c.logger.Debug().Err(err).Str("conn", string(caller)).Msg("Malformed join payload")
				req = JoinRequest{}
			}
		}
		return c.Join(caller, req)
	case EventMove:
		var m movePayload
		if err := json.Unmarshal(data, &m); err != nil || m.X == nil || m.Z == nil || m.ThetaY == nil {
			c.logger.Debug().Str("conn", string(caller)).Msg("Ignoring malformed move")
			return Outcome{}
		}
		return c.Move(caller, Pose{X: *m.X, Z: *m.Z, ThetaY: *m.ThetaY})
	case EventLeave, EventDisconnect:
		return c.Leave(caller)
	default:
		c.logger.Debug().Str("conn", string(caller)).Str("event", event).Msg("Unknown event")
		return Outcome{}
	}
}

// Join validates the request and either creates the room or adds the caller
// to it. A rejected join changes nothing and answers with one error event.
func (c *Coordinator) Join(caller ConnID, req JoinRequest) Outcome {
	c.lock.Lock()
	defer c.lock.Unlock()

	out, err := c.join(caller, req)
	if err != nil {
		var sessionErr *Error
		kind := "internal"
		if errors.As(err, &sessionErr) {
			kind = sessionErr.Kind.String()
		}
		c.logger.Warn().
			Str("conn", string(caller)).
			Str("room", req.RoomID).
			Str("kind", kind).
			Err(err).
			Msg("Join rejected")
		return Outcome{Emissions: []Emission{toCaller(EventError, err.Error())}}
	}
	return out
}

func (c *Coordinator) join(caller ConnID, req JoinRequest) (Outcome, error) {
	switch {
	case req.RoomID == "":
		return Outcome{}, ErrNoRoomID
	case req.PlayerName == "":
		return Outcome{}, ErrNoPlayerName
	case req.Color == "":
		return Outcome{}, ErrNoColor
	}

	roomID := SanitizeIdentifier(req.RoomID)
	if roomID == "" {
		return Outcome{}, ErrInvalidRoomID
	}
	player := &Player{
		ID:    caller,
		Name:  SanitizeIdentifier(req.PlayerName),
		Color: SanitizeColor(req.Color),
	}

	room := c.registry.FindRoom(roomID)
	if room != nil && room.FindMember(caller) != nil {
		return Outcome{}, ErrAlreadyInRoom
	}
	if room == nil && c.registry.Len() >= c.cfg.MaxRooms {
		return Outcome{}, ErrTooManyRooms
	}
	if room != nil && !room.checkPassword(req.RoomPassword) {
		return Outcome{}, ErrIncorrectPassword
	}

	var out Outcome
	// A connection belongs to at most one room.
	if previous := c.registry.FindRoomContaining(caller); previous != nil {
		out.Emissions = append(out.Emissions, c.depart(caller, previous)...)
		out.LeftRoom = previous.ID
	}

	if room == nil {
		room = c.registry.CreateRoom(roomID, req.RoomPassword, player)
		c.logger.Info().
			Str("conn", string(caller)).
			Str("room", roomID).
			Bool("protected", room.Protected()).
			Int("rooms", c.registry.Len()).
			Msg("Created room")
	} else {
		room.AddMember(player)
		out.Emissions = append(out.Emissions, toPeers(room.ID, EventPlayerJoined, PlayerJoinedPayload{Player: *player}))
	}
	c.logger.Info().
		Str("conn", string(caller)).
		Str("room", room.ID).
		Str("player", player.Name).
		Int("players", room.Len()).
		Msg("Joined room")

	out.Emissions = append(out.Emissions, toCaller(EventJoined, JoinedPayload{Room: room.View(), Player: *player}))
	out.JoinedRoom = room.ID
	return out, nil
}

// Move overwrites the caller's pose and tells its room peers. Callers that
// are not in a room are ignored.
func (c *Coordinator) Move(caller ConnID, pose Pose) Outcome {
	if !pose.finite() {
		return Outcome{}
	}
	c.lock.Lock()
	defer c.lock.Unlock()

	room := c.registry.FindRoomContaining(caller)
	if room == nil {
		return Outcome{}
	}
	player := room.FindMember(caller)
	if player == nil {
		return Outcome{}
	}
	player.UpdatePose(pose)
	c.logger.Debug().
		Str("conn", string(caller)).
		Float64("x", pose.X).
		Float64("z", pose.Z).
		Float64("thetaY", pose.ThetaY).
		Msg("Moved")

	return Outcome{Emissions: []Emission{toPeers(room.ID, EventPlayerMoved, PlayerMovedPayload{
		X:      pose.X,
		Z:      pose.Z,
		ThetaY: pose.ThetaY,
		Player: *player,
	})}}
}

// Leave removes the caller from its room. It serves both the explicit leave
// event and transport disconnects, and is a no-op without membership.
func (c *Coordinator) Leave(caller ConnID) Outcome {
	c.lock.Lock()
	defer c.lock.Unlock()

	room := c.registry.FindRoomContaining(caller)
	if room == nil {
		return Outcome{}
	}
	emissions := c.depart(caller, room)
	if len(emissions) == 0 {
		return Outcome{}
	}
	return Outcome{Emissions: emissions, LeftRoom: room.ID}
}

func (c *Coordinator) depart(caller ConnID, room *Room) []Emission {
	player := room.FindMember(caller)
	if player == nil {
		return nil
	}
	room.RemoveMember(caller)
	c.logger.Info().
		Str("conn", string(caller)).
		Str("room", room.ID).
		Int("players", room.Len()).
		Msg("Left room")

	if room.Len() == 0 && !c.cfg.KeepEmptyRooms {
		c.registry.RemoveRoom(room.ID)
		c.logger.Info().Str("room", room.ID).Msg("Removing room")
	}
	return []Emission{toPeers(room.ID, EventPlayerLeft, PlayerLeftPayload{Player: *player})}
}

// Rooms returns a snapshot of every live room without passwords.
func (c *Coordinator) Rooms() []RoomSummary {
	c.lock.Lock()
	defer c.lock.Unlock()

	summaries := make([]RoomSummary, 0, c.registry.Len())
	for _, room := range c.registry.Rooms() {
		summaries = append(summaries, room.Summary())
	}
	return summaries
}
