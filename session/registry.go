package session

import "slices"

// Registry holds the live rooms in creation order. Lookups are linear scans,
// which is fine for a few dozen rooms; index by room id and connection id
// before raising the room cap much further.
//
// Registry is not safe for concurrent use. Coordinator serializes access.
type Registry struct {
	rooms []*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make([]*Room, 0)}
}

func (r *Registry) FindRoom(id string) *Room {
	for _, room := range r.rooms {
		if room.ID == id {
			return room
		}
	}
	return nil
}

// FindRoomContaining returns the room the connection is a member of, or nil.
func (r *Registry) FindRoomContaining(id ConnID) *Room {
	for _, room := range r.rooms {
		if room.FindMember(id) != nil {
			return room
		}
	}
	return nil
}

func (r *Registry) CreateRoom(id, password string, first *Player) *Room {
	room := newRoom(id, password, first)
	r.rooms = append(r.rooms, room)
	return room
}

func (r *Registry) RemoveRoom(id string) {
	r.rooms = slices.DeleteFunc(r.rooms, func(room *Room) bool {
		return room.ID == id
	})
}

func (r *Registry) Len() int {
	return len(r.rooms)
}

func (r *Registry) Rooms() []*Room {
	return slices.Clone(r.rooms)
}
