package session

import (
	"crypto/subtle"
	"slices"
)

type Room struct {
	ID       string
	password string
	players  []*Player
}

func newRoom(id, password string, first *Player) *Room {
	return &Room{ID: id, password: password, players: []*Player{first}}
}

func (r *Room) FindMember(id ConnID) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// AddMember appends without checking for duplicates; callers check FindMember first.
func (r *Room) AddMember(p *Player) {
	r.players = append(r.players, p)
}

func (r *Room) RemoveMember(id ConnID) {
	r.players = slices.DeleteFunc(r.players, func(p *Player) bool {
		return p.ID == id
	})
}

func (r *Room) Len() int {
	return len(r.players)
}

func (r *Room) Protected() bool {
	return r.password != ""
}

func (r *Room) checkPassword(password string) bool {
	return subtle.ConstantTimeCompare([]byte(r.password), []byte(password)) == 1
}

// Players returns copies of the members in join order.
func (r *Room) Players() []Player {
	players := make([]Player, 0, len(r.players))
	for _, p := range r.players {
		players = append(players, *p)
	}
	return players
}

// RoomView is the room as sent to clients. Password is always empty.
type RoomView struct {
	ID       string   `json:"id"`
	Password string   `json:"password"`
	Players  []Player `json:"players"`
}

func (r *Room) View() RoomView {
	return RoomView{ID: r.ID, Password: "", Players: r.Players()}
}

type RoomSummary struct {
	ID        string   `json:"id"`
	Protected bool     `json:"protected"`
	Players   []Player `json:"players"`
}

func (r *Room) Summary() RoomSummary {
	return RoomSummary{ID: r.ID, Protected: r.Protected(), Players: r.Players()}
}
