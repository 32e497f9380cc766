package main

import "sheep-server/session"

const LobbyGroup = "lobby"

// roomGroup namespaces room ids so a room called "lobby" stays separate from
// the lobby grouping.
func roomGroup(roomID string) string {
	return "room:" + roomID
}

// Group is a named set of connections that broadcasts go to.
type Group struct {
	members map[session.ConnID]*Client
}

func NewGroup() *Group {
	return &Group{members: make(map[session.ConnID]*Client)}
}

func (g *Group) Join(client *Client) {
	g.members[client.ID] = client
}

func (g *Group) Leave(client *Client) {
	delete(g.members, client.ID)
}

func (g *Group) Len() int {
	return len(g.members)
}

func (g *Group) Broadcast(message []byte, except session.ConnID) {
	for id, member := range g.members {
		if id != except {
			member.Send(message)
		}
	}
}
