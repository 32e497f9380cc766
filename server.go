package main

import (
	"encoding/json"
	"sync"

	"sheep-server/session"
)

// Server connects websocket clients to the session coordinator. The lock is
// held for the whole of each event, from dispatch to delivery and regrouping,
// so events from different connections never interleave.
type Server struct {
	coordinator *session.Coordinator
	clients     map[session.ConnID]*Client
	groups      map[string]*Group
	lock        sync.Mutex
}

func NewServer(coordinator *session.Coordinator) *Server {
	return &Server{
		coordinator: coordinator,
		clients:     make(map[session.ConnID]*Client),
		groups:      make(map[string]*Group),
	}
}

func (s *Server) Coordinator() *session.Coordinator {
	return s.coordinator
}

// Connect registers the client and places it in the lobby.
func (s *Server) Connect(client *Client) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.clients[client.ID] = client
	s.moveTo(client, LobbyGroup)
}

func (s *Server) Handle(client *Client, event string, data json.RawMessage) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, connected := s.clients[client.ID]; !connected {
		return
	}
	s.apply(client, s.coordinator.Dispatch(client.ID, event, data))
}

// Disconnect evicts the client from its room and closes its send queue.
func (s *Server) Disconnect(client *Client) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, connected := s.clients[client.ID]; !connected {
		return
	}
	s.apply(client, s.coordinator.Dispatch(client.ID, session.EventDisconnect, nil))
	s.leaveGroup(client)
	delete(s.clients, client.ID)
	client.Close()
}

func (s *Server) ClientCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.clients)
}

func (s *Server) apply(client *Client, out session.Outcome) {
	for _, e := range out.Emissions {
		data, err := session.Encode(e.Event, e.Payload)
		if err != nil {
			client.logger.EncodeFailed(e.Event, err)
			continue
		}
		switch e.Target {
		case session.TargetCaller:
			client.Send(data)
		case session.TargetPeers:
			if group, ok := s.groups[roomGroup(e.Room)]; ok {
				group.Broadcast(data, client.ID)
			}
		}
	}
	if out.LeftRoom != "" {
		s.moveTo(client, LobbyGroup)
	}
	if out.JoinedRoom != "" {
		s.moveTo(client, roomGroup(out.JoinedRoom))
	}
}

func (s *Server) moveTo(client *Client, name string) {
	s.leaveGroup(client)
	group, ok := s.groups[name]
	if !ok {
		group = NewGroup()
		s.groups[name] = group
	}
	group.Join(client)
	client.group = name
}

func (s *Server) leaveGroup(client *Client) {
	if client.group == "" {
		return
	}
	if group, ok := s.groups[client.group]; ok {
		group.Leave(client)
		if group.Len() == 0 && client.group != LobbyGroup {
			delete(s.groups, client.group)
		}
	}
	client.group = ""
}
