package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"ishara/pkg/logger"
)

// Client represents one connected user.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager tracks connected clients and which chat room each user currently
// has open. Room presence drives notification suppression: a user looking at
// a room does not get notified about messages in it.
type Manager struct {
	clients    map[string]*Client
	rooms      map[string]map[string]bool // roomID -> set of userIDs
	Register   chan *Client
	Unregister chan *Client
	broadcast  chan []byte
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan []byte),
	}
}

// Start runs the manager's main loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				logger.Info("Client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if _, ok := m.clients[client.UserID]; ok {
					delete(m.clients, client.UserID)
					for _, members := range m.rooms {
						delete(members, client.UserID)
					}
					close(client.Send)
				}
				m.mutex.Unlock()
				logger.Info("Client unregistered: %s", client.UserID)

			case message := <-m.broadcast:
				m.mutex.Lock()
				for _, client := range m.clients {
					select {
					case client.Send <- message:
					default:
						close(client.Send)
						delete(m.clients, client.UserID)
					}
				}
				m.mutex.Unlock()

			case <-ctx.Done():
				return
			}
		}
	}()
}

// SendToUser sends a message to a specific user if connected.
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if ok {
		select {
		case client.Send <- message:
		default:
			logger.Warn("Dropping message for slow client %s", userID)
		}
	}
}

// SendToRoom sends a message to every user present in a room, optionally
// excluding one participant (usually the sender).
func (m *Manager) SendToRoom(roomID string, message []byte, excludeUserID string) {
	m.mutex.RLock()
	var targets []*Client
	for userID := range m.rooms[roomID] {
		if userID == excludeUserID {
			continue
		}
		if client, ok := m.clients[userID]; ok {
			targets = append(targets, client)
		}
	}
	m.mutex.RUnlock()

	for _, client := range targets {
		select {
		case client.Send <- message:
		default:
			logger.Warn("Dropping room message for slow client %s", client.UserID)
		}
	}
}

// Broadcast sends a message to all connected clients.
func (m *Manager) Broadcast(message []byte) {
	m.broadcast <- message
}

// JoinRoom marks a user as present in a room.
func (m *Manager) JoinRoom(userID, roomID string) {
	m.mutex.Lock()
	if m.rooms[roomID] == nil {
		m.rooms[roomID] = make(map[string]bool)
	}
	m.rooms[roomID][userID] = true
	m.mutex.Unlock()
}

// LeaveRoom clears a user's presence in a room.
func (m *Manager) LeaveRoom(userID, roomID string) {
	m.mutex.Lock()
	delete(m.rooms[roomID], userID)
	m.mutex.Unlock()
}

// InRoom reports whether a user currently has a room open.
func (m *Manager) InRoom(userID, roomID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.rooms[roomID][userID]
}

// controlMessage is the shape of inbound client frames. Clients only send
// room presence changes; all data flows through the HTTP API.
type controlMessage struct {
	Action string `json:"action"` // "join_room" or "leave_room"
	RoomID string `json:"room_id"`
}

// ReadPump reads control messages from the connection until it closes.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("websocket read: %v", err)
			}
			break
		}

		var ctrl controlMessage
		if err := json.Unmarshal(message, &ctrl); err != nil {
			logger.Warn("Ignoring malformed control message from %s", c.UserID)
			continue
		}

		switch ctrl.Action {
		case "join_room":
			m.JoinRoom(c.UserID, ctrl.RoomID)
		case "leave_room":
			m.LeaveRoom(c.UserID, ctrl.RoomID)
		}
	}
}

// WritePump sends queued messages to the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Error("websocket write: %v", err)
			return
		}
	}
}
