package websocket

import (
	"sync"

	"go.uber.org/zap"

	"github.com/Aryanbansal-05/Relayy-backend/pkg/logger"
)

// Manager tracks which user is reachable on which connection and which
// connections are currently viewing which chat. Both maps are process-local
// and volatile; they rebuild from zero on restart.
//
// Presence is single-slot per user: a later connection from the same user
// replaces the earlier one as the notification target. The replaced
// connection stays open and keeps receiving room broadcasts, because rooms
// are keyed by connection handle rather than by user.
type Manager struct {
	clients map[string]*Client
	rooms   map[string]map[*Client]bool
	mutex   sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[*Client]bool),
	}
}

// Register makes client the presence entry for its user, overwriting any
// prior entry (last connection wins).
func (m *Manager) Register(client *Client) {
	m.mutex.Lock()
	m.clients[client.UserID] = client
	m.mutex.Unlock()

	logger.Log.Info("client registered", zap.String("userID", client.UserID))
}

// Unregister removes the client from every room and marks it closed. The
// presence entry is removed only if it still points at this client, so a
// stale disconnect never clobbers a newer connection's registration.
func (m *Manager) Unregister(client *Client) {
	m.mutex.Lock()
	if current, ok := m.clients[client.UserID]; ok && current == client {
		delete(m.clients, client.UserID)
	}
	for chatID, members := range m.rooms {
		if members[client] {
			delete(members, client)
			if len(members) == 0 {
				delete(m.rooms, chatID)
			}
		}
	}
	m.mutex.Unlock()

	client.close()

	logger.Log.Info("client unregistered", zap.String("userID", client.UserID))
}

// JoinRoom adds the connection to a chat room. No authorization happens here:
// rooms scope delivery only, and every data operation re-checks participation.
func (m *Manager) JoinRoom(client *Client, chatID string) {
	if chatID == "" {
		return
	}

	m.mutex.Lock()
	members, ok := m.rooms[chatID]
	if !ok {
		members = make(map[*Client]bool)
		m.rooms[chatID] = members
	}
	members[client] = true
	m.mutex.Unlock()
}

func (m *Manager) LeaveRoom(client *Client, chatID string) {
	m.mutex.Lock()
	if members, ok := m.rooms[chatID]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(m.rooms, chatID)
		}
	}
	m.mutex.Unlock()
}

// BroadcastToRoom delivers payload to every connection joined to the chat.
func (m *Manager) BroadcastToRoom(chatID string, payload []byte) {
	m.mutex.RLock()
	members := make([]*Client, 0, len(m.rooms[chatID]))
	for client := range m.rooms[chatID] {
		members = append(members, client)
	}
	m.mutex.RUnlock()

	for _, client := range members {
		client.enqueue(payload)
	}
}

// SendToUser delivers payload to the user's registered connection. Returns
// false when the user has no presence entry; the payload is then dropped.
func (m *Manager) SendToUser(userID string, payload []byte) bool {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if !ok {
		return false
	}

	client.enqueue(payload)
	return true
}

// SendToClient delivers payload to one specific connection, bypassing the
// presence registry. Used for per-connection replies such as error events.
func (m *Manager) SendToClient(client *Client, payload []byte) {
	client.enqueue(payload)
}

// IsOnline reports whether the user has a registered connection.
func (m *Manager) IsOnline(userID string) bool {
	m.mutex.RLock()
	_, ok := m.clients[userID]
	m.mutex.RUnlock()
	return ok
}

// UserInRoom reports whether the user's registered connection is currently
// joined to the chat room.
func (m *Manager) UserInRoom(userID, chatID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	client, ok := m.clients[userID]
	if !ok {
		return false
	}
	return m.rooms[chatID][client]
}
