package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"connectfour/internal/domain"
)

const writeTimeout = 10 * time.Second

// ConnectionManager tracks active websocket connections, one per user.
// conn.WriteJSON is not safe for concurrent use, so every socket gets
// its own write mutex.
type ConnectionManager struct {
	connections map[int64]*websocket.Conn
	usernames   map[int64]string
	writeMu     map[int64]*sync.Mutex

	mu sync.RWMutex // protects the maps themselves
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[int64]*websocket.Conn),
		usernames:   make(map[int64]string),
		writeMu:     make(map[int64]*sync.Mutex),
	}
}

// Add registers a connection, closing any previous one for the same
// user (single session per user).
func (cm *ConnectionManager) Add(userID int64, conn *websocket.Conn, username string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if old, exists := cm.connections[userID]; exists {
		old.Close()
	}

	cm.connections[userID] = conn
	cm.usernames[userID] = username
	cm.writeMu[userID] = &sync.Mutex{}
}

// RemoveIfCurrent drops the user's connection only when it is still the
// given one, so cleanup of an old socket never kills its replacement.
func (cm *ConnectionManager) RemoveIfCurrent(userID int64, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if current, exists := cm.connections[userID]; exists && current == conn {
		current.Close()
		delete(cm.connections, userID)
		delete(cm.usernames, userID)
		delete(cm.writeMu, userID)
	}
}

// Remove drops the user's connection unconditionally.
func (cm *ConnectionManager) Remove(userID int64) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if conn, exists := cm.connections[userID]; exists {
		conn.Close()
		delete(cm.connections, userID)
		delete(cm.usernames, userID)
		delete(cm.writeMu, userID)
	}
}

// Send writes a JSON message to one user. Disconnected users are
// silently skipped.
func (cm *ConnectionManager) Send(userID int64, message domain.ServerMessage) error {
	cm.mu.RLock()
	conn, exists := cm.connections[userID]
	mu, muExists := cm.writeMu[userID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(message)
}

// Username returns the connected user's name.
func (cm *ConnectionManager) Username(userID int64) (string, bool) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	name, exists := cm.usernames[userID]
	return name, exists
}
