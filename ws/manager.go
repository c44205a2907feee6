package ws

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

// Manager keeps track of active device websocket connections.
type Manager struct {
	mu          sync.RWMutex
	connections map[uint]*websocket.Conn // device id -> conn
}

func NewManager() *Manager {
	return &Manager{connections: make(map[uint]*websocket.Conn)}
}

// Register registers a device connection, replacing any existing one.
func (m *Manager) Register(deviceID uint, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.connections[deviceID]; ok && old != conn {
		_ = old.Close()
	}
	m.connections[deviceID] = conn
}

// Unregister removes a device connection.
func (m *Manager) Unregister(deviceID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if conn, ok := m.connections[deviceID]; ok {
		_ = conn.Close()
		delete(m.connections, deviceID)
	}
}

// Send writes a text message to a connected device.
func (m *Manager) Send(deviceID uint, payload []byte) error {
	m.mu.RLock()
	conn, ok := m.connections[deviceID]
	m.mu.RUnlock()
	if !ok || conn == nil {
		return errors.New("device not connected")
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// IsConnected returns whether a device is currently connected.
func (m *Manager) IsConnected(deviceID uint) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.connections[deviceID]
	return ok
}

// List returns the ids of currently connected devices.
func (m *Manager) List() []uint {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]uint, 0, len(m.connections))
	for id := range m.connections {
		ids = append(ids, id)
	}
	return ids
}
