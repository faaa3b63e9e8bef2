package ragserver

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session tracks one chat client.
type Session struct {
	ID         string    `json:"session_id"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
}

// SessionManager hands out session IDs and tracks activity.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*Session)}
}

// Ensure returns the session for id, creating it if unknown. An empty
// id gets a fresh UUID. Activity time is updated on every call.
func (m *SessionManager) Ensure(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}
	s, ok := m.sessions[id]
	if !ok {
		s = &Session{ID: id, CreatedAt: time.Now()}
		m.sessions[id] = s
	}
	s.LastActive = time.Now()
	return s
}

// Delete removes a session; reports whether it existed.
func (m *SessionManager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	return ok
}

// Count returns the number of known sessions.
func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}
