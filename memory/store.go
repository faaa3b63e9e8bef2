// Package memory keeps per-session conversation history so follow-up
// questions can be answered in context.
package memory

import (
	"context"
	"sync"
)

// ConversationStore stores and retrieves conversation rounds per
// session.
type ConversationStore interface {
	// GetLastNRounds returns up to the last n rounds for a session,
	// oldest first. n <= 0 returns all stored rounds.
	GetLastNRounds(ctx context.Context, sessionID string, n int) ([]ConversationRound, error)

	// SaveRound appends a round, trimming the session to the
	// configured maximum.
	SaveRound(ctx context.Context, sessionID string, round ConversationRound) error

	// Clear removes all history for a session.
	Clear(ctx context.Context, sessionID string) error

	// SessionCount returns the number of sessions with stored history.
	SessionCount(ctx context.Context) (int, error)
}

// InMemoryConversationStore keeps history in process memory. Suitable
// for single-instance deployments, which is how the land-bank server
// runs.
type InMemoryConversationStore struct {
	mu        sync.RWMutex
	sessions  map[string][]ConversationRound
	maxRounds int
}

// NewInMemoryConversationStore creates an in-memory store that keeps
// at most maxRounds rounds per session.
func NewInMemoryConversationStore(maxRounds int) *InMemoryConversationStore {
	if maxRounds <= 0 {
		maxRounds = 10
	}
	return &InMemoryConversationStore{
		sessions:  make(map[string][]ConversationRound),
		maxRounds: maxRounds,
	}
}

func (s *InMemoryConversationStore) GetLastNRounds(_ context.Context, sessionID string, n int) ([]ConversationRound, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rounds := s.sessions[sessionID]
	if len(rounds) == 0 {
		return []ConversationRound{}, nil
	}
	if n <= 0 || n >= len(rounds) {
		result := make([]ConversationRound, len(rounds))
		copy(result, rounds)
		return result, nil
	}
	result := make([]ConversationRound, n)
	copy(result, rounds[len(rounds)-n:])
	return result, nil
}

func (s *InMemoryConversationStore) SaveRound(_ context.Context, sessionID string, round ConversationRound) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rounds := append(s.sessions[sessionID], round)
	if len(rounds) > s.maxRounds {
		rounds = rounds[len(rounds)-s.maxRounds:]
	}
	s.sessions[sessionID] = rounds
	return nil
}

func (s *InMemoryConversationStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

func (s *InMemoryConversationStore) SessionCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions), nil
}
