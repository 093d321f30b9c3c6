package memory

import (
	"context"
	"sync"

	"animal-quiz-service/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.QuizState
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]domain.QuizState),
	}
}

func (s *SessionStore) Save(_ context.Context, sessionID string, state domain.QuizState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = cloneState(state)
	return nil
}

func (s *SessionStore) Load(_ context.Context, sessionID string) (domain.QuizState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.sessions[sessionID]
	if !ok {
		return domain.QuizState{}, domain.ErrSessionNotFound
	}
	return cloneState(state), nil
}

func (s *SessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// cloneState detaches the result pointer so callers never share it with the store.
func cloneState(state domain.QuizState) domain.QuizState {
	if state.Result != nil {
		r := *state.Result
		state.Result = &r
	}
	return state
}
