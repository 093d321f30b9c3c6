package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"animal-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// SessionStore is a Redis implementation of app.SessionRepository.
// Each session is a JSON snapshot under quiz:session:{id}. The TTL is refreshed on every
// save so abandoned sessions expire on their own; nothing outlives a session.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *SessionStore) Save(ctx context.Context, sessionID string, state domain.QuizState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Load(ctx context.Context, sessionID string) (domain.QuizState, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.QuizState{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.QuizState{}, fmt.Errorf("load session: %w", err)
	}
	var state domain.QuizState
	if err := json.Unmarshal(data, &state); err != nil {
		return domain.QuizState{}, fmt.Errorf("%w: %v", domain.ErrCorruptState, err)
	}
	return state, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(sessionID string) string {
	return "quiz:session:" + sessionID
}
