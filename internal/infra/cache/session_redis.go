package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	repo "github.com/Ysaidd/proyectoAnfer-sub000/internal/repository"

	"github.com/redis/go-redis/v9"
)

// SessionStore は認証セッションをredisに置く。カートは置かない。
type SessionStore struct {
	client *redis.Client
}

var _ repo.SessionRepository = (*SessionStore)(nil)

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Save(ctx context.Context, sessionID string, rec repo.SessionRecord, ttl time.Duration) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sessionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *SessionStore) Find(ctx context.Context, sessionID string) (repo.SessionRecord, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return repo.SessionRecord{}, repo.ErrSessionNotFound
	}
	if err != nil {
		return repo.SessionRecord{}, fmt.Errorf("redis get failed: %w", err)
	}

	var rec repo.SessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return repo.SessionRecord{}, fmt.Errorf("unmarshal session failed: %w", err)
	}
	return rec, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	n, err := s.client.Del(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	if n == 0 {
		return repo.ErrSessionNotFound
	}
	return nil
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}
