package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"dpiportal/models"
	"dpiportal/utils"

	"github.com/go-redis/redis/v8"
)

// ErrNotFound is returned for unknown or evicted sessions.
var ErrNotFound = errors.New("session not found")

// Store persists sessions by id.
type Store interface {
	Save(ctx context.Context, sess models.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

// RedisStore keeps sessions under authSession:<id> with a TTL. With a sealer
// the sandbox token is stored encrypted.
type RedisStore struct {
	client *redis.Client
	sealer *Sealer
}

func NewRedisStore(client *redis.Client, sealer *Sealer) *RedisStore {
	return &RedisStore{client: client, sealer: sealer}
}

func (s *RedisStore) Save(ctx context.Context, sess models.Session, ttl time.Duration) error {
	if s.sealer != nil && sess.Token != "" {
		sealed, err := s.sealer.Seal(sess.Token)
		if err != nil {
			return err
		}
		sess.Token = sealed
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, utils.AuthSessionPrefix+sess.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.Session, error) {
	data, err := s.client.Get(ctx, utils.AuthSessionPrefix+id).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var sess models.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if s.sealer != nil && sess.Token != "" {
		token, err := s.sealer.Open(sess.Token)
		if err != nil {
			return nil, err
		}
		sess.Token = token
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, utils.AuthSessionPrefix+id).Err()
}

// MemoryStore is a process-local Store. TTLs are not enforced; Manager checks
// ExpiresAt itself.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]models.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]models.Session)}
}

func (s *MemoryStore) Save(_ context.Context, sess models.Session, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
